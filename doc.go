// Package laxjson repairs malformed JSON into valid, canonical JSON and
// validates strict JSON against RFC 8259.
//
// Current caveats
//   - Concurrency: a Node tree returned by Parse is safe to read from
//     multiple goroutines but is never written to after construction; don't
//     share a Config across goroutines that mutate its fields concurrently.
//   - Numbers round-trip as canonical digit strings, not float64, to avoid
//     precision loss on values outside float64's exact integer range.
//
// A small example:
//
//	cfg := laxjson.DefaultConfig()
//	cfg.Indent = laxjson.NoIndent()
//	result, err := laxjson.Fix([]byte(`{name: 'florian', tags: [1, 2,]}`), cfg)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(string(result.Text)) // {"name":"florian","tags":[1,2]}
//	fmt.Println(result.WasFixed)     // true
package laxjson
