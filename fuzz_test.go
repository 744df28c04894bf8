package laxjson

import "testing"

// seedCorpus mirrors the shapes the teacher's own fuzz corpus favored:
// small, structurally pathological snippets rather than large documents,
// chosen to exercise the recovery paths in lexer.go/parser.go/precleaner.go.
var seedCorpus = []string{
	``,
	`   `,
	`{`,
	`}`,
	`[`,
	`]`,
	`,`,
	`:`,
	`{,}`,
	`[,]`,
	`{"a":1,}`,
	`[1,2,]`,
	`{foo:1}`,
	`{'foo':'bar'}`,
	`{"a" 1}`,
	`[1 2 3]`,
	`{"a":1]`,
	`["a":1}`,
	`{"a":1`,
	`[1,2`,
	`"unterminated`,
	`'unterminated`,
	`"\`,
	`"\u"`,
	`"\uD800"`,
	`"\uD800\uD800"`,
	`"\uDC00\uD800"`,
	`😀`,
	`"😀"`,
	`NaN`,
	`Infinity`,
	`-Infinity`,
	`undefined`,
	`nil`,
	`TRUE`,
	`FaLsE`,
	`tru`,
	`nul`,
	`01`,
	`0x1F`,
	`.5`,
	`5.`,
	`+5`,
	`--5`,
	`1e`,
	`1e+`,
	"// comment\n{}",
	"/* block */{}",
	"/* unterminated {}",
	"{}{}",
	"{}{}{}",
	"{\"a\":1}\n{\"b\":2}\n",
	"\xEF\xBB\xBF{}",
	"\x00\x01\x02",
	"{\"a\":\"b\x01c\"}",
	`{"coordinates": -0.1695, 51.4865]}`,
	`{"a":{"b":{"c":[1,2,{"d":3}]}}}`,
}

func TestFuzzSeedCorpusNeverPanicsAndAlwaysValidates(t *testing.T) {
	for _, in := range seedCorpus {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Fix(%q) panicked: %v", in, r)
				}
			}()
			res, err := Fix([]byte(in), DefaultConfig())
			if err != nil {
				t.Errorf("Fix(%q) returned error: %v", in, err)
				return
			}
			diags := Validate(res.Text)
			if HasErrors(diags) {
				t.Errorf("Fix(%q) produced %q which fails strict validation: %+v", in, res.Text, diags)
			}
		}()
	}
}

func TestFuzzSeedCorpusValidateNeverPanics(t *testing.T) {
	for _, in := range seedCorpus {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Validate(%q) panicked: %v", in, r)
				}
			}()
			_ = Validate([]byte(in))
		}()
	}
}

// FuzzFix is a native Go fuzz target (run with `go test -fuzz=FuzzFix`): the
// repair engine must never panic, and must always produce output that
// validates cleanly under strict mode, regardless of input.
func FuzzFix(f *testing.F) {
	for _, seed := range seedCorpus {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		res, err := Fix([]byte(input), DefaultConfig())
		if err != nil {
			t.Skip()
		}
		diags := Validate(res.Text)
		if HasErrors(diags) {
			t.Errorf("Fix(%q) produced invalid output %q: %+v", input, res.Text, diags)
		}
	})
}

// FuzzValidate checks the strict validator alone never panics on arbitrary
// bytes, including ones that are not valid UTF-8.
func FuzzValidate(f *testing.F) {
	for _, seed := range seedCorpus {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		_ = Validate([]byte(input))
	})
}
