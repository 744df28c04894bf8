package laxjson

import "github.com/juju/loggo"

var precleanerLog = loggo.GetLogger("laxjson.precleaner")

// cleanResult is the output of the pre-cleaner (C2): the comment- and
// BOM-free byte sequence the tokenizer consumes, plus a mapping back to
// original byte offsets so diagnostics stay faithful to the user's input,
// and the set of fixes the cleaning pass itself performed.
type cleanResult struct {
	bytes      []byte
	offsetMap  []int // offsetMap[i] is the original-input offset of cleaned byte i
	bomRemoved bool
	comments   []commentFix
}

type commentFix struct {
	offset int // original-input offset
	length int
}

// preclean strips a leading BOM and comments from input, preserving quote
// state (so `"// not a comment"` survives intact) and closing an
// unterminated block comment at EOF. Whitespace is left untouched; the
// tokenizer owns whitespace handling.
func preclean(input []byte) *cleanResult {
	res := &cleanResult{
		bytes:     make([]byte, 0, len(input)),
		offsetMap: make([]int, 0, len(input)),
	}

	i := 0
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		i = 3
		res.bomRemoved = true
		precleanerLog.Debugf("stripped UTF-8 BOM")
	}

	inString := false
	var quote byte
	escaped := false

	for i < len(input) {
		b := input[i]

		if inString {
			res.bytes = append(res.bytes, b)
			res.offsetMap = append(res.offsetMap, i)
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == quote {
				inString = false
			}
			i++
			continue
		}

		if b == '"' || b == '\'' {
			inString = true
			quote = b
			res.bytes = append(res.bytes, b)
			res.offsetMap = append(res.offsetMap, i)
			i++
			continue
		}

		if b == '/' && i+1 < len(input) && input[i+1] == '/' {
			start := i
			i += 2
			for i < len(input) && input[i] != '\n' && input[i] != '\r' {
				i++
			}
			res.comments = append(res.comments, commentFix{offset: start, length: i - start})
			continue
		}

		if b == '/' && i+1 < len(input) && input[i+1] == '*' {
			start := i
			i += 2
			closed := false
			for i+1 < len(input) {
				if input[i] == '*' && input[i+1] == '/' {
					i += 2
					closed = true
					break
				}
				i++
			}
			if !closed {
				i = len(input)
			}
			res.comments = append(res.comments, commentFix{offset: start, length: i - start})
			continue
		}

		res.bytes = append(res.bytes, b)
		res.offsetMap = append(res.offsetMap, i)
		i++
	}

	res.offsetMap = append(res.offsetMap, len(input)) // sentinel for EOF
	return res
}

// originalOffset translates a cleaned-byte offset back to the offset it
// came from in the caller's original input.
func (c *cleanResult) originalOffset(cleanedOffset int) int {
	if cleanedOffset < 0 {
		return 0
	}
	if cleanedOffset >= len(c.offsetMap) {
		if len(c.offsetMap) == 0 {
			return 0
		}
		return c.offsetMap[len(c.offsetMap)-1]
	}
	return c.offsetMap[cleanedOffset]
}
