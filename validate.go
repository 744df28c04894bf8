package laxjson

import (
	"sort"

	"github.com/juju/loggo"
)

var validateLog = loggo.GetLogger("laxjson.validate")

// validator walks a Strict-mode token stream and checks it against the
// RFC 8259 grammar, resynchronizing at struct-level sync points (',',
// '}', ']', EOF) after each defect instead of stopping at the first one
// (spec §7's "panic mode" at grammar granularity, complementing the
// lexer's lexical-granularity recovery in lexer.go).
//
// It deliberately runs over the original, un-precleaned bytes: BOM and
// comments are RFC 8259 violations in strict mode, not conveniences to
// silently tolerate (resolved Open Question, see DESIGN.md).
type validator struct {
	lx    *lexer
	cur   *Token
	diags []*Diagnostic
}

func newValidator(input []byte) *validator {
	v := &validator{lx: newLexer(input, Strict)}
	v.cur = v.advance()
	return v
}

// advance pulls the next token out of the lexer, recording every
// diagnostic encountered along the way — including from lexResults that
// carry no token at all (single-quoted strings, stray bytes) — until one
// with a token is found.
func (v *validator) advance() *Token {
	for {
		res := v.lx.Next()
		if res.Diag != nil {
			v.diags = append(v.diags, res.Diag)
		}
		if res.Token != nil {
			return res.Token
		}
	}
}

func (v *validator) current() *Token { return v.cur }

func (v *validator) consume() *Token {
	t := v.cur
	v.cur = v.advance()
	return t
}

func (v *validator) errorf(kind DiagnosticKind, tok *Token, msg string) {
	length := tok.Length
	if length < 1 {
		length = 1
	}
	v.diags = append(v.diags, diagAt(tok.Offset, length, kind, SeverityError, msg))
}

// syncTo consumes tokens until the current one is in the given set,
// without consuming that token itself.
func (v *validator) syncTo(set map[TokenKind]bool) {
	for !set[v.current().Kind] {
		if v.current().Kind == TokenEOF {
			return
		}
		v.consume()
	}
}

var structuralSync = map[TokenKind]bool{
	TokenComma: true, TokenCloseBrace: true, TokenCloseBracket: true, TokenEOF: true,
}

func (v *validator) validateValue() {
	tok := v.current()
	switch tok.Kind {
	case TokenOpenBrace:
		v.validateObject()
	case TokenOpenBracket:
		v.validateArray()
	case TokenString, TokenNumber, TokenTrue, TokenFalse, TokenNull:
		v.consume()
	default:
		v.errorf(DiagUnexpectedToken, tok, "expected a value")
		v.syncTo(structuralSync)
	}
}

func (v *validator) validateObject() {
	v.consume() // '{'
	if v.current().Kind == TokenCloseBrace {
		v.consume()
		return
	}

	seen := make(map[string]bool)
	for {
		keyTok := v.current()
		if keyTok.Kind != TokenString {
			v.errorf(DiagUnexpectedToken, keyTok, "expected a string key")
			v.syncTo(structuralSync)
			switch v.current().Kind {
			case TokenComma:
				v.consume()
				continue
			case TokenCloseBrace:
				v.consume()
				return
			default:
				return
			}
		}
		key := keyTok.Payload
		v.consume()

		if v.current().Kind == TokenColon {
			v.consume()
		} else {
			v.errorf(DiagUnexpectedToken, v.current(), "expected ':'")
			v.syncTo(structuralSync)
		}

		v.validateValue()

		if seen[key] {
			v.diags = append(v.diags, diagAt(keyTok.Offset, max(keyTok.Length, 1), DiagDuplicateKeyWarning, SeverityWarning, "duplicate key "+key))
		}
		seen[key] = true

		switch v.current().Kind {
		case TokenCloseBrace:
			v.consume()
			return
		case TokenComma:
			v.consume()
			if v.current().Kind == TokenCloseBrace {
				v.errorf(DiagUnexpectedToken, v.current(), "trailing comma is not valid JSON")
				v.consume()
				return
			}
			continue
		default:
			v.errorf(DiagUnexpectedToken, v.current(), "expected ',' or '}'")
			v.syncTo(structuralSync)
			switch v.current().Kind {
			case TokenComma:
				v.consume()
				continue
			case TokenCloseBrace:
				v.consume()
				return
			default:
				return
			}
		}
	}
}

func (v *validator) validateArray() {
	v.consume() // '['
	if v.current().Kind == TokenCloseBracket {
		v.consume()
		return
	}

	for {
		v.validateValue()

		switch v.current().Kind {
		case TokenCloseBracket:
			v.consume()
			return
		case TokenComma:
			v.consume()
			if v.current().Kind == TokenCloseBracket {
				v.errorf(DiagUnexpectedToken, v.current(), "trailing comma is not valid JSON")
				v.consume()
				return
			}
			continue
		default:
			v.errorf(DiagUnexpectedToken, v.current(), "expected ',' or ']'")
			v.syncTo(structuralSync)
			switch v.current().Kind {
			case TokenComma:
				v.consume()
				continue
			case TokenCloseBracket:
				v.consume()
				return
			default:
				return
			}
		}
	}
}

// Validate checks input against RFC 8259 and returns every violation
// found (spec §6): an empty slice means the input conforms, judged at
// error severity — DiagDuplicateKeyWarning entries may still be present
// in an otherwise-conformant document (resolved Open Question, see
// DESIGN.md). Diagnostics are sorted by position.
func Validate(input []byte) []Diagnostic {
	table := newNewlineTable(input)
	v := newValidator(input)

	if v.current().Kind == TokenEOF {
		v.errorf(DiagUnexpectedEOF, v.current(), "empty input is not a valid JSON document")
		return finalizeDiagnostics(v.diags, table)
	}

	v.validateValue()

	if v.current().Kind != TokenEOF {
		tok := v.current()
		length := len(input) - tok.Offset
		v.diags = append(v.diags, diagAt(tok.Offset, length, DiagTrailingContent, SeverityError, "trailing content after JSON value"))
	}

	if len(v.diags) > 0 {
		validateLog.Debugf("found %d diagnostic(s)", len(v.diags))
	}
	return finalizeDiagnostics(v.diags, table)
}

// HasErrors reports whether diags contains any error-severity entry,
// the practical test for "conforms to RFC 8259" when warnings (like
// DiagDuplicateKeyWarning) may legitimately be present.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func finalizeDiagnostics(in []*Diagnostic, table *newlineTable) []Diagnostic {
	out := make([]Diagnostic, len(in))
	for i, d := range in {
		line, col := table.locate(d.Offset)
		d.Line, d.Column = line, col
		out[i] = *d
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}
