package laxjson

import "testing"

func TestRecoveryFlagsAny(t *testing.T) {
	var f RecoveryFlags
	if f.Any() {
		t.Error("zero value should report Any()=false")
	}
	f.HadUnescapedControl = true
	if !f.Any() {
		t.Error("expected Any()=true once a flag is set")
	}
}

func TestRecoveryFlagsMergeIsMonotonic(t *testing.T) {
	a := RecoveryFlags{UsedSingleQuotes: true}
	b := RecoveryFlags{HadInvalidEscape: true}
	a.merge(b)
	if !a.UsedSingleQuotes || !a.HadInvalidEscape {
		t.Errorf("merge lost a flag: %+v", a)
	}
}

func TestTokenStringTruncatesLongPayload(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	tok := &Token{Kind: TokenString, Payload: string(long)}
	s := tok.String()
	if len(s) > 260 {
		t.Errorf("String() not truncated, len=%d", len(s))
	}
}

func TestIsValueStart(t *testing.T) {
	for _, k := range []TokenKind{TokenOpenBrace, TokenOpenBracket, TokenString, TokenNumber, TokenTrue, TokenFalse, TokenNull, TokenIdentifier} {
		if !k.isValueStart() {
			t.Errorf("%v should start a value", k)
		}
	}
	for _, k := range []TokenKind{TokenCloseBrace, TokenCloseBracket, TokenComma, TokenColon, TokenEOF} {
		if k.isValueStart() {
			t.Errorf("%v should not start a value", k)
		}
	}
}
