package laxjson

import "fmt"

// TokenKind is the closed set of lexical token kinds produced by the
// tokenizer (C3), per spec §3.
type TokenKind int

const (
	TokenOpenBrace TokenKind = iota
	TokenCloseBrace
	TokenOpenBracket
	TokenCloseBracket
	TokenComma
	TokenColon
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
	TokenIdentifier
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenOpenBrace:
		return "{"
	case TokenCloseBrace:
		return "}"
	case TokenOpenBracket:
		return "["
	case TokenCloseBracket:
		return "]"
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenString:
		return "String"
	case TokenNumber:
		return "Number"
	case TokenTrue:
		return "True"
	case TokenFalse:
		return "False"
	case TokenNull:
		return "Null"
	case TokenIdentifier:
		return "Identifier"
	case TokenEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// RecoveryFlags records which tolerant-mode repairs were required to
// produce a given token. Flags are monotonically set, never cleared
// (spec §3 invariant).
type RecoveryFlags struct {
	WasUnterminated       bool
	UsedSingleQuotes      bool
	WasUnquotedIdentifier bool
	HadInvalidEscape      bool
	HadLoneSurrogate      bool
	NormalizedLiteral     bool
	NormalizedNumber      bool
	HadUnescapedControl   bool
}

// Any reports whether any recovery flag is set.
func (f RecoveryFlags) Any() bool {
	return f.WasUnterminated || f.UsedSingleQuotes || f.WasUnquotedIdentifier ||
		f.HadInvalidEscape || f.HadLoneSurrogate || f.NormalizedLiteral || f.NormalizedNumber ||
		f.HadUnescapedControl
}

// merge ORs another set of flags into f.
func (f *RecoveryFlags) merge(other RecoveryFlags) {
	f.WasUnterminated = f.WasUnterminated || other.WasUnterminated
	f.UsedSingleQuotes = f.UsedSingleQuotes || other.UsedSingleQuotes
	f.WasUnquotedIdentifier = f.WasUnquotedIdentifier || other.WasUnquotedIdentifier
	f.HadInvalidEscape = f.HadInvalidEscape || other.HadInvalidEscape
	f.HadLoneSurrogate = f.HadLoneSurrogate || other.HadLoneSurrogate
	f.NormalizedLiteral = f.NormalizedLiteral || other.NormalizedLiteral
	f.NormalizedNumber = f.NormalizedNumber || other.NormalizedNumber
	f.HadUnescapedControl = f.HadUnescapedControl || other.HadUnescapedControl
}

// Token is a single lexical element produced by the tokenizer. Its Lexeme
// is always exactly input[Offset : Offset+Length) (spec §3 invariant);
// Payload carries the decoded form (UTF-8 scalar sequence for strings,
// canonical digit string for numbers).
type Token struct {
	Kind    TokenKind
	Offset  int // offset into the *cleaned* byte stream
	Length  int
	Lexeme  string
	Payload string
	Flags   RecoveryFlags
}

// String renders the token for debugging and for error messages, mirroring
// the teacher's Token.String() shape (<Token Typ=... Val='...' Line=N Col=N>).
func (t *Token) String() string {
	val := t.Payload
	if val == "" {
		val = t.Lexeme
	}
	if len(val) > 200 {
		val = val[:197] + "..."
	}
	return fmt.Sprintf("<Token %s %q offset=%d len=%d>", t.Kind, val, t.Offset, t.Length)
}

// isValueStart reports whether a token of this kind can begin a JSON value.
func (k TokenKind) isValueStart() bool {
	switch k {
	case TokenOpenBrace, TokenOpenBracket, TokenString, TokenNumber, TokenTrue, TokenFalse, TokenNull, TokenIdentifier:
		return true
	default:
		return false
	}
}
