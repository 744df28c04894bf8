package laxjson

import "github.com/juju/loggo"

var parserLog = loggo.GetLogger("laxjson.parser")

// parser builds a Node tree from a token stream in tolerant mode,
// recovering locally from every structural defect spec §4.4 names rather
// than stopping at the first one. It uses the teacher's cursor-over-a-
// token-slice shape (idx/tokens/Consume/Current/Get), generalized from a
// single flat stream into the recursive-descent tree builder the grammar
// needs.
//
// Nesting recursion relies on Go's goroutine stacks, which grow on the
// heap rather than overflowing a fixed frame budget, so ordinary
// recursive descent already satisfies spec §8's ">= 1000 levels without
// stack overflow" property; maxDepth below exists to bound resource use
// against adversarial input, not to dodge a stack limit.
type parser struct {
	idx    int
	tokens []*Token
	src    []byte // cleaned byte stream the tokens were lexed from

	maxDepth int
	fixes    []rawFix
}

func newParser(tokens []*Token, src []byte, maxDepth int) *parser {
	return &parser{tokens: tokens, src: src, maxDepth: maxDepth}
}

func (p *parser) Consume() { p.idx++ }

func (p *parser) Current() *Token { return p.Get(p.idx) }

func (p *parser) Get(i int) *Token {
	if i < 0 || i >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return &Token{Kind: TokenEOF}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) prevEnd() int {
	if p.idx == 0 {
		return 0
	}
	t := p.Get(p.idx - 1)
	return t.Offset + t.Length
}

func (p *parser) addFix(kind FixKind, offset int, before, after, message string) {
	p.fixes = append(p.fixes, rawFix{kind: kind, offset: offset, before: before, after: after, message: message})
}

// recordTokenFlagFixes translates a consumed leaf token's recovery flags
// into fix records. Tokens consumed by a speculative parse that is later
// abandoned (see parseObjectMemberValue) also reach here, but that
// function truncates p.fixes back to its mark, so no phantom fixes remain.
func (p *parser) recordTokenFlagFixes(tok *Token) {
	f := tok.Flags
	if f.UsedSingleQuotes {
		p.addFix(FixSingleQuotedString, tok.Offset, tok.Lexeme, tok.Payload, "converted single-quoted string to double-quoted")
	}
	if f.WasUnquotedIdentifier {
		p.addFix(FixUnquotedKey, tok.Offset, tok.Lexeme, tok.Payload, "quoted bare identifier "+tok.Lexeme)
	}
	if f.HadInvalidEscape {
		p.addFix(FixInvalidEscape, tok.Offset, "", "", "replaced invalid escape sequence with U+FFFD")
	}
	if f.HadLoneSurrogate {
		p.addFix(FixLoneSurrogate, tok.Offset, "", "", "replaced lone surrogate with U+FFFD")
	}
	if f.HadUnescapedControl {
		p.addFix(FixUnescapedControl, tok.Offset, "", "", "accepted unescaped control character in string")
	}
	if f.WasUnterminated {
		p.addFix(FixUnterminatedString, tok.Offset, "", "", "closed unterminated string at end of input")
	}
	if f.NormalizedLiteral {
		switch tok.Lexeme {
		case "undefined", "nil":
			p.addFix(FixUndefinedToNull, tok.Offset, tok.Lexeme, "null", "converted "+tok.Lexeme+" to null")
		default:
			p.addFix(FixNormalizedLiteral, tok.Offset, tok.Lexeme, tok.Payload, "normalized literal "+tok.Lexeme)
		}
	}
	if f.NormalizedNumber {
		if tok.Kind == TokenNull {
			p.addFix(FixInfinityOrNaNToNull, tok.Offset, tok.Lexeme, "null", "converted "+tok.Lexeme+" to null")
		} else {
			p.addFix(FixNormalizedNumber, tok.Offset, tok.Lexeme, tok.Payload, "canonicalized number "+tok.Lexeme)
		}
	}
}

// Parse builds the tolerant parse tree for the whole token stream (spec
// §4.4), handling the empty-input boundary and multiple top-level values.
func (p *parser) Parse() (*Node, error) {
	if p.Current().Kind == TokenEOF {
		return newNode(NodeNull), nil
	}

	var roots []*Node
	for p.Current().Kind != TokenEOF {
		switch stray := p.Current(); stray.Kind {
		case TokenCloseBrace, TokenCloseBracket, TokenComma, TokenColon:
			// No value can start at a stray closer or separator, and
			// parseValue would not consume it: drop it here.
			p.Consume()
			kind := FixMismatchedCloser
			if stray.Kind == TokenComma || stray.Kind == TokenColon {
				kind = FixTrailingComma
			}
			p.addFix(kind, stray.Offset, stray.Lexeme, "", "dropped stray '"+stray.Lexeme+"'")
			continue
		}
		val, err := p.parseValue(0)
		if err != nil {
			return nil, err
		}
		roots = append(roots, val)
	}

	if len(roots) == 0 {
		n := newNode(NodeNull)
		n.WasRepaired = true
		return n, nil
	}
	if len(roots) == 1 {
		return roots[0], nil
	}

	arr := newNode(NodeArray)
	arr.Items = roots
	arr.WasRepaired = true
	ndjson := p.looksLikeNDJSON(roots)
	msg := "wrapped multiple top-level values in an array"
	if ndjson {
		msg = "wrapped newline-delimited JSON records in an array"
	}
	p.addFix(FixMultipleRoots, roots[0].Offset, "", "", msg)
	parserLog.Debugf("wrapped %d top-level values (ndjson=%v)", len(roots), ndjson)
	return arr, nil
}

// looksLikeNDJSON reports whether every gap between consecutive root
// values contains a newline and no comma, the shape of newline-delimited
// JSON rather than JSON with an accidentally-dropped array wrapper.
func (p *parser) looksLikeNDJSON(roots []*Node) bool {
	for i := 1; i < len(roots); i++ {
		gapStart := roots[i-1].Offset + roots[i-1].Length
		gapEnd := roots[i].Offset
		if gapStart < 0 || gapEnd > len(p.src) || gapStart > gapEnd {
			return false
		}
		gap := p.src[gapStart:gapEnd]
		sawNewline := false
		for _, b := range gap {
			if b == ',' {
				return false
			}
			if b == '\n' || b == '\r' {
				sawNewline = true
			}
		}
		if !sawNewline {
			return false
		}
	}
	return true
}

// parseValue parses exactly one JSON value, recovering locally when the
// current token cannot start one.
func (p *parser) parseValue(depth int) (*Node, error) {
	if depth > p.maxDepth {
		return p.skipBalancedAsNull()
	}

	tok := p.Current()
	switch tok.Kind {
	case TokenOpenBrace:
		return p.parseObject(depth)
	case TokenOpenBracket:
		return p.parseArray(depth)
	case TokenString:
		p.Consume()
		p.recordTokenFlagFixes(tok)
		n := newNode(NodeString)
		n.Str, n.Offset, n.Length = tok.Payload, tok.Offset, tok.Length
		if tok.Flags.Any() {
			n.WasRepaired = true
		}
		return n, nil
	case TokenNumber:
		p.Consume()
		p.recordTokenFlagFixes(tok)
		n := newNode(NodeNumber)
		n.Num, n.Offset, n.Length = tok.Payload, tok.Offset, tok.Length
		if tok.Flags.Any() {
			n.WasRepaired = true
		}
		return n, nil
	case TokenTrue, TokenFalse:
		p.Consume()
		p.recordTokenFlagFixes(tok)
		n := newNode(NodeBool)
		n.Bool, n.Offset, n.Length = tok.Kind == TokenTrue, tok.Offset, tok.Length
		if tok.Flags.Any() {
			n.WasRepaired = true
		}
		return n, nil
	case TokenNull:
		p.Consume()
		p.recordTokenFlagFixes(tok)
		n := newNode(NodeNull)
		n.Offset, n.Length = tok.Offset, tok.Length
		if tok.Flags.Any() {
			n.WasRepaired = true
		}
		return n, nil
	case TokenIdentifier:
		// A bare word in value position (e.g. YAML-flavored "status:
		// active"): treated as a string, same as an unquoted object key.
		p.Consume()
		p.recordTokenFlagFixes(tok)
		n := newNode(NodeString)
		n.Str, n.Offset, n.Length = tok.Payload, tok.Offset, tok.Length
		n.WasRepaired = true
		return n, nil
	default:
		// Nothing usable at a value position: synthesize null in place,
		// without consuming (the caller's closer/separator handling
		// still needs to see this token).
		n := newNode(NodeNull)
		n.Offset = tok.Offset
		n.WasRepaired = true
		return n, nil
	}
}

// skipBalancedAsNull is used once maxDepth is exceeded: instead of
// recursing further, it consumes the whole nested construct by bracket
// counting and returns a single Null placeholder, bounding parser memory
// use against adversarially deep input.
func (p *parser) skipBalancedAsNull() (*Node, error) {
	start := p.Current()
	depth := 0
	for {
		tok := p.Current()
		switch tok.Kind {
		case TokenOpenBrace, TokenOpenBracket:
			depth++
			p.Consume()
		case TokenCloseBrace, TokenCloseBracket:
			depth--
			p.Consume()
			if depth <= 0 {
				n := newNode(NodeNull)
				n.WasRepaired = true
				p.addFix(FixUnterminatedArray, start.Offset, "", "null", "truncated nesting beyond maximum depth")
				return n, nil
			}
		case TokenEOF:
			n := newNode(NodeNull)
			n.WasRepaired = true
			p.addFix(FixUnterminatedArray, start.Offset, "", "null", "truncated nesting beyond maximum depth")
			return n, nil
		default:
			p.Consume()
		}
	}
}

// parseObject parses a '{' ... '}' construct (spec §4.4). Every
// structural defect it recognizes is repaired locally: stray commas are
// dropped, missing colons/commas are synthesized, an EOF or a mismatched
// ']' closes the object early, and unquoted or bare-literal keys are
// accepted and treated as strings.
func (p *parser) parseObject(depth int) (*Node, error) {
	openTok := p.Current()
	p.Consume()

	obj := newNode(NodeObject)
	seen := make(map[string]bool)

	for {
		cur := p.Current()

		switch cur.Kind {
		case TokenCloseBrace:
			p.Consume()
			obj.Offset, obj.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return obj, nil
		case TokenEOF:
			obj.WasRepaired = true
			p.addFix(FixUnterminatedObject, cur.Offset, "", "}", "closed object at end of input")
			obj.Offset, obj.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return obj, nil
		case TokenCloseBracket:
			p.Consume()
			obj.WasRepaired = true
			p.addFix(FixMismatchedCloser, cur.Offset, "]", "}", "closed object with mismatched ']'")
			obj.Offset, obj.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return obj, nil
		case TokenComma:
			p.Consume()
			obj.WasRepaired = true
			p.addFix(FixTrailingComma, cur.Offset, ",", "", "dropped stray comma")
			continue
		}

		key, keyRepaired, ok := p.parseKey()
		if !ok {
			// No usable key token at all: skip it and keep going, rather
			// than abandoning the whole object.
			p.Consume()
			obj.WasRepaired = true
			continue
		}
		if keyRepaired {
			obj.WasRepaired = true
		}

		if p.Current().Kind == TokenColon {
			p.Consume()
		} else {
			obj.WasRepaired = true
			p.addFix(FixMissingColon, p.Current().Offset, "", ":", "inserted missing ':'")
		}

		val, err := p.parseObjectMemberValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if val.WasRepaired {
			obj.markRepaired()
		}

		if seen[key] {
			p.addFix(FixDuplicateKey, cur.Offset, key, key, "duplicate key "+key)
		}
		seen[key] = true
		obj.Members = append(obj.Members, Member{Key: key, Value: val})

		switch p.Current().Kind {
		case TokenCloseBrace:
			p.Consume()
			obj.Offset, obj.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return obj, nil
		case TokenComma:
			commaTok := p.Current()
			p.Consume()
			if p.Current().Kind == TokenCloseBrace {
				p.Consume()
				obj.WasRepaired = true
				p.addFix(FixTrailingComma, commaTok.Offset, ",", "", "dropped trailing comma")
				obj.Offset, obj.Length = openTok.Offset, p.prevEnd()-openTok.Offset
				return obj, nil
			}
			continue
		case TokenEOF:
			obj.WasRepaired = true
			p.addFix(FixUnterminatedObject, p.Current().Offset, "", "}", "closed object at end of input")
			obj.Offset, obj.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return obj, nil
		case TokenCloseBracket:
			closeTok := p.Current()
			p.Consume()
			obj.WasRepaired = true
			p.addFix(FixMismatchedCloser, closeTok.Offset, "]", "}", "closed object with mismatched ']'")
			obj.Offset, obj.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return obj, nil
		default:
			obj.WasRepaired = true
			p.addFix(FixMissingComma, p.Current().Offset, "", ",", "inserted missing ','")
			continue
		}
	}
}

// parseKey consumes one object key: a quoted string, an unquoted
// identifier, a bare literal keyword, or a bare number, all accepted and
// normalized into a string key (spec §4.4: "a bareword immediately
// preceding a colon in object context is an unquoted key").
func (p *parser) parseKey() (key string, repaired bool, ok bool) {
	tok := p.Current()
	switch tok.Kind {
	case TokenString:
		p.Consume()
		p.recordTokenFlagFixes(tok)
		return tok.Payload, tok.Flags.Any(), true
	case TokenIdentifier:
		p.Consume()
		p.recordTokenFlagFixes(tok)
		return tok.Payload, true, true
	case TokenTrue, TokenFalse, TokenNull, TokenNumber:
		p.Consume()
		p.addFix(FixUnquotedKey, tok.Offset, tok.Lexeme, tok.Payload, "quoted bare key "+tok.Lexeme)
		return tok.Payload, true, true
	default:
		return "", false, false
	}
}

// parseObjectMemberValue parses the value half of one member, with the
// speculative "retroactive array wrap" recovery spec §4.4 describes for
// input like `"coordinates": -0.17, 51.48]`: a single expected value
// position that actually holds a comma-separated run terminated by ']'
// instead of the expected '}'. The attempt is fully backtrackable: token
// position and any fixes recorded mid-attempt are rolled back if the
// run doesn't end in ']'.
func (p *parser) parseObjectMemberValue(depth int) (*Node, error) {
	v1, err := p.parseValue(depth)
	if err != nil {
		return nil, err
	}

	if p.Current().Kind != TokenComma {
		return v1, nil
	}

	restartIdx := p.idx
	fixMark := len(p.fixes)

	values := []*Node{v1}
	ok := true
	for p.Current().Kind == TokenComma {
		p.Consume()
		if p.Current().Kind == TokenCloseBracket {
			break
		}
		val, verr := p.parseValue(depth + 1)
		if verr != nil {
			return nil, verr
		}
		values = append(values, val)
		if p.Current().Kind != TokenComma && p.Current().Kind != TokenCloseBracket {
			ok = false
			break
		}
	}

	if ok && p.Current().Kind == TokenCloseBracket {
		closeTok := p.Current()
		p.Consume()
		arr := newNode(NodeArray)
		arr.Items = values
		arr.WasRepaired = true
		arr.Offset = v1.Offset
		arr.Length = closeTok.Offset + closeTok.Length - v1.Offset
		p.addFix(FixMissingOpenBracket, v1.Offset, "", "[", "inserted missing '[' before comma-separated values")
		return arr, nil
	}

	// Not the pattern: it was just the object's normal member separator.
	// Undo any speculative consumption and fixes, and let parseObject's
	// loop process the comma itself.
	p.idx = restartIdx
	p.fixes = p.fixes[:fixMark]
	return v1, nil
}

// parseArray parses a '[' ... ']' construct (spec §4.4), with the same
// family of structural recoveries as parseObject.
func (p *parser) parseArray(depth int) (*Node, error) {
	openTok := p.Current()
	p.Consume()

	arr := newNode(NodeArray)

	for {
		cur := p.Current()
		switch cur.Kind {
		case TokenCloseBracket:
			p.Consume()
			arr.Offset, arr.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return arr, nil
		case TokenEOF:
			arr.WasRepaired = true
			p.addFix(FixUnterminatedArray, cur.Offset, "", "]", "closed array at end of input")
			arr.Offset, arr.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return arr, nil
		case TokenCloseBrace:
			p.Consume()
			arr.WasRepaired = true
			p.addFix(FixMismatchedCloser, cur.Offset, "}", "]", "closed array with mismatched '}'")
			arr.Offset, arr.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return arr, nil
		case TokenComma:
			p.Consume()
			arr.WasRepaired = true
			p.addFix(FixTrailingComma, cur.Offset, ",", "", "dropped stray comma")
			continue
		case TokenColon:
			// parseValue would not consume a ':'; treat it as the ','
			// that belongs between elements.
			p.Consume()
			arr.WasRepaired = true
			p.addFix(FixMissingComma, cur.Offset, ":", ",", "replaced ':' in array with ','")
			continue
		}

		val, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if val.WasRepaired {
			arr.markRepaired()
		}
		arr.Items = append(arr.Items, val)

		switch p.Current().Kind {
		case TokenCloseBracket:
			p.Consume()
			arr.Offset, arr.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return arr, nil
		case TokenComma:
			commaTok := p.Current()
			p.Consume()
			if p.Current().Kind == TokenCloseBracket {
				p.Consume()
				arr.WasRepaired = true
				p.addFix(FixTrailingComma, commaTok.Offset, ",", "", "dropped trailing comma")
				arr.Offset, arr.Length = openTok.Offset, p.prevEnd()-openTok.Offset
				return arr, nil
			}
			continue
		case TokenEOF:
			arr.WasRepaired = true
			p.addFix(FixUnterminatedArray, p.Current().Offset, "", "]", "closed array at end of input")
			arr.Offset, arr.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return arr, nil
		case TokenCloseBrace:
			closeTok := p.Current()
			p.Consume()
			arr.WasRepaired = true
			p.addFix(FixMismatchedCloser, closeTok.Offset, "}", "]", "closed array with mismatched '}'")
			arr.Offset, arr.Length = openTok.Offset, p.prevEnd()-openTok.Offset
			return arr, nil
		default:
			arr.WasRepaired = true
			p.addFix(FixMissingComma, p.Current().Offset, "", ",", "inserted missing ','")
			continue
		}
	}
}
