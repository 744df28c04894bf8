package laxjson

import (
	"fmt"
	"sort"

	"github.com/juju/loggo"
)

var fixLog = loggo.GetLogger("laxjson.fix")

// FixKind is the closed set of repairs the engine can apply, per spec §7.
type FixKind int

const (
	FixTrailingComma FixKind = iota
	FixMissingComma
	FixMissingColon
	FixUnterminatedString
	FixUnterminatedObject
	FixUnterminatedArray
	FixMismatchedCloser
	FixMissingOpenBracket
	FixSingleQuotedString
	FixUnquotedKey
	FixNormalizedLiteral
	FixNormalizedNumber
	FixInvalidEscape
	FixLoneSurrogate
	FixUnescapedControl
	FixCommentRemoved
	FixBOMRemoved
	FixMultipleRoots
	FixInfinityOrNaNToNull
	FixDuplicateKey
	FixUndefinedToNull
)

func (k FixKind) String() string {
	names := [...]string{
		"TrailingComma", "MissingComma", "MissingColon", "UnterminatedString",
		"UnterminatedObject", "UnterminatedArray", "MismatchedCloser",
		"MissingOpenBracket", "SingleQuotedString", "UnquotedKey",
		"NormalizedLiteral", "NormalizedNumber", "InvalidEscape", "LoneSurrogate",
		"UnescapedControl", "CommentRemoved", "BOMRemoved", "MultipleRoots",
		"InfinityOrNaNToNull", "DuplicateKey", "UndefinedToNull",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// FixRecord is one applied repair, machine-readable for UI annotations
// (spec §7's detailedFixes[]).
type FixRecord struct {
	Kind    FixKind
	Line    int
	Column  int
	Before  string
	After   string
	Message string
}

// rawFix is a FixRecord before its offset has been resolved to a
// line/column and before cross-pass deduplication.
type rawFix struct {
	kind    FixKind
	offset  int // offset in the *original* input's byte space
	before  string
	after   string
	message string
}

// IndentMode selects Reconstructor output formatting (spec §6 config).
type IndentMode int

const (
	IndentNone IndentMode = iota
	IndentSpaces
)

// Indent is the reconstructor's whitespace configuration: either no
// inter-token whitespace (minified) or N spaces per nesting level.
type Indent struct {
	Mode  IndentMode
	Width int
}

// NoIndent returns the minified indent configuration.
func NoIndent() Indent { return Indent{Mode: IndentNone} }

// SpacesIndent returns an N-space-per-level indent configuration. width
// must be >= 1.
func SpacesIndent(width int) Indent {
	if width < 1 {
		width = 1
	}
	return Indent{Mode: IndentSpaces, Width: width}
}

// Config controls both repair and reconstruction (spec §6).
type Config struct {
	Indent            Indent
	EnsureASCII       bool
	WrapMultipleRoots bool

	// MaxDepth bounds nesting depth the parser will descend into; a
	// construct nested deeper is skipped whole and replaced by a null
	// placeholder (SPEC_FULL's concretization of spec
	// §5's O(d) memory guarantee and §8's ">= 1000 without stack
	// overflow" requirement). Zero means the default of 10000.
	MaxDepth int
}

// DefaultConfig returns the configuration the CLI starts from and whose
// depth limit Parse uses: two-space indent, raw UTF-8 output, multi-root
// wrapping enabled.
func DefaultConfig() Config {
	return Config{Indent: SpacesIndent(2), EnsureASCII: false, WrapMultipleRoots: true}
}

func (c Config) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return 10000
}

// FixResult is the outcome of Fix (spec §6).
type FixResult struct {
	Text          []byte
	WasFixed      bool
	Fixes         []string
	DetailedFixes []FixRecord
}

// Fix is the tolerant repair engine's entry point (spec §6). It never
// fails on malformed input — per the totality law (spec §8 property 1),
// every byte sequence produces a FixResult whose Text validates cleanly.
// The returned error is non-nil only for an internal invariant violation
// (spec §7: "must be treated as fatal and visible"), never for a data
// defect in input.
func Fix(input []byte, cfg Config) (*FixResult, error) {
	cleaned := preclean(input)

	toks, err := tokenizeAllTolerant(cleaned.bytes)
	if err != nil {
		return nil, err
	}

	p := newParser(toks, cleaned.bytes, cfg.maxDepth())
	root, err := p.Parse()
	if err != nil {
		return nil, err
	}

	var raws []rawFix
	for _, c := range cleaned.comments {
		raws = append(raws, rawFix{kind: FixCommentRemoved, offset: c.offset, message: "removed comment"})
	}
	if cleaned.bomRemoved {
		raws = append(raws, rawFix{kind: FixBOMRemoved, offset: 0, message: "removed byte-order mark"})
	}
	for _, rf := range p.fixes {
		rf.offset = cleaned.originalOffset(rf.offset)
		raws = append(raws, rf)
	}

	table := newNewlineTable(input)
	detailed := resolveFixes(raws, table)

	if !cfg.WrapMultipleRoots && root.Kind == NodeArray {
		// Caller asked not to wrap multiple top-level values; take just the
		// first root and drop the now-misleading FixMultipleRoots record
		// along with it, since the output text is not actually wrapped and
		// the remaining roots are discarded rather than repaired into one.
		for i, f := range detailed {
			if f.Kind == FixMultipleRoots && len(root.Items) > 0 {
				root = root.Items[0]
				detailed = append(detailed[:i], detailed[i+1:]...)
				break
			}
		}
	}

	text := reconstruct(root, cfg.Indent, cfg.EnsureASCII)

	messages := make([]string, 0, len(detailed))
	for _, f := range detailed {
		messages = append(messages, f.Message)
	}

	wasFixed := len(detailed) > 0 || root.WasRepaired
	if wasFixed {
		fixLog.Debugf("applied %d repair(s)", len(detailed))
	}

	return &FixResult{
		Text:          text,
		WasFixed:      wasFixed,
		Fixes:         messages,
		DetailedFixes: detailed,
	}, nil
}

// resolveFixes converts raw, offset-keyed fixes into line/column-located
// FixRecords in source order, deduplicating identical (kind, line, column)
// triples (spec §6.4: "deduplicates identical fix kinds at the same
// (line, column)").
func resolveFixes(raws []rawFix, table *newlineTable) []FixRecord {
	sort.SliceStable(raws, func(i, j int) bool { return raws[i].offset < raws[j].offset })

	seen := make(map[[3]int]bool)
	out := make([]FixRecord, 0, len(raws))
	for _, rf := range raws {
		line, col := table.locate(rf.offset)
		key := [3]int{int(rf.kind), line, col}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, FixRecord{
			Kind:    rf.kind,
			Line:    line,
			Column:  col,
			Before:  rf.before,
			After:   rf.after,
			Message: fmt.Sprintf("line %d col %d: %s", line, col, rf.message),
		})
	}
	return out
}

// Parse returns the tolerant-mode parse tree for structural inspection
// (spec §6's Node API); any repairs made along the way are discarded.
func Parse(input []byte) (*Node, error) {
	cleaned := preclean(input)
	toks, err := tokenizeAllTolerant(cleaned.bytes)
	if err != nil {
		return nil, err
	}
	p := newParser(toks, cleaned.bytes, DefaultConfig().maxDepth())
	return p.Parse()
}

// tokenizeAllTolerant drains the tolerant-mode lexer into a token slice.
// Tolerant mode never returns a diagnostic in place of a token (spec
// §4.3), so every lexResult here carries a Token.
func tokenizeAllTolerant(cleanedBytes []byte) ([]*Token, error) {
	lx := newLexer(cleanedBytes, Tolerant)
	var toks []*Token
	for {
		res := lx.Next()
		if res.Token == nil {
			return nil, newInvariantError("lexer", "tolerant mode produced no token at offset %d", lx.pos)
		}
		toks = append(toks, res.Token)
		if res.Token.Kind == TokenEOF {
			break
		}
	}
	return toks, nil
}
