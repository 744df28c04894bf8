package laxjson

// NodeKind is the closed set of JSON value shapes (spec §3).
type NodeKind int

const (
	NodeObject NodeKind = iota
	NodeArray
	NodeString
	NodeNumber
	NodeBool
	NodeNull
)

func (k NodeKind) String() string {
	switch k {
	case NodeObject:
		return "Object"
	case NodeArray:
		return "Array"
	case NodeString:
		return "String"
	case NodeNumber:
		return "Number"
	case NodeBool:
		return "Bool"
	case NodeNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// Member is one (key, value) pair of an object. Objects store an ordered
// sequence of Members rather than a map, so insertion order and duplicate
// keys survive through the pipeline (spec §3, §9).
type Member struct {
	Key   string
	Value *Node
}

// Node is the tagged-variant parse tree value spec §3 describes. Only the
// fields relevant to Kind are populated; the rest are zero.
type Node struct {
	Kind NodeKind

	Members []Member // NodeObject
	Items   []*Node  // NodeArray
	Str     string   // NodeString: decoded UTF-8 scalar sequence
	Num     string   // NodeNumber: canonical digit string
	Bool    bool     // NodeBool

	WasRepaired bool

	// Offset/Length locate the node in the cleaned byte stream the parser
	// consumed; used only for diagnostics and debugging, not by Equal.
	Offset int
	Length int
}

func newNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// Get returns the value of the last member with the given key (lookup
// semantics for duplicate keys, per spec §4.4: "last wins under lookup
// semantics downstream"), and whether any member had that key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != NodeObject {
		return nil, false
	}
	var found *Node
	ok := false
	for _, m := range n.Members {
		if m.Key == key {
			found = m.Value
			ok = true
		}
	}
	return found, ok
}

// Equal implements the structural equality spec §8 property 3 requires:
// "same nodes up to whitespace; numbers compared as canonical digit
// strings, strings as decoded scalar sequences, objects as ordered member
// sequences." It ignores WasRepaired, Offset, and Length.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case NodeObject:
		if len(n.Members) != len(other.Members) {
			return false
		}
		for i, m := range n.Members {
			om := other.Members[i]
			if m.Key != om.Key || !m.Value.Equal(om.Value) {
				return false
			}
		}
		return true
	case NodeArray:
		if len(n.Items) != len(other.Items) {
			return false
		}
		for i, item := range n.Items {
			if !item.Equal(other.Items[i]) {
				return false
			}
		}
		return true
	case NodeString:
		return n.Str == other.Str
	case NodeNumber:
		return n.Num == other.Num
	case NodeBool:
		return n.Bool == other.Bool
	case NodeNull:
		return true
	default:
		return false
	}
}

// markRepaired sets WasRepaired on n, used by the parser to propagate the
// bit upward from a repaired child (spec §4.4: "Traversal produces a Node
// and propagates wasRepaired upward").
func (n *Node) markRepaired() {
	if n != nil {
		n.WasRepaired = true
	}
}
