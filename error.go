package laxjson

import (
	"fmt"

	juju "github.com/juju/errors"
)

// Error reports an internal invariant violation: a state laxjson's own
// logic should make unreachable, never a defect in the caller's input.
// It mirrors the teacher's lexer/parser Error shape (Line/Column/Sender).
// Fix and Parse return one only through newInvariantError; malformed
// input never produces one (see fix.go's totality contract).
type Error struct {
	Line     int
	Column   int
	Sender   string
	ErrorMsg string

	// cause is wrapped with github.com/juju/errors so a broken invariant
	// keeps a trace back to where it was raised, instead of just a flat
	// message.
	cause error
}

func (e *Error) Error() string {
	s := "[laxjson"
	if e.Sender != "" {
		s += " (where: " + e.Sender + ")"
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" | line %d col %d", e.Line, e.Column)
	}
	s += "] " + e.ErrorMsg
	return s
}

func (e *Error) Unwrap() error {
	return e.cause
}

// newInvariantError builds a fatal, traced internal error for conditions
// that indicate a bug in laxjson itself, not a defect in the caller's
// input. Its one caller is tokenizeAllTolerant, for a tolerant-mode lexer
// result that carries no token.
func newInvariantError(sender, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Sender:   sender,
		ErrorMsg: msg,
		cause:    juju.Annotatef(juju.New("invariant violation"), "%s: %s", sender, msg),
	}
}
