package laxjson

import "github.com/juju/loggo"

// package-level options gate the engine's own debug logging, mirroring
// the teacher's pongo2Options shape, but backed by loggo (the teacher's
// go.mod already requires it; its own code never imported it).
type laxjsonOptions struct {
	debug bool
}

var (
	options  = laxjsonOptions{}
	rootLog  = loggo.GetLogger("laxjson")
)

// SetDebug turns on debug-level logging across every laxjson component
// logger (pre-cleaner, lexer, parser, repair driver, validator).
func SetDebug(b bool) {
	options.debug = b
	level := loggo.WARNING
	if b {
		level = loggo.DEBUG
	}
	loggo.GetLogger("laxjson").SetLogLevel(level)
}
