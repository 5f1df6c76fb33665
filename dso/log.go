package dso

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo mirrors the teacher's wasm.PrintDebugInfo switch: flip it
// before parsing to route parse-time diagnostics to stderr instead of
// discarding them.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := io.Writer(io.Discard)
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "dso: ", log.Lshortfile)
}

// SetDebugMode toggles parse-time logging on or off.
func SetDebugMode(v bool) {
	PrintDebugInfo = v
	w := io.Writer(io.Discard)
	if v {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
