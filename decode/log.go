package decode

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo mirrors dso.PrintDebugInfo / the teacher's
// wasm.PrintDebugInfo switch: flip it before decoding to route per-opcode
// diagnostics to stderr instead of discarding them.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := io.Writer(io.Discard)
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "decode: ", log.Lshortfile)
}

// SetDebugMode toggles decode-time logging on or off.
func SetDebugMode(v bool) {
	PrintDebugInfo = v
	w := io.Writer(io.Discard)
	if v {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
