package terminal

import (
	"io"
	"os"
)

// Sequences undone by EmergencyReset, in the order tcell enables them
var resetSequences = [][]byte{
	[]byte("\x1b[?1004l"), // Focus reporting
	[]byte("\x1b[?1003l"), // Any-event mouse
	[]byte("\x1b[?1002l"), // Drag mouse
	[]byte("\x1b[?1000l"), // Click mouse
	[]byte("\x1b[?1006l"), // SGR mouse
	[]byte("\x1b[?25h"),   // Cursor show
	[]byte("\x1b[?1049l"), // Alt screen exit
	[]byte("\x1b[0m"),
	[]byte("\x1b[?7h"), // Auto wrap
}

// EmergencyReset attempts to restore the terminal to a sane state
// Call this from panic recovery when screen.Fini cannot run.
func EmergencyReset(w io.Writer) {
	for _, seq := range resetSequences {
		w.Write(seq)
	}
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
