//go:build !windows

package logger

import (
	"os"

	"github.com/mattn/go-isatty"
)

// SupportsColor reports whether stderr looks like a real terminal
// that understands ANSI escapes. On Unix that's simply "is this fd a
// tty" — no extra console-mode dance is needed the way it is on
// Windows (see term_windows.go).
func SupportsColor(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
