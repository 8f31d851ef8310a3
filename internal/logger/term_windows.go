//go:build windows

package logger

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/windows"
)

// SupportsColor reports whether stderr is a console that can show
// ANSI escapes, enabling virtual terminal processing first if needed.
// Classic cmd.exe consoles need this switch flipped on before color
// codes render instead of printing as garbage, the same console-mode
// call esbuild's logger_windows.go makes via kernel32 directly; we
// get it through golang.org/x/sys/windows instead, the teacher's own
// dependency, already on the module graph for exactly this purpose.
func SupportsColor(file *os.File) bool {
	if !isatty.IsTerminal(file.Fd()) {
		return false
	}

	handle := windows.Handle(file.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 {
		if err := windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			return false
		}
	}
	return true
}
