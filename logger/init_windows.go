//go:build windows

package logger

import (
	"os"

	"golang.org/x/sys/windows"
)

// Newer Windows 10 consoles understand ANSI escapes once virtual terminal
// processing is switched on.
func init() {
	var mode uint32
	stderr := windows.Handle(os.Stderr.Fd())

	if err := windows.GetConsoleMode(stderr, &mode); err != nil {
		return
	}

	if err := windows.SetConsoleMode(stderr, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err == nil {
		windowsColors = true
	}
}
