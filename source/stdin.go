//go:build !windows

package source

import "os"

// StdinIsReadable reports whether stdin is a pipe or file rather than an
// interactive terminal.
func StdinIsReadable() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
