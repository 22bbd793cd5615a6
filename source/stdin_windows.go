package source

import "os"

// StdinIsReadable reports whether stdin is a pipe or file. With no pipe
// attached, os.Stdin.Stat returns an error on Windows.
func StdinIsReadable() bool {
	_, err := os.Stdin.Stat()
	return err == nil
}
