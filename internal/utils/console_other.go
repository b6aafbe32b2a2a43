//go:build !windows

package utils

// InitConsole is a no-op outside Windows; ANSI handling is the terminal's
// problem there.
func InitConsole() error {
	return nil
}
