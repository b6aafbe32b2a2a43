//go:build windows

package utils

import (
	"os"

	"golang.org/x/sys/windows"
)

const cpUTF8 = 65001

// InitConsole switches the console to UTF-8 and enables virtual terminal
// processing so ANSI colors render.
func InitConsole() error {
	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	kernel32.NewProc("SetConsoleCP").Call(uintptr(cpUTF8))
	kernel32.NewProc("SetConsoleOutputCP").Call(uintptr(cpUTF8))

	handle := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return err
	}
	mode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING | windows.ENABLE_PROCESSED_OUTPUT
	return windows.SetConsoleMode(handle, mode)
}
