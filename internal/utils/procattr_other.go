//go:build !windows

package utils

import "syscall"

func hiddenWindowAttr() *syscall.SysProcAttr {
	return nil
}
