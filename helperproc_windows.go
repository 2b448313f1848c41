//go:build windows

package main

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps a console window from flashing up for the child.
const createNoWindow = 0x08000000

// setHelperProcessAttrs starts notification processes without a console.
// They stay in the parent's job so they die with it.
func setHelperProcessAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
