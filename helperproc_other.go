//go:build !windows

package main

import (
	"os/exec"
	"syscall"
)

// setHelperProcessAttrs puts notification processes in their own process
// group so terminal signals aimed at the app do not reach them twice.
func setHelperProcessAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
