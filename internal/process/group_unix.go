//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so that
// KillProcessGroup can target it and its descendants together.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
