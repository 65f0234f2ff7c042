//go:build windows

package process

import "os/exec"

// setProcessGroup is a no-op on Windows; KillProcessGroup uses taskkill's
// tree mode, which needs only the root PID.
func setProcessGroup(cmd *exec.Cmd) {}
