// Package process provides subprocess execution helpers shared by the
// LaTeX compiler and the dependency checks.
package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	// Run executes name with args in dir (empty dir means inherit the
	// current directory) and returns captured stdout and stderr. The
	// returned error is the subprocess exit error, if any.
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)

	// LookPath reports where name resolves on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// LaTeX engines spawn helpers (mktexfmt, luaotfload); kill the whole
	// group on cancellation so none survive the parent.
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return cmd.Process.Kill()
	}

	if err := cmd.Run(); err != nil {
		return stdout.String(), stderr.String(), fmt.Errorf("running %s: %w", name, err)
	}
	return stdout.String(), stderr.String(), nil
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
