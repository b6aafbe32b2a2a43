package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"ucrtpack/internal/types"
)

// CommandRunner abstracts external tool invocation so steps can be exercised
// in tests without spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
	// Look resolves a tool against PATH, so steps can fail before any
	// extraction work starts when a tool is missing.
	Look(name string) (string, error)
}

type execRunner struct {
	verbose bool
}

// NewExecRunner returns the CommandRunner backed by os/exec. In verbose mode
// tool output is streamed to the console as well as captured.
func NewExecRunner(verbose bool) CommandRunner {
	return execRunner{verbose: verbose}
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = hiddenWindowAttr()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.verbose {
		cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	}
	err := cmd.Run()
	output := TryDecodeConsole(stdout.Bytes())
	if err != nil {
		errMsg := strings.TrimSpace(TryDecodeConsole(stderr.Bytes()))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, &types.ToolError{
				Tool:   name,
				Args:   args,
				Code:   exitErr.ExitCode(),
				Output: errMsg,
				Err:    err,
			}
		}
		if errMsg != "" {
			return output, fmt.Errorf("%w: %s", err, errMsg)
		}
		return output, err
	}
	return output, nil
}

func (execRunner) Look(name string) (string, error) {
	return LookTool(name)
}

// LookTool resolves a tool name against PATH, returning a typed error when
// the tool is not installed.
func LookTool(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", types.NewError(types.ErrCodeNotFound, fmt.Sprintf("%s not found in PATH", name), err)
	}
	return path, nil
}
