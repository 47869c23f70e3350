// Package execution runs external programs and records Markdown status entries.
package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	errorEmptyCommandName = "command name is empty"
	errorRunCommandFormat = "run %s: %w"
)

// CommandResult captures the output of one synchronous command execution.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the command exited with status zero.
func (result CommandResult) Succeeded() bool {
	return result.ExitCode == 0
}

// Runner invokes a named external program and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, directory string, name string, arguments ...string) (CommandResult, error)
}

// ProcessRunner implements Runner with os/exec.
type ProcessRunner struct{}

// NewProcessRunner constructs a ProcessRunner.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run executes name with arguments in directory. A non-zero exit status is reported through
// CommandResult.ExitCode; the error is reserved for programs that could not be started.
func (runner *ProcessRunner) Run(ctx context.Context, directory string, name string, arguments ...string) (CommandResult, error) {
	if strings.TrimSpace(name) == "" {
		return CommandResult{}, errors.New(errorEmptyCommandName)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	// #nosec G204
	command := exec.CommandContext(ctx, name, arguments...)
	command.Dir = directory
	var stdoutBuffer, stderrBuffer bytes.Buffer
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer

	runError := command.Run()
	result := CommandResult{
		Stdout: strings.TrimSpace(stdoutBuffer.String()),
		Stderr: strings.TrimSpace(stderrBuffer.String()),
	}
	if runError != nil {
		var exitError *exec.ExitError
		if errors.As(runError, &exitError) {
			result.ExitCode = exitError.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf(errorRunCommandFormat, name, runError)
	}
	return result, nil
}

var _ Runner = (*ProcessRunner)(nil)
