package weaver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/config"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/diagparser"
)

// ProcessWeaver implements the Weaver port by running the external weaver executable
type ProcessWeaver struct {
	command string
	args    []string
	timeout time.Duration
	env     []string
}

// NewProcessWeaver creates a weaver from the weaver section of the configuration
func NewProcessWeaver(cfg config.WeaverConfig) *ProcessWeaver {
	args := make([]string, len(cfg.Args))
	copy(args, cfg.Args)

	env := make([]string, 0, len(cfg.Env))
	for k, v := range cfg.Env {
		env = append(env, k+"="+v)
	}

	return &ProcessWeaver{
		command: cfg.Command,
		args:    args,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		env:     env,
	}
}

// RunResult holds the raw process output alongside the parsed diagnostics
type RunResult struct {
	Output   string
	ExitCode int
	Parsed   *diagparser.ParseResult
	Duration time.Duration
	Err      error
}

// Weave runs the weaver and maps its diagnostics to a WeaveResult.
// A non-zero exit or any error diagnostic makes the result failed.
func (w *ProcessWeaver) Weave(ctx context.Context, req domain.WeaveRequest) domain.WeaveResult {
	run := w.Run(ctx, req)

	result := domain.WeaveResult{}
	for _, issue := range run.Parsed.Warnings {
		result.Warnings = append(result.Warnings, diagparser.FormatIssue(issue))
	}

	switch {
	case run.Parsed.HasErrors():
		result.Err = domain.NewWeaveFailure(diagparser.FormatIssue(run.Parsed.Errors[0]))
	case run.Err != nil:
		result.Err = fmt.Errorf("%w: %v (%s)", domain.ErrWeaveFailed, run.Err, run.Parsed.GetSummary())
		if tail := outputTail(run.Output, crashTailLines); tail != "" {
			result.Err = fmt.Errorf("%w\n%s", result.Err, tail)
		}
	}

	return result
}

// crashTailLines bounds how much raw output is attached to an undiagnosed failure
const crashTailLines = 20

// outputTail returns the last n non-empty lines of output
func outputTail(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		line := strings.TrimRight(lines[i], " \t\r")
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	slices.Reverse(kept)
	return strings.Join(kept, "\n")
}

// Run executes the weaver process and returns its raw result
func (w *ProcessWeaver) Run(ctx context.Context, req domain.WeaveRequest) *RunResult {
	startTime := time.Now()
	result := &RunResult{Parsed: diagparser.Parse("")}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	//nolint:gosec // G204: the weaver command comes from the user's configuration
	cmd := exec.CommandContext(ctx, w.command, w.Args(req)...)
	cmd.Env = append(os.Environ(), w.env...)
	cmd.WaitDelay = time.Second

	output, err := cmd.CombinedOutput()
	result.Duration = time.Since(startTime)
	result.Output = string(output)
	result.Parsed = diagparser.Parse(result.Output)

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("weaver timed out after %v", w.timeout)
		}
		result.Err = err
	}

	return result
}

// Args builds the command line passed to the weaver.
// Reference paths keep their order.
func (w *ProcessWeaver) Args(req domain.WeaveRequest) []string {
	args := make([]string, 0, len(w.args)+4+2*len(req.References))
	args = append(args, w.args...)
	args = append(args, "--assembly", req.AssemblyPath, "--output", req.OutputPath)
	for _, ref := range req.References {
		args = append(args, "--reference", ref)
	}
	return args
}

// IsAvailable checks if the weaver command can be found
func (w *ProcessWeaver) IsAvailable() bool {
	if w.command == "" {
		return false
	}
	_, err := exec.LookPath(w.command)
	return err == nil
}

// Command returns the configured weaver executable
func (w *ProcessWeaver) Command() string {
	return w.command
}
