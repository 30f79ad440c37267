package osascript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPath is the scripting binary used when none is configured
const DefaultPath = "osascript"

// Runner executes AppleScript source and returns its textual result
type Runner interface {
	// Run compiles and executes script. args are delivered to the script's
	// run handler as argv, so callers never have to splice values into source.
	Run(ctx context.Context, script string, args ...string) (string, error)
}

// Exec runs scripts through the osascript command line tool
type Exec struct {
	path    string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewExec creates a Runner backed by the osascript binary at path.
// A zero timeout means scripts run until the host returns.
func NewExec(path string, timeout time.Duration, logger zerolog.Logger) *Exec {
	if path == "" {
		path = DefaultPath
	}
	return &Exec{
		path:    path,
		timeout: timeout,
		logger:  logger.With().Str("component", "osascript").Logger(),
	}
}

// Run feeds script to osascript on stdin and returns trimmed stdout
func (e *Exec) Run(ctx context.Context, script string, args ...string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// "-" makes osascript read the program from stdin; anything after it is argv
	cmd := exec.CommandContext(ctx, e.path, append([]string{"-"}, args...)...)
	cmd.Stdin = strings.NewReader(script)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	e.logger.Debug().
		Str("script", script).
		Strs("args", args).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("Ran script")

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", &ScriptError{
				Kind:    KindExecution,
				Message: fmt.Sprintf("script did not finish: %v", ctxErr),
			}
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", parseError(stderr.String())
		}
		// Binary missing, context expired before start, etc.
		return "", &ScriptError{
			Kind:    KindExecution,
			Message: fmt.Sprintf("failed to run %s: %v", e.path, err),
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
