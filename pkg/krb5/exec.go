package krb5

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Options configures an ExecToolchain. Zero-value fields fall back to the
// binaries found on PATH and slog.Default().
type Options struct {
	KlistPath    string
	KinitPath    string
	KdestroyPath string
	Logger       *slog.Logger
}

// ExecToolchain implements Toolchain by spawning the system krb5 binaries.
type ExecToolchain struct {
	klist    string
	kinit    string
	kdestroy string
	logger   *slog.Logger
}

// NewExecToolchain creates a toolchain around the system krb5 binaries.
func NewExecToolchain(opts Options) *ExecToolchain {
	if opts.KlistPath == "" {
		opts.KlistPath = "klist"
	}
	if opts.KinitPath == "" {
		opts.KinitPath = "kinit"
	}
	if opts.KdestroyPath == "" {
		opts.KdestroyPath = "kdestroy"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &ExecToolchain{
		klist:    opts.KlistPath,
		kinit:    opts.KinitPath,
		kdestroy: opts.KdestroyPath,
		logger:   opts.Logger,
	}
}

func (t *ExecToolchain) CheckValid(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, t.klist, "-s")
	t.logCommand(ctx, cmd)

	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, fmt.Errorf("invoking %s: %w", t.klist, ctx.Err())
	}
	// A non-zero exit is the primitive's way of saying "no valid ticket".
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("invoking %s: %w", t.klist, err)
}

func (t *ExecToolchain) Listing(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, t.klist, "-l")
	t.logCommand(ctx, cmd)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("invoking %s: %w", t.klist, ctx.Err())
		}
		// An empty or absent cache makes klist exit non-zero; whatever
		// listing text it produced is still the answer.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), nil
		}
		return "", fmt.Errorf("invoking %s: %w", t.klist, err)
	}
	return string(output), nil
}

func (t *ExecToolchain) Destroy(ctx context.Context, principal string) error {
	cmd := exec.CommandContext(ctx, t.kdestroy, "-q", "-p", principal)
	t.logCommand(ctx, cmd)

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("invoking %s: %w", t.kdestroy, ctx.Err())
	}
	// Nothing to destroy is not an error.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return fmt.Errorf("invoking %s: %w", t.kdestroy, err)
}

func (t *ExecToolchain) Acquire(ctx context.Context, principal string, password io.Reader, flag string) error {
	var args []string
	if flag != "" {
		args = append(args, flag)
	}
	args = append(args, principal)

	cmd := exec.CommandContext(ctx, t.kinit, args...)
	cmd.Stdin = password

	// kinit writes its password prompt to stdout and its error text to
	// stderr; only the latter is the diagnostic.
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	t.logCommand(ctx, cmd)

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("invoking %s: %w", t.kinit, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &AcquireError{Diagnostic: strings.TrimSpace(stderr.String())}
	}
	return fmt.Errorf("invoking %s: %w", t.kinit, err)
}

// logCommand logs the command line about to run. The secret never appears
// here: it is not part of argv for any primitive.
func (t *ExecToolchain) logCommand(ctx context.Context, cmd *exec.Cmd) {
	t.logger.DebugContext(ctx, "invoking krb5 primitive",
		slog.String("command", shellescape.QuoteCommand(cmd.Args)),
	)
}
