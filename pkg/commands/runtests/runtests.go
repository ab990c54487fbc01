// Package runtests runs a package's test suite through the external Tytanic runner.
package runtests

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/types"
)

// DefaultRunner is used when test.runner is not configured.
const DefaultRunner = "tt"

// TestOptions defines the options for the Test command.
type TestOptions struct {
	Env  *types.Env
	Path string
	// Pattern is a Tytanic test set expression.
	Pattern  string
	FailFast bool
	Threads  int
	Verbose  bool

	// Stdout and Stderr receive the runner output, os.Stdout and os.Stderr when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Test runs the runner in the package directory. A non-zero exit is an error.
func Test(ctx context.Context, opts TestOptions) (*types.TestResult, error) {
	log := logging.GetLogger("commands.test")
	log.Debug().Str("command", "Test").Msg("Executing command")

	env := opts.Env
	dir := env.Dir(opts.Path)
	if !paths.IsDir(dir) {
		return nil, errors.Newf(errors.ErrNotFound, "%s is not a directory", dir)
	}

	runner := DefaultRunner
	if env.Config != nil && env.Config.Test.Runner != "" {
		runner = env.Config.Test.Runner
	}

	result := &types.TestResult{
		Runner: runner,
		Args:   Args(dir, opts),
		Dir:    dir,
		DryRun: env.DryRun,
	}
	if env.DryRun {
		log.Info().Str("runner", runner).Strs("args", result.Args).Msg("dry-run, runner not started")
		return result, nil
	}

	bin, err := exec.LookPath(runner)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTestRunner, "test runner %q not found, install tytanic or set test.runner", runner)
	}

	cmd := exec.CommandContext(ctx, bin, result.Args...)
	cmd.Dir = dir
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)

	log.Info().Str("runner", bin).Strs("args", result.Args).Msg("running tests")
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTestRunner, "%s failed", runner)
	}

	log.Info().Str("command", "Test").Msg("Command finished")
	return result, nil
}

// Args translates the options into runner arguments.
func Args(dir string, opts TestOptions) []string {
	args := []string{"--root", dir, "run"}
	if opts.Pattern != "" {
		args = append(args, "--expression", opts.Pattern)
	}
	if !opts.FailFast {
		args = append(args, "--no-fail-fast")
	}
	if opts.Threads > 0 {
		args = append(args, "--jobs", strconv.Itoa(opts.Threads))
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	return args
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
