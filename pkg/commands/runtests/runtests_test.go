// pkg/commands/runtests/runtests_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: /bin/sh for the fake runner
// PURPOSE: Test runner invocation and flag translation

package runtests_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/commands/runtests"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/testutil"
)

// fakeRunner writes a shell script printing its arguments and exiting with code.
func fakeRunner(t *testing.T, env *testutil.Environment, code string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell runner")
	}
	path := testutil.WriteFile(t, env.Root, "bin/tt", "#!/bin/sh\necho \"$@\"\nexit "+code+"\n")
	require.NoError(t, os.Chmod(path, 0755))
	env.Config.Test.Runner = path
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts runtests.TestOptions
		want []string
	}{
		{
			name: "defaults",
			want: []string{"--root", "/pkg", "run", "--no-fail-fast"},
		},
		{
			name: "all flags",
			opts: runtests.TestOptions{Pattern: "all()", FailFast: true, Threads: 4, Verbose: true},
			want: []string{"--root", "/pkg", "run", "--expression", "all()", "--jobs", "4", "--verbose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtests.Args("/pkg", tt.opts))
		})
	}
}

func TestTest(t *testing.T) {
	env := testutil.NewEnvironment(t)
	fakeRunner(t, env, "0")
	var out bytes.Buffer

	result, err := runtests.Test(context.Background(), runtests.TestOptions{
		Env:     env.Env,
		Threads: 2,
		Stdout:  &out,
	})
	require.NoError(t, err)

	assert.Equal(t, env.CurrentDir, result.Dir)
	assert.Equal(t, "--root "+env.CurrentDir+" run --no-fail-fast --jobs 2", strings.TrimSpace(out.String()))
}

func TestTest_RunnerFails(t *testing.T) {
	env := testutil.NewEnvironment(t)
	fakeRunner(t, env, "1")

	_, err := runtests.Test(context.Background(), runtests.TestOptions{Env: env.Env, Stdout: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTestRunner))
}

func TestTest_RunnerMissing(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Config.Test.Runner = filepath.Join(env.Root, "no-such-runner")

	_, err := runtests.Test(context.Background(), runtests.TestOptions{Env: env.Env})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTestRunner))
}

func TestTest_DryRun(t *testing.T) {
	env := testutil.NewEnvironment(t).DryRun()
	env.Config.Test.Runner = "definitely-not-installed"

	result, err := runtests.Test(context.Background(), runtests.TestOptions{Env: env.Env, Pattern: "foo"})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, "definitely-not-installed", result.Runner)
	assert.Contains(t, result.Args, "foo")
}

func TestTest_MissingDirectory(t *testing.T) {
	env := testutil.NewEnvironment(t)

	_, err := runtests.Test(context.Background(), runtests.TestOptions{Env: env.Env, Path: "nope"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
