package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/cmd/memo/commands"
	"go.trai.ch/memo/internal/app"
	"go.trai.ch/memo/internal/build"
)

type mockApp struct {
	runFunc    func(ctx context.Context, args []string, opts app.RunOptions) (int, error)
	depsFunc   func(ctx context.Context, args []string, opts app.Options) error
	forgetFunc func(ctx context.Context, args []string, opts app.Options) error
	cleanFunc  func(ctx context.Context, opts app.Options) error
	watchFunc  func(ctx context.Context, args []string, opts app.RunOptions) error
}

func (m *mockApp) Run(ctx context.Context, args []string, opts app.RunOptions) (int, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, args, opts)
	}
	return 0, nil
}

func (m *mockApp) Deps(ctx context.Context, args []string, opts app.Options) error {
	if m.depsFunc != nil {
		return m.depsFunc(ctx, args, opts)
	}
	return nil
}

func (m *mockApp) Forget(ctx context.Context, args []string, opts app.Options) error {
	if m.forgetFunc != nil {
		return m.forgetFunc(ctx, args, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.Options) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, args []string, opts app.RunOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, args, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedArgs []string

		mock := &mockApp{
			runFunc: func(_ context.Context, args []string, opts app.RunOptions) (int, error) {
				capturedOpts = opts
				capturedArgs = args
				return 0, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"-c", "custom.yaml", "--json-log",
			"run", "-t", "-f", "-s", "-D", "-v", "--pty",
			"--store", "deps.json", "--digest", "xxhash",
			"-d", "/opt", "--irrelevant", "/srv",
			"--", "cc", "-c", "main.c",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"cc", "-c", "main.c"}, capturedArgs)
		assert.Equal(t, app.RunOptions{
			Options: app.Options{
				ConfigPath: "custom.yaml",
				JSONLog:    true,
				Verbose:    true,
				Store:      "deps.json",
			},
			ModTime:     true,
			Force:       true,
			ShowSkipped: true,
			ShowDeps:    true,
			PTY:         true,
			Digest:      "xxhash",
			Irrelevant:  []string{"/opt", "/srv"},
		}, capturedOpts)
	})

	t.Run("leaves flags after the command to the command", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedArgs []string

		mock := &mockApp{
			runFunc: func(_ context.Context, args []string, opts app.RunOptions) (int, error) {
				capturedOpts = opts
				capturedArgs = args
				return 0, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "--no-trace", "make", "-f", "Makefile"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, capturedOpts.NoTrace)
		assert.False(t, capturedOpts.Force)
		assert.Equal(t, []string{"make", "-f", "Makefile"}, capturedArgs)
	})

	t.Run("records the exit code", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) (int, error) {
				return 3, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "false"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, cli.ExitCode())
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) (int, error) {
				return 125, errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "true"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
		assert.Equal(t, 125, cli.ExitCode())
	})

	t.Run("shows usage when no command provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) (int, error) {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"run"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Watch(t *testing.T) {
	var capturedOpts app.RunOptions
	var capturedArgs []string

	mock := &mockApp{
		watchFunc: func(_ context.Context, args []string, opts app.RunOptions) error {
			capturedOpts = opts
			capturedArgs = args
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "-t", "--", "go", "test", "./..."})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, capturedOpts.ModTime)
	assert.Equal(t, []string{"go", "test", "./..."}, capturedArgs)
}

func TestCommands_Records(t *testing.T) {
	t.Run("deps", func(t *testing.T) {
		var capturedArgs []string
		var capturedOpts app.Options
		mock := &mockApp{
			depsFunc: func(_ context.Context, args []string, opts app.Options) error {
				capturedArgs = args
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"--store", "x.deps", "deps", "cc", "-c", "main.c"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"cc", "-c", "main.c"}, capturedArgs)
		assert.Equal(t, "x.deps", capturedOpts.Store)
	})

	t.Run("forget", func(t *testing.T) {
		var capturedArgs []string
		mock := &mockApp{
			forgetFunc: func(_ context.Context, args []string, _ app.Options) error {
				capturedArgs = args
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"forget", "make", "all"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"make", "all"}, capturedArgs)
	})

	t.Run("deps without a command lists every record", func(t *testing.T) {
		called := false
		mock := &mockApp{
			depsFunc: func(_ context.Context, args []string, _ app.Options) error {
				called = true
				assert.Empty(t, args)
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"deps"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
	})

	t.Run("forget requires a command", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"forget"})

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func(_ context.Context, opts app.Options) error {
			called = true
			assert.Equal(t, "custom.yaml", opts.ConfigPath)
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "-c", "custom.yaml"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "memo version "+build.Version)
}
