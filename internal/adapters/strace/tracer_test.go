package strace_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/adapters/strace"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeRun struct {
	log  string
	code int
	err  error
}

// setup returns a tracer whose executor writes the given strace log instead of running strace.
func setup(t *testing.T, run fakeRun) (*strace.Tracer, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	var argv []string
	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, proc domain.Process, _, _ any) (int, error) {
			argv = proc.Argv
			if run.err != nil {
				return 125, run.err
			}
			idx := slices.Index(proc.Argv, "-o")
			require.GreaterOrEqual(t, idx, 0)
			require.NoError(t, os.WriteFile(proc.Argv[idx+1], []byte(run.log), 0o600))
			return run.code, nil
		})

	return strace.New(executor, log), &argv
}

func TestTracer_Trace(t *testing.T) {
	dir := t.TempDir()
	tracer, argv := setup(t, fakeRun{
		log: `openat(AT_FDCWD, "input.txt", O_RDONLY) = 3
openat(AT_FDCWD, "/etc/passwd", O_RDONLY|O_CLOEXEC) = 3
openat(AT_FDCWD, "out.txt", O_WRONLY|O_CREAT, 0644) = 4
+++ exited with 2 +++
`,
		code: 2,
	})

	inv := domain.Invocation{Command: "cat input.txt > out.txt", Dir: dir}
	obs, err := tracer.Trace(context.Background(), inv, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 2, obs.ExitCode)
	assert.False(t, obs.Killed)
	assert.Equal(t, []string{filepath.Join(dir, "input.txt"), "/etc/passwd"}, obs.Opened)

	require.Len(t, *argv, 10)
	assert.Equal(t, []string{"strace", "-f", "-q", "-o"}, (*argv)[:4])
	assert.Equal(t, []string{"-e", "trace=open,openat", "/bin/sh", "-c", inv.Command}, (*argv)[5:])
	assert.NoFileExists(t, (*argv)[4], "trace log should be removed")
}

func TestTracer_Trace_CustomBinaries(t *testing.T) {
	tracer, argv := setup(t, fakeRun{log: "+++ exited with 0 +++\n"})

	inv := domain.Invocation{Command: "true", Tracer: "/opt/strace", Shell: "/bin/bash"}
	_, err := tracer.Trace(context.Background(), inv, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "/opt/strace", (*argv)[0])
	assert.Equal(t, "/bin/bash", (*argv)[7])
}

func TestTracer_Trace_Killed(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantCode int
	}{
		{name: "shell reports signal", code: 137, wantCode: 137},
		{name: "shell exits cleanly", code: 0, wantCode: 137},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, _ := setup(t, fakeRun{
				log:  "10 openat(AT_FDCWD, \"/x\", O_RDONLY) = 3\n11 +++ killed by SIGKILL +++\n10 +++ exited with 0 +++\n",
				code: tt.code,
			})

			obs, err := tracer.Trace(context.Background(), domain.Invocation{Command: "x"}, &bytes.Buffer{}, &bytes.Buffer{})
			require.NoError(t, err)

			assert.True(t, obs.Killed)
			assert.Equal(t, "SIGKILL", obs.Signal)
			assert.Equal(t, tt.wantCode, obs.ExitCode)
		})
	}
}

func TestTracer_Trace_Unavailable(t *testing.T) {
	t.Run("tracer cannot start", func(t *testing.T) {
		tracer, _ := setup(t, fakeRun{err: errors.New("exec: \"strace\": executable file not found in $PATH")})

		_, err := tracer.Trace(context.Background(), domain.Invocation{Command: "true"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.ErrorIs(t, err, domain.ErrTracerUnavailable)
		assert.ErrorContains(t, err, "executable file not found")
	})

	t.Run("no exit record", func(t *testing.T) {
		tracer, _ := setup(t, fakeRun{log: "", code: 1})

		_, err := tracer.Trace(context.Background(), domain.Invocation{Command: "true"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.ErrorIs(t, err, domain.ErrTracerUnavailable)
		assert.ErrorContains(t, err, "no exit record")
	})
}
