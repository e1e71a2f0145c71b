package shell

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_StartPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pseudo-terminals unavailable: %v", err)
	}
	_ = ptmx.Close()
	_ = tty.Close()

	e := NewExecutor(mocks.NewMockLogger(gomock.NewController(t)))

	var out bytes.Buffer
	cmd := exec.Command("/bin/sh", "-c", "test -t 1 && echo tty")
	wait, err := e.start(cmd, true, &out, &out)
	require.NoError(t, err)
	require.NoError(t, wait())

	assert.Equal(t, "tty", strings.TrimSpace(out.String()))
}
