package helper

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := Execute("ls", "/not-found").Stderr(&bytes.Buffer{}).Do(ctx)
	require.Error(t, err)
	require.IsType(t, &exec.ExitError{}, err)

	require.Error(t, Execute().Do(ctx))
}

func TestExecuteStdout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	exc := Execute("echo", "hello", "world").Stdout(&buf)
	require.Equal(t, "echo hello world", exc.String())
	require.NoError(t, exc.Do(ctx))
	require.Equal(t, "hello world\n", buf.String())
}
