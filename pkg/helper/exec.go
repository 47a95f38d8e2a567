package helper

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/whitekid/goxp/log"
)

var (
	loggerExec = log.New(log.AddCallerSkip(1))
)

// Execute prepare external command; nothing runs until Do()
func Execute(command ...string) *Executer { return &Executer{command: command} }

type Executer struct {
	command []string
	stdout  io.Writer
	stderr  io.Writer
}

// Output redirect stdout and stderr of Do()
func (exc *Executer) Stdout(w io.Writer) *Executer { exc.stdout = w; return exc }
func (exc *Executer) Stderr(w io.Writer) *Executer { exc.stderr = w; return exc }

// String command line as it would be typed in shell
func (exc *Executer) String() string { return strings.Join(exc.command, " ") }

// Do execute command, output stdout to stdout and stderr to stderr
func (exc *Executer) Do(ctx context.Context) error {
	if len(exc.command) == 0 {
		return exec.ErrNotFound
	}

	cwd, _ := os.Getwd()
	loggerExec.Debugf("execute: %s", exc.String())
	loggerExec.Debugf("dir: %s", cwd)

	cmd := exec.CommandContext(ctx, exc.command[0], exc.command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if exc.stdout != nil {
		cmd.Stdout = exc.stdout
	}
	if exc.stderr != nil {
		cmd.Stderr = exc.stderr
	}

	return cmd.Run()
}
