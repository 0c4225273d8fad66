// Package transform implements the pipeline stages applied to extracted content: in-process
// builtins and user supplied scripts run as subprocesses reading stdin and writing stdout.
package transform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Transform turns the output of one pipeline stage into the input of the next
type Transform interface {
	Transform(ctx context.Context, in []byte) ([]byte, error)
}

// Func adapts an ordinary function to Transform
type Func func(ctx context.Context, in []byte) ([]byte, error)

// Transform calls f(ctx, in)
func (f Func) Transform(ctx context.Context, in []byte) ([]byte, error) {
	return f(ctx, in)
}

// Command runs an external script, passing input to stdin and taking stdout as the result
type Command struct {
	Path string
	Args []string
	Dir  string // working directory, the feed directory
}

// Transform runs the command, a non-zero exit is an error carrying the stderr output.
// The process is killed when ctx is canceled.
func (c Command) Transform(ctx context.Context, in []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...) //nolint:gosec // scripts come from the feed configuration
	cmd.Dir = c.Dir
	cmd.Stdin = bytes.NewReader(in)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("run %s: %w", c, ctx.Err())
		}
		return nil, fmt.Errorf("run %s: %w, stderr: %s", c, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// String returns the command line
func (c Command) String() string {
	return strings.TrimSpace(c.Path + " " + strings.Join(c.Args, " "))
}

// Chain applies transforms in order, the output of each one is the input of the next
type Chain []Transform

// Transform runs all stages sequentially and stops on the first error
func (ch Chain) Transform(ctx context.Context, in []byte) ([]byte, error) {
	res := in
	for i, t := range ch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := t.Transform(ctx, res)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		res = out
	}
	return res, nil
}
