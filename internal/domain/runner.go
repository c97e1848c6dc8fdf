package domain

import (
	"context"
	"io"
)

// Command describes one invocation of an external tool.
type Command struct {
	Name  string
	Args  []string
	Env   []string // appended to the inherited environment
	Stdin io.Reader
}

// CommandRunner executes external tools and returns their standard output.
// A non-zero exit is reported as an error.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}
