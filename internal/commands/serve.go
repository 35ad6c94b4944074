package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/devapi"
	"github.com/duyki2208/todo-list/internal/exitcode"
	"github.com/duyki2208/todo-list/internal/task"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs the in-memory development task API.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Run the in-memory development task API" }
func (c *ServeCmd) Usage() string     { return "todo serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsStore() bool  { return false }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "localhost:5002", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, _ task.Store, args []string, out, errOut io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintf(out, "serving tasks-collection API on %s\n", c.addr)
	}
	if err := devapi.New().Run(c.addr); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
