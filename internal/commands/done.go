package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/exitcode"
	"github.com/duyki2208/todo-list/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles a task's completion flag.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todo done <task-id>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}

	ctrl := newController(cfg, store, out, errOut)
	return exitFor(ctrl.Toggle(ctx, args[0]))
}
