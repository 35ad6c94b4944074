package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/exitcode"
	"github.com/duyki2208/todo-list/internal/task"
)

func init() {
	Register(&SearchCmd{})
}

// SearchCmd renders tasks matching a text search.
type SearchCmd struct{}

func (c *SearchCmd) Name() string      { return "search" }
func (c *SearchCmd) Aliases() []string { return []string{"find"} }
func (c *SearchCmd) Synopsis() string  { return "Search tasks by text" }
func (c *SearchCmd) Usage() string     { return "todo search <term...>" }
func (c *SearchCmd) NeedsStore() bool  { return true }

func (c *SearchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SearchCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: search term required")
		return exitcode.UserError
	}
	term := strings.Join(args, " ")

	ctrl := newController(cfg, store, out, errOut)
	if err := ctrl.Search(ctx, term); err != nil {
		return exitcode.BackendError
	}
	return exitcode.Success
}
