package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/exitcode"
	"github.com/duyki2208/todo-list/internal/task"
	"github.com/duyki2208/todo-list/internal/view"
)

func init() {
	Register(&ViewCmd{})
}

// viewNames maps CLI spellings to view names.
var viewNames = map[string]view.Name{
	"myday": view.MyDay,
	"day":   view.MyDay,
	"today": view.MyDay,
	"week":  view.ThisWeek,
	"month": view.ThisMonth,
	"all":   view.All,
	"other": view.All,
}

// ViewCmd renders a date-derived task view.
type ViewCmd struct{}

func (c *ViewCmd) Name() string      { return "view" }
func (c *ViewCmd) Aliases() []string { return []string{"ls"} }
func (c *ViewCmd) Synopsis() string  { return "Show tasks for a view (day, week, month, all)" }
func (c *ViewCmd) Usage() string     { return "todo view [day|week|month|all]" }
func (c *ViewCmd) NeedsStore() bool  { return true }

func (c *ViewCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ViewCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: at most one view name expected")
		return exitcode.UserError
	}

	name := view.MyDay
	if len(args) == 1 {
		if mapped, ok := viewNames[args[0]]; ok {
			name = mapped
		} else {
			// Unknown names fail closed to an empty view rather than
			// erroring, matching the engine's policy.
			name = view.Name(args[0])
		}
	}

	ctrl := newController(cfg, store, out, errOut)
	if err := ctrl.SwitchView(ctx, name); err != nil {
		return exitcode.BackendError
	}
	return exitcode.Success
}
