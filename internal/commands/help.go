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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                    Show today's tasks (my-day view)
  todo view [common flags] [day|week|month|all]
  todo add [common flags] [--date YYYY-MM-DD] <text...>
  todo done [common flags] <task-id>
  todo rm [common flags] <task-id>
  todo search [common flags] <term...>
  todo precache [common flags] [--manifest <file>]
  todo serve [common flags] [--addr <host:port>]
  todo help
  todo version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
