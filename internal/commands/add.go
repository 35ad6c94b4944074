package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/exitcode"
	"github.com/duyki2208/todo-list/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	date string
}

// SetDate sets the due date (for testing).
func (c *AddCmd) SetDate(date string) {
	c.date = date
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todo add [--date YYYY-MM-DD] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	// Check for text
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	// No date means today, like adding from the my-day view.
	date := c.date
	if date == "" {
		date = time.Now().Format(task.DateLayout)
	}
	if _, err := time.Parse(task.DateLayout, date); err != nil {
		fmt.Fprintf(errOut, "error: invalid date: %s\n", c.date)
		return exitcode.UserError
	}

	ctrl := newController(cfg, store, out, errOut)
	return exitFor(ctrl.Add(ctx, task.Draft{Text: text, Date: date}))
}
