package commands

import (
	"errors"
	"io"

	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/controller"
	"github.com/duyki2208/todo-list/internal/exitcode"
	"github.com/duyki2208/todo-list/internal/output"
	"github.com/duyki2208/todo-list/internal/task"
)

// newController wires a controller to a terminal sink on the command's
// writers.
func newController(cfg *config.Config, store task.Store, out, errOut io.Writer) *controller.Controller {
	sink := output.NewTerminal(out, errOut)
	sink.Quiet = cfg.Quiet
	return controller.New(store, sink)
}

// exitFor maps a mutation error to an exit code. The sink has already
// surfaced the message; this only decides how the process ends.
func exitFor(err error) int {
	if err == nil {
		return exitcode.Success
	}
	if errors.Is(err, task.ErrNotFound) {
		return exitcode.UserError
	}
	return exitcode.BackendError
}
