// Package controller orchestrates the task store, the view engine and the
// render sink: every mutation or view switch re-fetches the collection,
// recomputes the current view and triggers a render.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/duyki2208/todo-list/internal/task"
	"github.com/duyki2208/todo-list/internal/view"
)

// State is the controller's lifecycle state.
type State int

const (
	// Idle is the initial state before the first action.
	Idle State = iota
	// Loading means a fetch-compute-render cycle is in flight.
	Loading
	// Ready means the last cycle completed and its model is on screen.
	Ready
	// Failed means the last action failed; the previously rendered
	// model is retained (stale-but-visible beats a blank screen).
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Renderer is the render sink the controller drives. Render replaces the
// whole on-screen model. Notify is timed feedback after a user-initiated
// mutation. Fail populates the persistent error region when a background
// refresh fails.
type Renderer interface {
	Render(current view.Name, m view.Model, now time.Time)
	Notify(text string, failure bool)
	Fail(err error)
}

// Controller owns the current view and search term and runs the
// fetch-compute-render sequence for every triggered action. Each instance
// is independent; there is no ambient state.
type Controller struct {
	store  task.Store
	sink   Renderer
	clock  func() time.Time
	logger *slog.Logger

	// seq numbers refresh cycles; completions that are no longer the
	// latest issued are discarded so an out-of-order network return
	// cannot overwrite a newer render.
	seq atomic.Uint64

	mu      sync.Mutex
	state   State
	current view.Name
	term    string
	model   view.Model
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the reference-time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.clock = now }
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a controller over the given store and render sink. The
// initial view is my-day.
func New(store task.Store, sink Renderer, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		sink:    sink,
		clock:   time.Now,
		logger:  slog.Default(),
		state:   Idle,
		current: view.MyDay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentView returns the held view name.
func (c *Controller) CurrentView() view.Name {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Model returns the last rendered model.
func (c *Controller) Model() view.Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// SwitchView makes name the current view, clears any active search term
// and runs a refresh cycle.
func (c *Controller) SwitchView(ctx context.Context, name view.Name) error {
	c.mu.Lock()
	c.current = name
	c.term = ""
	c.mu.Unlock()
	return c.refresh(ctx)
}

// Search renders the search grouping for term over the whole collection.
// The current view is left untouched, so a blank term (empty or all
// whitespace) restores it.
func (c *Controller) Search(ctx context.Context, term string) error {
	c.mu.Lock()
	c.term = strings.TrimSpace(term)
	c.mu.Unlock()
	return c.refresh(ctx)
}

// Add creates a task from the draft and refreshes the current view.
func (c *Controller) Add(ctx context.Context, draft task.Draft) error {
	_, err := c.store.Create(ctx, draft)
	return c.afterMutation(ctx, "Task added", err)
}

// Toggle flips the completion flag of the identified task.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	err := c.toggle(ctx, id)
	return c.afterMutation(ctx, "Task updated", err)
}

func (c *Controller) toggle(ctx context.Context, id string) error {
	tasks, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == id {
			t.Completed = !t.Completed
			_, err := c.store.Update(ctx, id, t)
			return err
		}
	}
	return fmt.Errorf("%w: %s", task.ErrNotFound, id)
}

// Delete removes the identified task and refreshes the current view.
func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.store.Delete(ctx, id)
	return c.afterMutation(ctx, "Task deleted", err)
}

// afterMutation surfaces timed feedback for the mutation and, on success,
// re-runs the fetch-compute-render sequence against the unchanged current
// view. On failure the previously rendered model stays put.
func (c *Controller) afterMutation(ctx context.Context, success string, err error) error {
	if err != nil {
		c.setState(Failed)
		c.sink.Notify(err.Error(), true)
		return err
	}
	c.sink.Notify(success, false)
	return c.refresh(ctx)
}

// refresh is one fetch-compute-render cycle. The cycle takes a sequence
// token up front; if a newer cycle was issued by the time the fetch
// returns, the result is discarded instead of rendered.
func (c *Controller) refresh(ctx context.Context) error {
	token := c.seq.Add(1)
	c.setState(Loading)

	tasks, err := c.store.List(ctx)
	if err != nil {
		c.setState(Failed)
		c.sink.Fail(err)
		return err
	}

	now := c.clock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq.Load() {
		c.logger.Debug("discarding stale refresh", "token", token)
		return nil
	}
	var m view.Model
	if c.term != "" {
		m = view.Search(tasks, c.term)
	} else {
		m = view.Compute(tasks, c.current, now)
	}
	c.model = m
	c.state = Ready
	// The render happens inside the critical section: a cycle that
	// passed the token check cannot emit after a later cycle's render.
	c.sink.Render(c.current, m, now)
	return nil
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
