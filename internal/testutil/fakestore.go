// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/duyki2208/todo-list/internal/task"
)

// FakeStore is an in-memory implementation of task.Store for testing.
type FakeStore struct {
	mu     sync.RWMutex
	tasks  []task.Task
	nextID int

	// Error injection for testing.
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// ListFunc, when set, fully replaces List. Used by interleaving
	// tests that need to gate individual calls.
	ListFunc func(ctx context.Context) ([]task.Task, error)

	// Now stamps created tasks. Defaults to time.Now.
	Now func() time.Time
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{Now: time.Now}
}

// Seed adds tasks directly, bypassing Create.
func (f *FakeStore) Seed(tasks ...task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// List implements task.Store.
func (f *FakeStore) List(ctx context.Context) ([]task.Task, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]task.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// Create implements task.Store.
func (f *FakeStore) Create(ctx context.Context, draft task.Draft) (task.Task, error) {
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	t := task.Task{
		ID:        fmt.Sprintf("task-%d", f.nextID),
		Text:      draft.Text,
		Date:      draft.Date,
		Completed: false,
		Timestamp: f.Now().UnixMilli(),
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Update implements task.Store.
func (f *FakeStore) Update(ctx context.Context, id string, t task.Task) (task.Task, error) {
	if f.UpdateErr != nil {
		return task.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.tasks {
		if existing.ID == id {
			t.ID = id
			f.tasks[i] = t
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

// Delete implements task.Store.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.tasks {
		if existing.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return task.ErrNotFound
}
