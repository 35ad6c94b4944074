package task

import "context"

// Store defines the interface for task backend operations. All remote
// collection calls go through this interface; commands and the controller
// never talk to the transport directly.
type Store interface {
	// List returns the user's tasks as an ordered slice.
	// List never fails hard: transport failures and unusable payloads
	// yield an empty slice so the view layer always has valid input.
	// Implementations that can distinguish injected faults may still
	// return an error (the in-memory fake does, for controller tests).
	List(ctx context.Context) ([]Task, error)

	// Create submits a draft and returns the stored task including its
	// server-assigned ID. Not safe to retry blindly: repeated calls
	// create distinct records.
	Create(ctx context.Context, draft Draft) (Task, error)

	// Update replaces the identified task wholesale. Retry-safe for the
	// same ID.
	Update(ctx context.Context, id string, t Task) (Task, error)

	// Delete removes the identified task. Hard delete, retry-safe.
	Delete(ctx context.Context, id string) error
}
