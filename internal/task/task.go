// Package task defines the task data model and the backend-agnostic
// store interface for task operations.
package task

// DateLayout is the calendar date format used throughout the app.
const DateLayout = "2006-01-02"

// Task represents a single task record.
type Task struct {
	// ID is assigned by the remote store on creation and immutable after.
	ID string `json:"id,omitempty"`

	// Text is the task description. Non-empty at creation; enforced by
	// the caller, never stored invalid.
	Text string `json:"text"`

	// Date is the task's calendar date in YYYY-MM-DD form.
	Date string `json:"date"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed"`

	// Timestamp is the creation instant in milliseconds since epoch.
	Timestamp int64 `json:"timestamp"`

	// UserID references the owning user. Weak reference, not ownership.
	UserID string `json:"user_id,omitempty"`
}

// Draft holds the caller-supplied fields for a new task. The store fills
// in the owner, the creation timestamp and the completion flag.
type Draft struct {
	Text string
	Date string
}
