package models

import "errors"

// Todo is a single to-do record.
type Todo struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Complete bool   `json:"complete" db:"complete"`
}

// Validate checks that the todo has a title. The title is kept verbatim,
// so whitespace-only titles are valid.
func (t *Todo) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// Toggle flips the completion flag.
func (t *Todo) Toggle() {
	t.Complete = !t.Complete
}

// Status returns a short label for the completion state.
func (t Todo) Status() string {
	if t.Complete {
		return "complete"
	}
	return "open"
}
