package store

import (
	"context"
	"errors"

	"todos/internal/models"
)

// ErrNotFound is returned when a todo does not exist.
var ErrNotFound = errors.New("todo not found")

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Store defines the interface for data persistence operations.
type Store interface {
	// WithSession runs fn inside a session bound to a single transaction.
	// The transaction is committed when fn returns nil and rolled back on
	// every other exit path.
	WithSession(ctx context.Context, fn func(Session) error) error

	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// Session is the set of operations available inside WithSession.
type Session interface {
	ListAll(ctx context.Context) ([]models.Todo, error)
	Insert(ctx context.Context, title string) (*models.Todo, error)
	FindByID(ctx context.Context, id int64) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, todo *models.Todo) error
}
