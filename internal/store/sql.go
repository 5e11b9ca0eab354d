package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"todos/internal/models"
)

// Options configures Open.
type Options struct {
	Driver string
	DSN    string
	Logger *slog.Logger
}

// SQLStore implements the Store interface on top of a SQL database.
type SQLStore struct {
	db     *sqlx.DB
	driver string
	logger *slog.Logger
}

// Open connects to the configured database and applies pending migrations.
func Open(ctx context.Context, opts Options) (*SQLStore, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	dsn := opts.DSN
	switch driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres, DriverMySQL:
		if dsn == "" {
			return nil, fmt.Errorf("dsn is required for driver %s", driver)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases shared and serializes writers.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SQLStore{
		db:     db,
		driver: driver,
		logger: logger.With("component", "store", "driver", driver),
	}, nil
}

// NewSQLiteStore opens a SQLite-backed store at the given path.
func NewSQLiteStore(dbPath string) (*SQLStore, error) {
	return Open(context.Background(), Options{Driver: DriverSQLite, DSN: dbPath})
}

func sqliteDSN(path string) string {
	if path == "" {
		path = ":memory:"
	}
	if strings.Contains(path, "?") {
		return path + "&_busy_timeout=5000"
	}
	return path + "?_busy_timeout=5000"
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithSession runs fn inside a transaction. The transaction is committed
// only when fn returns nil; errors and panics roll it back.
func (s *SQLStore) WithSession(ctx context.Context, fn func(Session) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session: %w", err)
	}

	log := s.logger.With("session_id", uuid.NewString())
	log.Debug("session opened")

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("session rollback failed", "error", err)
			return
		}
		log.Debug("session rolled back")
	}()

	if err := fn(&sqlSession{tx: tx, driver: s.driver}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	committed = true
	log.Debug("session committed")

	return nil
}

// sqlSession implements Session against an open transaction.
type sqlSession struct {
	tx     *sqlx.Tx
	driver string
}

// ListAll returns every todo in insertion order.
func (s *sqlSession) ListAll(ctx context.Context) ([]models.Todo, error) {
	todos := []models.Todo{}
	err := s.tx.SelectContext(ctx, &todos, `SELECT id, title, complete FROM todos ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Insert persists a new open todo with the given title.
func (s *sqlSession) Insert(ctx context.Context, title string) (*models.Todo, error) {
	todo := &models.Todo{Title: title}
	query := `INSERT INTO todos (title, complete) VALUES (?, ?)`

	if s.driver == DriverPostgres {
		err := s.tx.QueryRowxContext(ctx, s.tx.Rebind(query+` RETURNING id`), todo.Title, todo.Complete).Scan(&todo.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create todo: %w", err)
		}
		return todo, nil
	}

	result, err := s.tx.ExecContext(ctx, s.tx.Rebind(query), todo.Title, todo.Complete)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	todo.ID = id

	return todo, nil
}

// FindByID retrieves a todo by ID. It returns ErrNotFound when no row matches.
func (s *sqlSession) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	todo := &models.Todo{}
	err := s.tx.GetContext(ctx, todo, s.tx.Rebind(`SELECT id, title, complete FROM todos WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// Update persists the completion flag of an existing todo.
func (s *sqlSession) Update(ctx context.Context, todo *models.Todo) error {
	_, err := s.tx.ExecContext(ctx, s.tx.Rebind(`UPDATE todos SET complete = ? WHERE id = ?`), todo.Complete, todo.ID)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// Delete removes a todo permanently.
func (s *sqlSession) Delete(ctx context.Context, todo *models.Todo) error {
	result, err := s.tx.ExecContext(ctx, s.tx.Rebind(`DELETE FROM todos WHERE id = ?`), todo.ID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, todo.ID)
	}

	return nil
}
