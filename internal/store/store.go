package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Store groups the repositories. Queries are written with '?' placeholders
// and rebound for the connection's driver.
type Store struct {
	db *sqlx.DB

	Users  *UserRepo
	Groups *GroupRepo
	Posts  *PostRepo
}

func New(db *sqlx.DB) *Store {
	s := bind(db)
	s.db = db
	return s
}

func bind(q sqlx.ExtContext) *Store {
	return &Store{
		Users:  &UserRepo{q: q},
		Groups: &GroupRepo{q: q},
		Posts:  &PostRepo{q: q},
	}
}

// WithTx runs fn against a Store bound to a single transaction. The
// transaction commits only if fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return errors.New("store: nested transactions are not supported")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
