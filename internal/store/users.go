package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/yatube/internal/models"
)

type UserRepo struct {
	q sqlx.ExtContext
}

const userColumns = `id, username, password_hash, created_at`

func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	u := models.User{
		Username:  username,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	err := sqlx.GetContext(ctx, r.q, &u.ID, r.q.Rebind(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`), u.Username, u.Password, u.CreatedAt)
	if isUniqueViolation(err) {
		return models.User{}, fmt.Errorf("store: user %q: %w", username, ErrConflict)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: create user: %w", err)
	}

	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(`SELECT `+userColumns+` FROM users WHERE id=?`), id)
	if err != nil {
		return models.User{}, fmt.Errorf("store: user %d: %w", id, notFound(err))
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(`SELECT `+userColumns+` FROM users WHERE username=?`), username)
	if err != nil {
		return models.User{}, fmt.Errorf("store: user %q: %w", username, notFound(err))
	}
	return u, nil
}

// Delete removes the user and, through the foreign key, all of their posts.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM users WHERE username=?`), username)
	if err != nil {
		return fmt.Errorf("store: delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: user %q: %w", username, ErrNotFound)
	}
	return nil
}
