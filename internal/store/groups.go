package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/yatube/internal/models"
)

type GroupRepo struct {
	q sqlx.ExtContext
}

const groupColumns = `id, title, slug, description`

func (r *GroupRepo) Create(ctx context.Context, g models.Group) (models.Group, error) {
	err := sqlx.GetContext(ctx, r.q, &g.ID, r.q.Rebind(`
		INSERT INTO post_groups (title, slug, description)
		VALUES (?, ?, ?)
		RETURNING id
	`), g.Title, g.Slug, g.Description)
	if isUniqueViolation(err) {
		return models.Group{}, fmt.Errorf("store: group %q: %w", g.Slug, ErrConflict)
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("store: create group: %w", err)
	}
	return g, nil
}

func (r *GroupRepo) GetByID(ctx context.Context, id int64) (models.Group, error) {
	var g models.Group
	err := sqlx.GetContext(ctx, r.q, &g, r.q.Rebind(`SELECT `+groupColumns+` FROM post_groups WHERE id=?`), id)
	if err != nil {
		return models.Group{}, fmt.Errorf("store: group %d: %w", id, notFound(err))
	}
	return g, nil
}

func (r *GroupRepo) GetBySlug(ctx context.Context, slug string) (models.Group, error) {
	var g models.Group
	err := sqlx.GetContext(ctx, r.q, &g, r.q.Rebind(`SELECT `+groupColumns+` FROM post_groups WHERE slug=?`), slug)
	if err != nil {
		return models.Group{}, fmt.Errorf("store: group %q: %w", slug, notFound(err))
	}
	return g, nil
}

// List returns all groups ordered by title.
func (r *GroupRepo) List(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	err := sqlx.SelectContext(ctx, r.q, &groups, `SELECT `+groupColumns+` FROM post_groups ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list groups: %w", err)
	}
	return groups, nil
}

// Delete removes the group. Its posts stay, with their group cleared.
func (r *GroupRepo) Delete(ctx context.Context, slug string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM post_groups WHERE slug=?`), slug)
	if err != nil {
		return fmt.Errorf("store: delete group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: group %q: %w", slug, ErrNotFound)
	}
	return nil
}
