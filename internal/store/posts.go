package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/yatube/internal/models"
)

type PostRepo struct {
	q sqlx.ExtContext
}

const postSelect = `
	SELECT p.id, p.text, p.pub_date,
	       u.id AS author_id, u.username AS author_username, u.created_at AS author_created_at,
	       g.id AS group_id, g.title AS group_title, g.slug AS group_slug, g.description AS group_description
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN post_groups g ON g.id = p.group_id
`

const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

type postRow struct {
	ID      int64     `db:"id"`
	Text    string    `db:"text"`
	PubDate time.Time `db:"pub_date"`

	AuthorID        int64     `db:"author_id"`
	AuthorUsername  string    `db:"author_username"`
	AuthorCreatedAt time.Time `db:"author_created_at"`

	GroupID          sql.NullInt64  `db:"group_id"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupDescription sql.NullString `db:"group_description"`
}

func (row postRow) post() models.Post {
	p := models.Post{
		ID:      row.ID,
		Text:    row.Text,
		PubDate: row.PubDate,
		Author: models.User{
			ID:        row.AuthorID,
			Username:  row.AuthorUsername,
			CreatedAt: row.AuthorCreatedAt,
		},
	}
	if row.GroupID.Valid {
		p.Group = &models.Group{
			ID:          row.GroupID.Int64,
			Title:       row.GroupTitle.String,
			Slug:        row.GroupSlug.String,
			Description: row.GroupDescription.String,
		}
	}
	return p
}

// Create inserts a post and returns its id. groupID may be nil.
func (r *PostRepo) Create(ctx context.Context, text string, pubDate time.Time, groupID *int64, authorID int64) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.q, &id, r.q.Rebind(`
		INSERT INTO posts (text, pub_date, group_id, author_id)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), text, pubDate, groupID, authorID)
	if err != nil {
		return 0, fmt.Errorf("store: create post: %w", err)
	}
	return id, nil
}

// Update changes text and group only; pub_date and author are never written.
func (r *PostRepo) Update(ctx context.Context, id int64, text string, groupID *int64) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE posts
		SET text=?, group_id=?
		WHERE id=?
	`), text, groupID, id)
	if err != nil {
		return fmt.Errorf("store: update post %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: post %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (models.Post, error) {
	var row postRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(postSelect+` WHERE p.id=?`), id)
	if err != nil {
		return models.Post{}, fmt.Errorf("store: post %d: %w", id, notFound(err))
	}
	return row.post(), nil
}

func (r *PostRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("store: count posts: %w", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches text case-insensitively, newest first. Wildcards in q are
// matched literally.
func (r *PostRepo) Search(ctx context.Context, q string) ([]models.Post, error) {
	return r.list(ctx, ` WHERE LOWER(p.text) LIKE LOWER(?) ESCAPE '\'`, "%"+likeEscaper.Replace(q)+"%")
}

func (r *PostRepo) list(ctx context.Context, where string, args ...any) ([]models.Post, error) {
	var rows []postRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(postSelect+where+postOrder), args...)
	if err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.post())
	}
	return posts, nil
}
