package store

import (
	"context"

	"github.com/vaughan-dsouza/yatube/internal/models"
)

type FeedKind int

const (
	FeedAll FeedKind = iota
	FeedGroup
	FeedAuthor
)

// Feed selects which posts a listing shows.
type Feed struct {
	Kind     FeedKind
	Slug     string
	Username string
}

func AllPosts() Feed { return Feed{Kind: FeedAll} }

func GroupFeed(slug string) Feed { return Feed{Kind: FeedGroup, Slug: slug} }

func AuthorFeed(username string) Feed { return Feed{Kind: FeedAuthor, Username: username} }

// FeedResult holds the ordered posts and, for scoped feeds, the group or
// author they were filtered by.
type FeedResult struct {
	Group  *models.Group
	Author *models.User
	Posts  []models.Post
}

// Feed returns posts newest first, ties broken by id. An unknown slug or
// username yields ErrNotFound; a known one with no posts yields an empty list.
func (s *Store) Feed(ctx context.Context, f Feed) (FeedResult, error) {
	var (
		res   FeedResult
		where string
		args  []any
	)

	switch f.Kind {
	case FeedGroup:
		g, err := s.Groups.GetBySlug(ctx, f.Slug)
		if err != nil {
			return FeedResult{}, err
		}
		res.Group = &g
		where, args = ` WHERE p.group_id=?`, []any{g.ID}
	case FeedAuthor:
		u, err := s.Users.GetByUsername(ctx, f.Username)
		if err != nil {
			return FeedResult{}, err
		}
		u.Password = ""
		res.Author = &u
		where, args = ` WHERE p.author_id=?`, []any{u.ID}
	}

	posts, err := s.Posts.list(ctx, where, args...)
	if err != nil {
		return FeedResult{}, err
	}
	res.Posts = posts

	return res, nil
}
