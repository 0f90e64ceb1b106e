package posts

import (
	"context"
	"errors"
	"time"

	"github.com/vaughan-dsouza/yatube/internal/models"
	"github.com/vaughan-dsouza/yatube/internal/store"
)

// ErrForbidden is returned when the caller may not write the post.
var ErrForbidden = errors.New("posts: not allowed")

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(s *store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// CreatePost validates form and stores a new post by author.
func (s *Service) CreatePost(ctx context.Context, author *models.User, form PostForm) (models.Post, error) {
	if !CanCreate(author) {
		return models.Post{}, ErrForbidden
	}

	var post models.Post
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		cf, err := form.clean(ctx, tx)
		if err != nil {
			return err
		}

		pubDate := s.now().UTC().Truncate(time.Microsecond)
		id, err := tx.Posts.Create(ctx, cf.text, pubDate, cf.groupID, author.ID)
		if err != nil {
			return err
		}

		post, err = tx.Posts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return models.Post{}, err
	}

	return post, nil
}

// EditPost replaces text and group of an existing post. Only the author may
// edit; anyone else gets ErrForbidden and the post is left untouched.
func (s *Service) EditPost(ctx context.Context, caller *models.User, postID int64, form PostForm) (models.Post, error) {
	var post models.Post
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		existing, err := tx.Posts.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if !CanEdit(caller, existing) {
			return ErrForbidden
		}

		cf, err := form.clean(ctx, tx)
		if err != nil {
			return err
		}

		if err := tx.Posts.Update(ctx, postID, cf.text, cf.groupID); err != nil {
			return err
		}

		post, err = tx.Posts.GetByID(ctx, postID)
		return err
	})
	if err != nil {
		return models.Post{}, err
	}

	return post, nil
}

// Groups lists the choices offered by the post form.
func (s *Service) Groups(ctx context.Context) ([]models.Group, error) {
	return s.store.Groups.List(ctx)
}
