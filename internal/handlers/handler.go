package handlers

import (
	"io"
	"log"
	"time"

	"github.com/vaughan-dsouza/yatube/internal/posts"
	"github.com/vaughan-dsouza/yatube/internal/store"
)

type Options struct {
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	InfoLog  *log.Logger
	ErrorLog *log.Logger
}

type Handler struct {
	Store *store.Store
	Auth  *AuthHandler
	Posts *PostHandler

	opts Options
	*renderer
}

func NewHandler(s *store.Store, opts Options) (*Handler, error) {
	if opts.InfoLog == nil {
		opts.InfoLog = log.New(io.Discard, "", 0)
	}
	if opts.ErrorLog == nil {
		opts.ErrorLog = log.New(io.Discard, "", 0)
	}

	rd, err := newRenderer(opts.ErrorLog)
	if err != nil {
		return nil, err
	}

	return &Handler{
		Store:    s,
		Auth:     NewAuthHandler(s, rd, opts),
		Posts:    NewPostHandler(posts.NewService(s), s, rd),
		opts:     opts,
		renderer: rd,
	}, nil
}
