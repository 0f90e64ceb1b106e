package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaughan-dsouza/yatube/internal/middleware"
	"github.com/vaughan-dsouza/yatube/internal/utils"
)

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{Logger: h.opts.InfoLog, NoColor: true}))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Session(h.opts.SessionSecret, h.Store.Users))

	r.NotFound(h.notFound)
	r.Get("/healthz", h.Health)

	// Public
	r.Get("/", h.Posts.Index)
	r.Get("/group/{slug}/", h.Posts.GroupPosts)
	r.Get("/profile/{username}/", h.Posts.Profile)
	r.Get("/posts/{id}/", h.Posts.Detail)

	r.Get("/signup/", h.Auth.SignupForm)
	r.Post("/signup/", h.Auth.Signup)
	r.Get("/login/", h.Auth.LoginForm)
	r.Post("/login/", h.Auth.Login)
	r.Post("/logout/", h.Auth.Logout)

	// Signed-in users only
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin)

		r.Get("/create/", h.Posts.CreateForm)
		r.Post("/create/", h.Posts.CreateSubmit)
		r.Get("/posts/{id}/edit/", h.Posts.EditForm)
		r.Post("/posts/{id}/edit/", h.Posts.EditSubmit)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		utils.JSONError(w, http.StatusServiceUnavailable, "database unavailable: "+err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"db_ok": true, "time": time.Now()})
}
