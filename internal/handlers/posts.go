package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vaughan-dsouza/yatube/internal/middleware"
	"github.com/vaughan-dsouza/yatube/internal/models"
	"github.com/vaughan-dsouza/yatube/internal/paginator"
	"github.com/vaughan-dsouza/yatube/internal/posts"
	"github.com/vaughan-dsouza/yatube/internal/store"
	"github.com/vaughan-dsouza/yatube/internal/utils"
)

type PostHandler struct {
	svc   *posts.Service
	store *store.Store
	*renderer
}

func NewPostHandler(svc *posts.Service, s *store.Store, rd *renderer) *PostHandler {
	return &PostHandler{svc: svc, store: s, renderer: rd}
}

// ---------------------- FEEDS ----------------------

func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.feed(w, r, store.AllPosts(), "index.page.html")
}

func (h *PostHandler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	h.feed(w, r, store.GroupFeed(chi.URLParam(r, "slug")), "group_list.page.html")
}

func (h *PostHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.feed(w, r, store.AuthorFeed(chi.URLParam(r, "username")), "profile.page.html")
}

func (h *PostHandler) feed(w http.ResponseWriter, r *http.Request, f store.Feed, page string) {
	res, err := h.store.Feed(r.Context(), f)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.render(w, r, http.StatusOK, page, &HTMLData{
		Page:   paginator.Paginate(res.Posts, r.URL.Query().Get("page")),
		Group:  res.Group,
		Author: res.Author,
	})
}

// ---------------------- DETAIL ----------------------

func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, "post_detail.page.html", &HTMLData{
		Post:    &post,
		CanEdit: posts.CanEdit(middleware.CurrentUser(r), post),
	})
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, posts.PostForm{}, nil, false)
}

func (h *PostHandler) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.clientError(w, http.StatusBadRequest)
		return
	}

	user := middleware.CurrentUser(r)
	form := posts.FormFromValues(r.PostForm)

	_, err := h.svc.CreatePost(r.Context(), user, form)

	var verr *posts.ValidationError
	switch {
	case errors.As(err, &verr):
		h.renderForm(w, r, form, verr, false)
	case errors.Is(err, posts.ErrForbidden):
		http.Redirect(w, r, utils.LoginURL(r.URL.RequestURI()), http.StatusFound)
	case err != nil:
		h.serverError(w, err)
	default:
		http.Redirect(w, r, "/profile/"+url.PathEscape(user.Username)+"/", http.StatusFound)
	}
}

// ---------------------- EDIT ----------------------

func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	if !posts.CanEdit(middleware.CurrentUser(r), post) {
		http.Redirect(w, r, detailURL(post.ID), http.StatusFound)
		return
	}

	h.renderForm(w, r, posts.FormFromPost(post), nil, true)
}

func (h *PostHandler) EditSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.clientError(w, http.StatusBadRequest)
		return
	}

	form := posts.FormFromValues(r.PostForm)
	_, err = h.svc.EditPost(r.Context(), middleware.CurrentUser(r), id, form)

	var verr *posts.ValidationError
	switch {
	case errors.As(err, &verr):
		h.renderForm(w, r, form, verr, true)
	case errors.Is(err, posts.ErrForbidden):
		http.Redirect(w, r, detailURL(id), http.StatusFound)
	case errors.Is(err, store.ErrNotFound):
		h.notFound(w, r)
	case err != nil:
		h.serverError(w, err)
	default:
		http.Redirect(w, r, detailURL(id), http.StatusFound)
	}
}

// ---------------------- HELPERS ----------------------

func (h *PostHandler) loadPost(w http.ResponseWriter, r *http.Request) (models.Post, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return models.Post{}, false
	}

	post, err := h.store.Posts.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return models.Post{}, false
	}
	if err != nil {
		h.serverError(w, err)
		return models.Post{}, false
	}

	return post, true
}

func (h *PostHandler) renderForm(w http.ResponseWriter, r *http.Request, form posts.PostForm, verr *posts.ValidationError, isEdit bool) {
	groups, err := h.svc.Groups(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	data := &HTMLData{
		Form:   form,
		Groups: groups,
		IsEdit: isEdit,
	}
	if verr != nil {
		data.FormErrors = verr.Fields
	}

	h.render(w, r, http.StatusOK, "create_post.page.html", data)
}

func detailURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}
