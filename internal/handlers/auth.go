package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/vaughan-dsouza/yatube/internal/middleware"
	"github.com/vaughan-dsouza/yatube/internal/models"
	"github.com/vaughan-dsouza/yatube/internal/store"
	"github.com/vaughan-dsouza/yatube/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLen = 150
	minPasswordLen = 6
)

var usernameRx = regexp.MustCompile(`^[\w.@+-]+$`)

type AuthHandler struct {
	store *store.Store
	opts  Options
	*renderer
}

func NewAuthHandler(s *store.Store, rd *renderer, opts Options) *AuthHandler {
	return &AuthHandler{store: s, opts: opts, renderer: rd}
}

// ----------- Session cookie -------------

func (h *AuthHandler) startSession(w http.ResponseWriter, u models.User) error {
	token, exp, err := utils.GenerateToken(u.ID, u.Username, h.opts.SessionSecret, h.opts.SessionTTL)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// -------------- SIGN UP ----------------------

func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "signup.page.html", nil)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.clientError(w, http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	fail := func(msg string) {
		h.render(w, r, http.StatusOK, "signup.page.html", &HTMLData{
			FormError: msg,
			FormData:  map[string]string{"username": username},
		})
	}

	switch {
	case username == "" || password == "":
		fail("Username and password are required.")
		return
	case utf8.RuneCountInString(username) > maxUsernameLen || !usernameRx.MatchString(username):
		fail("Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters.")
		return
	case len(password) < minPasswordLen:
		fail("Password must be at least 6 characters.")
		return
	case password != r.PostForm.Get("password_confirm"):
		fail("The two password fields didn't match.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.serverError(w, err)
		return
	}

	u, err := h.store.Users.Create(r.Context(), username, string(hash))
	if errors.Is(err, store.ErrConflict) {
		fail("A user with that username already exists.")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	if err := h.startSession(w, u); err != nil {
		h.serverError(w, err)
		return
	}
	h.opts.InfoLog.Printf("user %q signed up", u.Username)

	http.Redirect(w, r, "/", http.StatusFound)
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := utils.SafeNext(r.URL.Query().Get("next"), "/")
	if middleware.CurrentUser(r) != nil {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "login.page.html", &HTMLData{Next: next})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.clientError(w, http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	next := utils.SafeNext(r.PostForm.Get("next"), "/")

	u, err := h.store.Users.GetByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, err)
		return
	}

	if err != nil || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(r.PostForm.Get("password"))) != nil {
		h.render(w, r, http.StatusOK, "login.page.html", &HTMLData{
			FormError: "Please enter a correct username and password.",
			FormData:  map[string]string{"username": username},
			Next:      next,
		})
		return
	}

	if err := h.startSession(w, u); err != nil {
		h.serverError(w, err)
		return
	}

	http.Redirect(w, r, next, http.StatusFound)
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
