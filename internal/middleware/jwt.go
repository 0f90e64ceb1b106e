package middleware

import (
	"context"
	"net/http"

	"github.com/vaughan-dsouza/yatube/internal/models"
	"github.com/vaughan-dsouza/yatube/internal/utils"
)

const SessionCookieName = "session"

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
}

// Session resolves the signed session cookie to a user and stores it in the
// request context. Requests without a valid session pass through anonymous.
func Session(secret string, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.VerifyToken(cookie.Value, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// the account may have been deleted since the cookie was issued
			user, err := users.GetByID(r.Context(), claims.SubjectInt())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), utils.CtxUserKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the signed-in user, or nil for anonymous requests.
func CurrentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(utils.CtxUserKey).(*models.User)
	return u
}

// RequireLogin redirects anonymous requests to the login page with the
// original path as the return target.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, utils.LoginURL(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
