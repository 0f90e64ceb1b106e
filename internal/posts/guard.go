package posts

import "github.com/vaughan-dsouza/yatube/internal/models"

// CanCreate reports whether user may publish a post. Any signed-in user may.
func CanCreate(user *models.User) bool {
	return user != nil
}

// CanEdit reports whether user is the author of post.
func CanEdit(user *models.User, post models.Post) bool {
	return user != nil && user.ID == post.Author.ID
}
