package posts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/vaughan-dsouza/yatube/internal/models"
	"github.com/vaughan-dsouza/yatube/internal/store"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// PostForm is the submitted text and optional group id.
type PostForm struct {
	Text  string
	Group string
}

func FormFromValues(v url.Values) PostForm {
	return PostForm{
		Text:  v.Get("text"),
		Group: v.Get("group"),
	}
}

// FormFromPost prefills the edit form with the post's current values.
func FormFromPost(p models.Post) PostForm {
	f := PostForm{Text: p.Text}
	if p.Group != nil {
		f.Group = strconv.FormatInt(p.Group.ID, 10)
	}
	return f
}

// ValidationError maps form field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid post: " + strings.Join(parts, "; ")
}

// Field returns the message for name, or "".
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

type cleanedForm struct {
	text    string
	groupID *int64
}

func (f PostForm) clean(ctx context.Context, tx *store.Store) (cleanedForm, error) {
	var (
		out  cleanedForm
		errs = map[string]string{}
	)

	out.text = strings.TrimSpace(f.Text)
	if out.text == "" {
		errs["text"] = msgRequired
	}

	if raw := strings.TrimSpace(f.Group); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs["group"] = msgInvalidChoice
		} else if _, err := tx.Groups.GetByID(ctx, id); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return cleanedForm{}, err
			}
			errs["group"] = msgInvalidChoice
		} else {
			out.groupID = &id
		}
	}

	if len(errs) > 0 {
		return cleanedForm{}, &ValidationError{Fields: errs}
	}
	return out, nil
}
