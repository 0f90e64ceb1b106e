package models

import "time"

// number of runes shown by Post.String
const postPreviewLen = 15

type Group struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

func (g Group) String() string {
	return g.Title
}

// Post is always returned fully populated: Author is loaded, Group is nil
// when the post has no group.
type Post struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Group   *Group    `json:"group,omitempty"`
	Author  User      `json:"author"`
}

func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > postPreviewLen {
		r = r[:postPreviewLen]
	}
	return string(r)
}

// GroupID returns 0 for posts without a group.
func (p Post) GroupID() int64 {
	if p.Group == nil {
		return 0
	}
	return p.Group.ID
}
