package model

import "time"

// Blog represents a saved blog entry.
//
// UserID references the owning user. It may be empty for records created
// before ownership was introduced; such blogs can be read but never deleted
// through the API. Ownership is fixed at creation — no update path changes it.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogWithOwner is the enriched blog listing: the blog plus the owner's
// public fields. Owner is nil for unowned records, which omits the field.
type BlogWithOwner struct {
	Blog
	Owner *UserRef `json:"user,omitempty"`
}
