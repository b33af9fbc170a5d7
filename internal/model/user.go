// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// PasswordHash carries the bcrypt hash of the user's password. The `json:"-"`
// tag excludes it from every JSON encoding, so no API response can leak it —
// listings, creation responses and login responses all serialize this struct.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserWithBlogs is the enriched user listing: the user plus a projection of
// the blogs they own. Blogs is always non-nil so it encodes as [] rather
// than null.
type UserWithBlogs struct {
	User
	Blogs []BlogRef `json:"blogs"`
}

// BlogRef is the minimal blog projection embedded in user listings.
type BlogRef struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// UserRef is the minimal owner projection embedded in blog listings.
// It never includes the password hash or timestamps.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}
