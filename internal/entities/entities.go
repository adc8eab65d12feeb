// Package entities contains main entities of service.
package entities

import (
	"time"
)

// Post ...
type Post struct {
	ID        string
	Content   string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostView is a post composed with its derived counters.
// Counters are computed from likes and comments rows at read time, never stored.
type PostView struct {
	Post
	LikesCount    uint32
	CommentsCount uint32
}

// Like ...
type Like struct {
	ID        string
	PostID    string
	UserID    string
	CreatedAt time.Time
}

// Comment ...
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// Notification is a stored record of a like notification.
type Notification struct {
	ID          string
	PostID      string
	UserID      string
	RecipientID string
	CreatedAt   time.Time
}
