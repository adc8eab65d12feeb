// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/debook/engagement/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// ErrAlreadyExists is returned when an insert is rejected by a uniqueness constraint.
var ErrAlreadyExists = fmt.Errorf("already exists")

// Storage provides methods for interacting with database.
type Storage interface {
	CreatePost(ctx context.Context, p *CreatePostParams) error
	GetPost(ctx context.Context, id string) (*entities.Post, error)

	CreateLike(ctx context.Context, l *CreateLikeParams) error
	CountLikes(ctx context.Context, postID string) (uint32, error)

	CreateComment(ctx context.Context, c *CreateCommentParams) error
	CountComments(ctx context.Context, postID string) (uint32, error)

	CreateNotification(ctx context.Context, n *CreateNotificationParams) error
}

// CreatePostParams ...
type CreatePostParams struct {
	ID        string
	Content   string
	AuthorID  string
	CreatedAt time.Time
}

// CreateLikeParams ...
type CreateLikeParams struct {
	ID        string
	PostID    string
	UserID    string
	CreatedAt time.Time
}

// CreateCommentParams ...
type CreateCommentParams struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// CreateNotificationParams ...
type CreateNotificationParams struct {
	ID          string
	PostID      string
	UserID      string
	RecipientID string
	CreatedAt   time.Time
}
