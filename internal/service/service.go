// Package service contains interface for service business-logic.
package service

import (
	"context"

	"github.com/debook/engagement/internal/entities"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// Publisher publishes domain events without waiting for their consumers.
type Publisher interface {
	Publish(name string, payload interface{})
}

// Service ...
type Service interface {
	// GetPost returns a post composed with its live likes and comments counters.
	// Returns storage.ErrNotFound when the post does not exist.
	GetPost(ctx context.Context, id string) (*entities.PostView, error)

	// CreateLike registers that userID likes postID. The operation is idempotent:
	// a duplicate request reports alreadyLiked=true instead of failing. Returns
	// storage.ErrNotFound when the post does not exist.
	CreateLike(ctx context.Context, postID, userID string) (alreadyLiked bool, err error)

	// CreatePost persists a new post and returns it. Posts are created by seed
	// and test tooling only, there is no public endpoint.
	CreatePost(ctx context.Context, content, authorID string) (*entities.Post, error)
}
