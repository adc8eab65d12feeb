// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/debook/engagement/internal/entities"
	"github.com/debook/engagement/internal/events"
	"github.com/debook/engagement/internal/service"
	"github.com/debook/engagement/internal/storage"
)

type srv struct {
	s storage.Storage
	p service.Publisher
}

func (s srv) GetPost(ctx context.Context, id string) (*entities.PostView, error) {
	post, err := s.s.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	// The counts are independent read-only queries, run them concurrently.
	var likes, comments uint32

	gr, ctx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		var err error
		if likes, err = s.s.CountLikes(ctx, id); err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}
		return nil
	})
	gr.Go(func() error {
		var err error
		if comments, err = s.s.CountComments(ctx, id); err != nil {
			return fmt.Errorf("failed to count comments: %w", err)
		}
		return nil
	})

	if err := gr.Wait(); err != nil {
		return nil, err
	}

	return &entities.PostView{
		Post:          *post,
		LikesCount:    likes,
		CommentsCount: comments,
	}, nil
}

func (s srv) CreateLike(ctx context.Context, postID, userID string) (bool, error) {
	post, err := s.s.GetPost(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("failed to get post: %w", err)
	}

	// No existence pre-check for the like itself: concurrent duplicates are
	// expected to race here and the uniqueness constraint decides the winner.
	err = s.s.CreateLike(ctx, &storage.CreateLikeParams{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})

	if errors.Is(err, storage.ErrAlreadyExists) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}

	// Published only after the row is durable. Fire-and-forget: consumers can
	// not affect the returned result.
	s.p.Publish(events.LikeCreated, events.LikeCreatedEvent{
		PostID:       postID,
		UserID:       userID,
		PostAuthorID: post.AuthorID,
	})

	return false, nil
}

func (s srv) CreatePost(ctx context.Context, content, authorID string) (*entities.Post, error) {
	p := storage.CreatePostParams{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}

	if err := s.s.CreatePost(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &entities.Post{
		ID:        p.ID,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.CreatedAt,
	}, nil
}

// New creates new instance of service.
func New(s storage.Storage, p service.Publisher) service.Service {
	return srv{
		s: s,
		p: p,
	}
}
