// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/debook/engagement/internal/entities"
	"github.com/debook/engagement/internal/storage"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type pg struct {
	ext sqlx.ExtContext
}

type postDTO struct {
	ID        string    `db:"id"`
	Content   string    `db:"content"`
	AuthorID  string    `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s pg) CreatePost(ctx context.Context, p *storage.CreatePostParams) error {
	post := postDTO{
		ID:        p.ID,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.CreatedAt.UTC(),
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO posts(id, content, author_id, created_at, updated_at)
			VALUES(:id, :content, :author_id, :created_at, :updated_at)
		`, post,
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == uniqueViolation {
			return storage.ErrAlreadyExists
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p, `
			SELECT id, content, author_id, created_at, updated_at
			FROM posts
			WHERE id = $1
		`,
		id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &entities.Post{
		ID:        p.ID,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

// CreateLike inserts a like row. The (post_id, user_id) uniqueness constraint is
// the single arbiter of duplicates: a violation is reported as ErrAlreadyExists.
func (s pg) CreateLike(ctx context.Context, l *storage.CreateLikeParams) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO likes(id, post_id, user_id, created_at)
			VALUES($1, $2, $3, $4)`,
		l.ID, l.PostID, l.UserID, l.CreatedAt.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok {
			switch err.Code {
			case uniqueViolation:
				return storage.ErrAlreadyExists
			case foreignKeyViolation:
				return storage.ErrNotFound
			}
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) CountLikes(ctx context.Context, postID string) (uint32, error) {
	var c uint32
	if err := sqlx.GetContext(ctx, s.ext, &c, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID); err != nil {
		return 0, fmt.Errorf("failed to query: %w", err)
	}

	return c, nil
}

func (s pg) CreateComment(ctx context.Context, c *storage.CreateCommentParams) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO comments(id, post_id, user_id, content, created_at)
			VALUES($1, $2, $3, $4, $5)`,
		c.ID, c.PostID, c.UserID, c.Content, c.CreatedAt.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) CountComments(ctx context.Context, postID string) (uint32, error) {
	var c uint32
	if err := sqlx.GetContext(ctx, s.ext, &c, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID); err != nil {
		return 0, fmt.Errorf("failed to query: %w", err)
	}

	return c, nil
}

func (s pg) CreateNotification(ctx context.Context, n *storage.CreateNotificationParams) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO notifications(id, post_id, user_id, recipient_id, created_at)
			VALUES($1, $2, $3, $4, $5)`,
		n.ID, n.PostID, n.UserID, n.RecipientID, n.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}
