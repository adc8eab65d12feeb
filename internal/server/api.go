package server

import (
	"time"

	"github.com/debook/engagement/internal/entities"
)

const (
	likeCreatedMessage  = "Like created successfully"
	alreadyLikedMessage = "Post already liked by this user"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// PostResponse ...
// swagger:model
type PostResponse struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	AuthorID      string    `json:"authorId"`
	LikesCount    uint32    `json:"likesCount"`
	CommentsCount uint32    `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LikeResponse ...
// swagger:model
type LikeResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AlreadyLiked bool   `json:"alreadyLiked"`
}

func toPostResponse(v *entities.PostView) PostResponse {
	return PostResponse{
		ID:            v.ID,
		Content:       v.Content,
		AuthorID:      v.AuthorID,
		LikesCount:    v.LikesCount,
		CommentsCount: v.CommentsCount,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func newLikeResponse(alreadyLiked bool) LikeResponse {
	message := likeCreatedMessage
	if alreadyLiked {
		message = alreadyLikedMessage
	}

	return LikeResponse{
		Success:      true,
		Message:      message,
		AlreadyLiked: alreadyLiked,
	}
}
