package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/debook/engagement/internal/storage"
)

// userIDHeader carries the caller identity. It is a trust boundary: the value
// is taken verbatim, nothing here authenticates it.
const userIDHeader = "x-user-id"

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id} Posts GetPost
	//
	// Get post with live likes and comments counters.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Post
	//     schema:
	//       "$ref": "#/definitions/PostResponse"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id := chi.URLParam(r, "id")

	post, err := s.s.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalError(w, fmt.Sprintf("failed to get post: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, toPostResponse(post))
}

func (s server) createLike(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{id}/like Likes CreateLike
	//
	// Register that the caller likes the post. Idempotent: repeating the request
	// reports alreadyLiked instead of failing.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// - name: x-user-id
	//   description: caller identity
	//   in: header
	//   required: true
	//   type: string
	// responses:
	//   '201':
	//     description: Like registered
	//     schema:
	//       "$ref": "#/definitions/LikeResponse"
	//   '401':
	//     description: missing caller identity
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "x-user-id header is required")
		return
	}

	alreadyLiked, err := s.s.CreateLike(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalError(w, fmt.Sprintf("failed to create like: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusCreated, newLikeResponse(alreadyLiked))
}
