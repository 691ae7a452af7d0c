// internal/handlers/comment_handlers.go
package handlers

import (
	"net/http"

	"bayou-blog/internal/middleware"
)

type createCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type updateCommentRequest struct {
	Text *string `json:"text" validate:"omitempty,min=1"`
}

// HandleCreateComment adds a comment under a post. Creation runs through the
// moderation gate and may schedule the owner's deferred auto-reply.
func (s *Server) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	postID, err := pathUUID(r, "post_id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createCommentRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	comment, err := s.Comments.Create(r.Context(), caller, postID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// HandleListComments returns one page of the post's comments in insertion
// order.
func (s *Server) HandleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "post_id")
	if err != nil {
		respondError(w, err)
		return
	}
	page, pageSize, err := parsePagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	comments, err := s.Comments.List(r.Context(), postID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// HandleUpdateComment applies new text to the caller's own comment.
func (s *Server) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	commentID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateCommentRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	comment, err := s.Comments.Update(r.Context(), caller, commentID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// HandleDeleteComment removes the caller's own comment.
func (s *Server) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	commentID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	deleted, err := s.Comments.Delete(r.Context(), caller, commentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
