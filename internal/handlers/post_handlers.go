// internal/handlers/post_handlers.go
package handlers

import (
	"net/http"

	"bayou-blog/internal/middleware"
)

type createPostRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

type updatePostRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
	Text  *string `json:"text" validate:"omitempty,min=1"`
}

// HandleCreatePost creates a post owned by the caller.
func (s *Server) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())

	var req createPostRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	post, err := s.Posts.Create(r.Context(), caller, req.Title, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// HandleListPosts returns one page of all posts in insertion order.
func (s *Server) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := parsePagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	posts, err := s.Posts.List(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (s *Server) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	post, err := s.Posts.Get(r.Context(), postID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// HandleUpdatePost applies a partial update to the caller's post.
func (s *Server) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	postID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req updatePostRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	post, err := s.Posts.Update(r.Context(), caller, postID, req.Title, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// HandleDeletePost removes the caller's post and its comments.
func (s *Server) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	postID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := s.Posts.Delete(r.Context(), caller, postID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
