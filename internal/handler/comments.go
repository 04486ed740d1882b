package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/httputil"
	"github.com/UkralStul/comment-engagement-service/internal/service"
)

type createCommentBody struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

// ListComments - GET /posts/{id}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	forest, err := h.svc.ListComments(r.Context(), chi.URLParam(r, "id"), httputil.UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"comments": forest})
}

// CreateComment - POST /posts/{id}/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var body createCommentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		h.handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	node, err := h.svc.CreateComment(r.Context(), service.CreateCommentRequest{
		PostID:   chi.URLParam(r, "id"),
		AuthorID: httputil.UserID(r.Context()),
		Content:  body.Content,
		ParentID: body.ParentID,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{"comment": node})
}

// DeleteComment - DELETE /comments/{id}
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.DeleteComment(r.Context(), chi.URLParam(r, "id"), httputil.UserID(r.Context())); err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, struct{}{})
}

// ToggleCommentLike - POST /comments/{id}/like
func (h *Handler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.ToggleCommentLike(r.Context(), chi.URLParam(r, "id"), httputil.UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}
