package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/httputil"
)

type createPostBody struct {
	Content string `json:"content"`
}

type postStatusBody struct {
	Status string `json:"status"`
}

type upsertUserBody struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// CreatePost - POST /posts
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body createPostBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		h.handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	post, err := h.svc.CreatePost(r.Context(), httputil.UserID(r.Context()), body.Content)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{"post": post})
}

// GetPost - GET /posts/{id}. Каждое чтение засчитывается как просмотр.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"post": post})
}

// TogglePostLike - POST /posts/{id}/like
func (h *Handler) TogglePostLike(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.TogglePostLike(r.Context(), chi.URLParam(r, "id"), httputil.UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}

// SetPostStatus - PUT /posts/{id}/status. Скрытый пост не принимает новые комментарии.
func (h *Handler) SetPostStatus(w http.ResponseWriter, r *http.Request) {
	var body postStatusBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		h.handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	post, err := h.svc.SetPostStatus(r.Context(), chi.URLParam(r, "id"), httputil.UserID(r.Context()), body.Status)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"post": post})
}

// UpsertUser - PUT /users/{id}. Снимок профиля от сервиса профилей,
// нужен только для автора в дереве комментариев.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := httputil.UserID(r.Context())
	if caller == "" {
		h.handleError(w, r, fmt.Errorf("%w: user id is required", domain.ErrUnauthorized))
		return
	}
	if caller != id {
		h.handleError(w, r, fmt.Errorf("%w: profile belongs to another user", domain.ErrForbidden))
		return
	}

	var body upsertUserBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		h.handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	err := h.svc.UpsertUser(r.Context(), domain.User{
		ID:          id,
		Username:    body.Username,
		DisplayName: body.DisplayName,
		AvatarURL:   body.AvatarURL,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
