package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/events"
	"github.com/UkralStul/comment-engagement-service/internal/httputil"
	"github.com/UkralStul/comment-engagement-service/internal/service"
)

// Handler - HTTP-слой поверх service.Service.
type Handler struct {
	svc    *service.Service
	hub    *events.Hub
	logger *slog.Logger
}

// New создает обработчики. hub может быть nil - тогда поток событий недоступен.
func New(svc *service.Service, hub *events.Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, hub: hub, logger: logger}
}

// Routes регистрирует маршруты на роутере.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Post("/posts", h.CreatePost)
	r.Get("/posts/{id}", h.GetPost)
	r.Post("/posts/{id}/like", h.TogglePostLike)
	r.Put("/posts/{id}/status", h.SetPostStatus)

	r.Get("/posts/{id}/comments", h.ListComments)
	r.Post("/posts/{id}/comments", h.CreateComment)
	r.Get("/posts/{id}/comments/ws", h.StreamComments)

	r.Delete("/comments/{id}", h.DeleteComment)
	r.Post("/comments/{id}/like", h.ToggleCommentLike)

	r.Put("/users/{id}", h.UpsertUser)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleError переводит ошибки предметной области в HTTP-коды.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
