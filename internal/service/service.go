package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/events"
	"github.com/UkralStul/comment-engagement-service/internal/storage"
)

// Publisher получает события о комментариях после успешного сохранения.
type Publisher interface {
	Publish(e events.Event)
}

// Service - сценарии над документом. Каждый изменяющий сценарий - это одна
// критическая секция Guard.Update: загрузка, изменение снимка, сохранение.
// Успех возвращается только после подтверждённого сохранения.
type Service struct {
	guard     *storage.Guard
	publisher Publisher
	logger    *slog.Logger
}

// New создает сервис. publisher может быть nil.
func New(guard *storage.Guard, publisher Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{guard: guard, publisher: publisher, logger: logger}
}

func (s *Service) publish(e events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

// validateID отсекает только пустые id. Формат id не фиксирован: документ
// общий с другими сервисами, несуществующий id даст ErrNotFound при поиске.
func validateID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id is required", domain.ErrValidation, kind)
	}
	return nil
}

func requireUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrUnauthorized)
	}
	return nil
}
