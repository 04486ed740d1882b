package service

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/UkralStul/comment-engagement-service/internal/config"
	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/engagement"
	"github.com/UkralStul/comment-engagement-service/internal/repository"
)

// CreatePost создает пост от имени authorID.
func (s *Service) CreatePost(ctx context.Context, authorID, content string) (*domain.Post, error) {
	if err := requireUser(authorID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if err := validation.Validate(content,
		validation.Required.Error("post content cannot be empty"),
		validation.RuneLength(1, config.MaxPostLength).Error("post content is too long"),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var post domain.Post
	err := s.guard.Update(ctx, func(doc *domain.Document) error {
		post = *repository.InsertPost(doc, authorID, content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", authorID)
	return &post, nil
}

// GetPost читает пост и увеличивает его счётчик просмотров.
// Каждое чтение - это изменение, поэтому оно идёт через Update.
func (s *Service) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	if err := validateID("post", postID); err != nil {
		return nil, err
	}

	var post domain.Post
	err := s.guard.Update(ctx, func(doc *domain.Document) error {
		p := repository.FindPost(doc, postID)
		if p == nil {
			return fmt.Errorf("%w: post %s", domain.ErrNotFound, postID)
		}
		repository.RecordView(p)
		post = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// EnsurePost возвращает ErrNotFound, если поста нет. Счётчик просмотров не трогает.
func (s *Service) EnsurePost(ctx context.Context, postID string) error {
	if err := validateID("post", postID); err != nil {
		return err
	}
	return s.guard.View(ctx, func(doc *domain.Document) error {
		if repository.FindPost(doc, postID) == nil {
			return fmt.Errorf("%w: post %s", domain.ErrNotFound, postID)
		}
		return nil
	})
}

// TogglePostLike ставит или снимает лайк поста.
func (s *Service) TogglePostLike(ctx context.Context, postID, userID string) (domain.LikeState, error) {
	return s.toggle(ctx, engagement.KindPost, postID, userID)
}

// SetPostStatus переключает статус поста. Менять его может только автор поста.
func (s *Service) SetPostStatus(ctx context.Context, postID, userID, status string) (*domain.Post, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := validateID("post", postID); err != nil {
		return nil, err
	}
	if err := validation.Validate(status,
		validation.Required,
		validation.In(domain.PostStatusPublished, domain.PostStatusHidden),
	); err != nil {
		return nil, fmt.Errorf("%w: status: %v", domain.ErrValidation, err)
	}

	var post domain.Post
	err := s.guard.Update(ctx, func(doc *domain.Document) error {
		p := repository.FindPost(doc, postID)
		if p == nil {
			return fmt.Errorf("%w: post %s", domain.ErrNotFound, postID)
		}
		if p.AuthorID != userID {
			return fmt.Errorf("%w: only the post author can change its status", domain.ErrForbidden)
		}
		p.Status = status
		post = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post status changed", "post_id", postID, "status", status)
	return &post, nil
}

// UpsertUser сохраняет снимок профиля, который приходит от сервиса профилей.
func (s *Service) UpsertUser(ctx context.Context, user domain.User) error {
	if err := validation.ValidateStruct(&user,
		validation.Field(&user.ID, validation.Required),
		validation.Field(&user.Username, validation.Required, validation.Length(1, 64)),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.guard.Update(ctx, func(doc *domain.Document) error {
		repository.UpsertUser(doc, user)
		return nil
	})
}

// IsEmpty сообщает, что в документе ещё нет ни одного поста.
func (s *Service) IsEmpty(ctx context.Context) (bool, error) {
	var empty bool
	err := s.guard.View(ctx, func(doc *domain.Document) error {
		empty = len(doc.Posts) == 0
		return nil
	})
	return empty, err
}

// CheckCounters сверяет денормализованные счётчики с отношениями.
func (s *Service) CheckCounters(ctx context.Context) ([]repository.CounterDrift, error) {
	var drifts []repository.CounterDrift
	err := s.guard.View(ctx, func(doc *domain.Document) error {
		drifts = repository.CheckCounters(doc)
		return nil
	})
	return drifts, err
}
