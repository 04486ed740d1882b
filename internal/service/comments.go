package service

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/UkralStul/comment-engagement-service/internal/config"
	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/engagement"
	"github.com/UkralStul/comment-engagement-service/internal/events"
	"github.com/UkralStul/comment-engagement-service/internal/repository"
	"github.com/UkralStul/comment-engagement-service/internal/thread"
)

// CreateCommentRequest - данные нового комментария или ответа.
type CreateCommentRequest struct {
	PostID   string
	AuthorID string
	Content  string
	ParentID *string
}

// validate проверяет запрос после TrimSpace. Длина Content считается в рунах
// (кодовых точках Unicode), а не в байтах и не в UTF-16 единицах: 1000 эмодзи
// проходят лимит MaxCommentLength.
func (r *CreateCommentRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PostID, validation.Required),
		validation.Field(&r.Content,
			validation.Required.Error("comment content cannot be empty"),
			validation.RuneLength(1, config.MaxCommentLength).Error("comment content is too long"),
		),
		validation.Field(&r.ParentID, validation.NilOrNotEmpty),
	)
}

// ListComments возвращает лес комментариев поста.
// viewerID может быть пустым - тогда isLiked везде false.
func (s *Service) ListComments(ctx context.Context, postID, viewerID string) ([]*domain.CommentNode, error) {
	if err := validateID("post", postID); err != nil {
		return nil, err
	}

	var forest []*domain.CommentNode
	err := s.guard.View(ctx, func(doc *domain.Document) error {
		if repository.FindPost(doc, postID) == nil {
			return fmt.Errorf("%w: post %s", domain.ErrNotFound, postID)
		}
		forest = thread.BuildForest(doc, postID, viewerID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return forest, nil
}

// CreateComment добавляет комментарий. Родитель, если указан, должен
// существовать и принадлежать тому же посту.
func (s *Service) CreateComment(ctx context.Context, req CreateCommentRequest) (*domain.CommentNode, error) {
	if err := requireUser(req.AuthorID); err != nil {
		return nil, err
	}
	req.PostID = strings.TrimSpace(req.PostID)
	req.Content = strings.TrimSpace(req.Content)
	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) == "" {
		req.ParentID = nil
	}
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var node *domain.CommentNode
	err := s.guard.Update(ctx, func(doc *domain.Document) error {
		post := repository.FindPost(doc, req.PostID)
		if post == nil {
			return fmt.Errorf("%w: post %s", domain.ErrNotFound, req.PostID)
		}
		if post.Status == domain.PostStatusHidden {
			return fmt.Errorf("%w: comments are disabled for post %s", domain.ErrForbidden, post.ID)
		}
		if req.ParentID != nil {
			parent := repository.FindComment(doc, *req.ParentID)
			if parent == nil || parent.PostID != post.ID {
				return fmt.Errorf("%w: parent comment %s", domain.ErrNotFound, *req.ParentID)
			}
		}

		comment := repository.InsertComment(doc, post, req.AuthorID, req.Content, req.ParentID)
		node = thread.NewNode(doc, comment, req.AuthorID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"comment_id", node.ID,
		"post_id", node.PostID,
		"parent_id", node.ParentID,
		"author_id", node.AuthorID,
	)
	s.publish(events.Event{Type: events.TypeCreated, PostID: node.PostID, Comment: node})
	return node, nil
}

// DeleteComment удаляет комментарий вместе со всеми ответами.
// Удалять может автор комментария или автор поста.
func (s *Service) DeleteComment(ctx context.Context, commentID, requesterID string) (thread.DeleteResult, error) {
	if err := requireUser(requesterID); err != nil {
		return thread.DeleteResult{}, err
	}
	if err := validateID("comment", commentID); err != nil {
		return thread.DeleteResult{}, err
	}

	var result thread.DeleteResult
	err := s.guard.Update(ctx, func(doc *domain.Document) error {
		comment := repository.FindComment(doc, commentID)
		if comment == nil {
			return fmt.Errorf("%w: comment %s", domain.ErrNotFound, commentID)
		}
		if !canDelete(doc, comment, requesterID) {
			return fmt.Errorf("%w: only the comment author or the post author can delete a comment", domain.ErrForbidden)
		}

		var err error
		result, err = thread.DeleteSubtree(doc, commentID)
		return err
	})
	if err != nil {
		return thread.DeleteResult{}, err
	}

	s.logger.Info("comment deleted",
		"comment_id", commentID,
		"post_id", result.PostID,
		"removed", result.Removed,
	)
	s.publish(events.Event{Type: events.TypeDeleted, PostID: result.PostID, RemovedIDs: result.RemovedIDs})
	return result, nil
}

func canDelete(doc *domain.Document, comment *domain.Comment, requesterID string) bool {
	if comment.AuthorID == requesterID {
		return true
	}
	post := repository.FindPost(doc, comment.PostID)
	return post != nil && post.AuthorID == requesterID
}

// ToggleCommentLike ставит или снимает лайк комментария.
func (s *Service) ToggleCommentLike(ctx context.Context, commentID, userID string) (domain.LikeState, error) {
	return s.toggle(ctx, engagement.KindComment, commentID, userID)
}

func (s *Service) toggle(ctx context.Context, kind engagement.Kind, entityID, userID string) (domain.LikeState, error) {
	if err := requireUser(userID); err != nil {
		return domain.LikeState{}, err
	}
	if err := validateID(kind.String(), entityID); err != nil {
		return domain.LikeState{}, err
	}

	var state domain.LikeState
	err := s.guard.Update(ctx, func(doc *domain.Document) error {
		var err error
		state, err = engagement.Toggle(doc, kind, entityID, userID)
		return err
	})
	if err != nil {
		return domain.LikeState{}, err
	}

	s.logger.Debug("like toggled",
		"kind", kind.String(),
		"entity_id", entityID,
		"user_id", userID,
		"is_liked", state.IsLiked,
		"likes_count", state.LikesCount,
	)
	return state, nil
}
