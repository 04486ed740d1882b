// Package engagement переключает лайки постов и комментариев.
package engagement

import (
	"fmt"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/repository"
)

// Kind - тип сущности, которую лайкают.
type Kind int

const (
	KindPost Kind = iota
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindPost:
		return "post"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// relation связывает сущность одного типа с её множеством лайков.
// Счётчики меняют только функции repository.
type relation struct {
	has    func(doc *domain.Document, entityID, userID string) bool
	add    func(doc *domain.Document, entityID, userID string) (int, bool)
	remove func(doc *domain.Document, entityID, userID string) (int, bool)
}

var relations = map[Kind]relation{
	KindPost: {
		has: repository.HasPostLike,
		add: func(doc *domain.Document, id, userID string) (int, bool) {
			post := repository.FindPost(doc, id)
			if post == nil {
				return 0, false
			}
			return repository.AddPostLike(doc, post, userID), true
		},
		remove: func(doc *domain.Document, id, userID string) (int, bool) {
			post := repository.FindPost(doc, id)
			if post == nil {
				return 0, false
			}
			return repository.RemovePostLike(doc, post, userID), true
		},
	},
	KindComment: {
		has: repository.HasCommentLike,
		add: func(doc *domain.Document, id, userID string) (int, bool) {
			comment := repository.FindComment(doc, id)
			if comment == nil {
				return 0, false
			}
			return repository.AddCommentLike(doc, comment, userID), true
		},
		remove: func(doc *domain.Document, id, userID string) (int, bool) {
			comment := repository.FindComment(doc, id)
			if comment == nil {
				return 0, false
			}
			return repository.RemoveCommentLike(doc, comment, userID), true
		},
	},
}

// Toggle ставит лайк, если пары (entityID, userID) ещё нет, и снимает, если есть.
// Повторный вызов меняет состояние обратно, поэтому вызывающий должен
// опираться на возвращённое состояние, а не предполагать его.
func Toggle(doc *domain.Document, kind Kind, entityID, userID string) (domain.LikeState, error) {
	rel, ok := relations[kind]
	if !ok {
		return domain.LikeState{}, fmt.Errorf("unknown like target %s", kind)
	}

	if rel.has(doc, entityID, userID) {
		count, found := rel.remove(doc, entityID, userID)
		if !found {
			return domain.LikeState{}, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, entityID)
		}
		return domain.LikeState{IsLiked: false, LikesCount: count}, nil
	}

	count, found := rel.add(doc, entityID, userID)
	if !found {
		return domain.LikeState{}, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, entityID)
	}
	return domain.LikeState{IsLiked: true, LikesCount: count}, nil
}
