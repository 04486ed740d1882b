package repository

import (
	"slices"
	"time"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/google/uuid"
)

// === Post likes ===

// HasPostLike сообщает, есть ли лайк пары (postID, userID).
func HasPostLike(doc *domain.Document, postID, userID string) bool {
	return slices.ContainsFunc(doc.Likes, func(l *domain.Like) bool {
		return l.PostID == postID && l.UserID == userID
	})
}

// AddPostLike добавляет лайк и увеличивает post.LikesCount.
// Если пара уже есть, ничего не меняет: отношение остаётся множеством.
func AddPostLike(doc *domain.Document, post *domain.Post, userID string) int {
	if HasPostLike(doc, post.ID, userID) {
		return post.LikesCount
	}
	doc.Likes = append(doc.Likes, &domain.Like{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	return adjust(&post.LikesCount, 1)
}

// RemovePostLike удаляет лайк пары и уменьшает post.LikesCount (не ниже нуля).
func RemovePostLike(doc *domain.Document, post *domain.Post, userID string) int {
	before := len(doc.Likes)
	doc.Likes = slices.DeleteFunc(doc.Likes, func(l *domain.Like) bool {
		return l.PostID == post.ID && l.UserID == userID
	})
	return adjust(&post.LikesCount, len(doc.Likes)-before)
}

// === Comment likes ===

// HasCommentLike сообщает, есть ли лайк пары (commentID, userID).
func HasCommentLike(doc *domain.Document, commentID, userID string) bool {
	return slices.ContainsFunc(doc.CommentLikes, func(l *domain.CommentLike) bool {
		return l.CommentID == commentID && l.UserID == userID
	})
}

// AddCommentLike добавляет лайк и увеличивает comment.LikesCount.
func AddCommentLike(doc *domain.Document, comment *domain.Comment, userID string) int {
	if HasCommentLike(doc, comment.ID, userID) {
		return comment.LikesCount
	}
	doc.CommentLikes = append(doc.CommentLikes, &domain.CommentLike{
		ID:        uuid.NewString(),
		CommentID: comment.ID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	return adjust(&comment.LikesCount, 1)
}

// RemoveCommentLike удаляет лайк пары и уменьшает comment.LikesCount (не ниже нуля).
func RemoveCommentLike(doc *domain.Document, comment *domain.Comment, userID string) int {
	before := len(doc.CommentLikes)
	doc.CommentLikes = slices.DeleteFunc(doc.CommentLikes, func(l *domain.CommentLike) bool {
		return l.CommentID == comment.ID && l.UserID == userID
	})
	return adjust(&comment.LikesCount, len(doc.CommentLikes)-before)
}

// LikedComments возвращает множество комментариев, которые лайкнул userID.
func LikedComments(doc *domain.Document, userID string) map[string]struct{} {
	liked := make(map[string]struct{})
	if userID == "" {
		return liked
	}
	for _, l := range doc.CommentLikes {
		if l.UserID == userID {
			liked[l.CommentID] = struct{}{}
		}
	}
	return liked
}
