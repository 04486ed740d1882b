package repository

import (
	"time"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/google/uuid"
)

// FindComment возвращает комментарий или nil.
func FindComment(doc *domain.Document, id string) *domain.Comment {
	for _, c := range doc.Comments {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CommentsForPost возвращает комментарии поста в порядке вставки.
func CommentsForPost(doc *domain.Document, postID string) []*domain.Comment {
	var out []*domain.Comment
	for _, c := range doc.Comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out
}

// InsertComment добавляет комментарий к посту и увеличивает post.CommentsCount.
// Проверку поста и родителя делает вызывающий.
func InsertComment(doc *domain.Document, post *domain.Post, authorID, content string, parentID *string) *domain.Comment {
	comment := &domain.Comment{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		AuthorID:  authorID,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}
	doc.Comments = append(doc.Comments, comment)
	adjust(&post.CommentsCount, 1)
	return comment
}

// RemoveComments удаляет комментарии поста с указанными ID одной мутацией,
// вместе с их лайками, и уменьшает post.CommentsCount на число удалённых
// (не ниже нуля). Возвращает число удалённых комментариев.
func RemoveComments(doc *domain.Document, postID string, ids map[string]struct{}) int {
	if len(ids) == 0 {
		return 0
	}

	kept := doc.Comments[:0]
	removed := 0
	for _, c := range doc.Comments {
		if _, ok := ids[c.ID]; ok && c.PostID == postID {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	clear(doc.Comments[len(kept):])
	doc.Comments = kept

	likes := doc.CommentLikes[:0]
	for _, l := range doc.CommentLikes {
		if _, ok := ids[l.CommentID]; ok {
			continue
		}
		likes = append(likes, l)
	}
	clear(doc.CommentLikes[len(likes):])
	doc.CommentLikes = likes

	if post := FindPost(doc, postID); post != nil {
		adjust(&post.CommentsCount, -removed)
	}
	return removed
}
