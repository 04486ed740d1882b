// Package thread строит деревья обсуждений из плоских записей с parentId
// и удаляет поддеревья ответов.
package thread

import (
	"sort"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/repository"
)

// BuildForest строит упорядоченный лес комментариев поста.
//
// Комментарии сортируются по CreatedAt (при равенстве - по порядку вставки),
// ответ подвешивается к родителю, комментарий без родителя становится корнем.
// Комментарий, чей parentId не находится среди комментариев того же поста,
// в лес не попадает вместе со своими ответами. Сложность O(n).
func BuildForest(doc *domain.Document, postID, viewerID string) []*domain.CommentNode {
	comments := repository.CommentsForPost(doc, postID)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	authors := repository.AuthorIndex(doc)
	liked := repository.LikedComments(doc, viewerID)

	nodes := make(map[string]*domain.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = newNode(c, authors, liked)
	}

	roots := make([]*domain.CommentNode, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			// Сирота: родителя нет в этом посте.
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}
	return roots
}

// NewNode строит одиночный узел без ответов, например для ответа на создание.
func NewNode(doc *domain.Document, c *domain.Comment, viewerID string) *domain.CommentNode {
	author := domain.AuthorSnapshot{ID: c.AuthorID}
	if u := repository.FindUser(doc, c.AuthorID); u != nil {
		author = repository.Snapshot(u)
	}
	return &domain.CommentNode{
		Comment: *c,
		Author:  author,
		IsLiked: viewerID != "" && repository.HasCommentLike(doc, c.ID, viewerID),
		Replies: []*domain.CommentNode{},
	}
}

func newNode(c *domain.Comment, authors map[string]domain.AuthorSnapshot, liked map[string]struct{}) *domain.CommentNode {
	author, ok := authors[c.AuthorID]
	if !ok {
		author = domain.AuthorSnapshot{ID: c.AuthorID}
	}
	_, isLiked := liked[c.ID]
	return &domain.CommentNode{
		Comment: *c,
		Author:  author,
		IsLiked: isLiked,
		Replies: []*domain.CommentNode{},
	}
}

// Count возвращает число узлов леса вместе со всеми вложенными ответами.
func Count(forest []*domain.CommentNode) int {
	total := 0
	stack := append([]*domain.CommentNode(nil), forest...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, n.Replies...)
	}
	return total
}
