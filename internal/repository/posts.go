// Package repository - операции над снимком документа в памяти.
// Пакет ничего не знает о хранилище: он получает изменяемый документ,
// меняет его и возвращает управление вызывающему, который сам решает, сохранять ли.
package repository

import (
	"time"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/google/uuid"
)

// FindPost возвращает пост или nil.
func FindPost(doc *domain.Document, id string) *domain.Post {
	for _, p := range doc.Posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// InsertPost добавляет пост с нулевыми счётчиками.
func InsertPost(doc *domain.Document, authorID, content string) *domain.Post {
	post := &domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		Status:    domain.PostStatusPublished,
		CreatedAt: time.Now().UTC(),
	}
	doc.Posts = append(doc.Posts, post)
	return post
}

// RecordView увеличивает счётчик просмотров. Дедупликации по пользователю нет.
func RecordView(post *domain.Post) int {
	return adjust(&post.ViewsCount, 1)
}
