package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
)

// DocumentStore определяет контракт для хранилищ документа.
// Load читает всё состояние целиком, Save целиком его заменяет.
// Частичных чтений и записей нет, собственной блокировки тоже нет:
// сериализацию изменений обеспечивает Guard.
type DocumentStore interface {
	Load(ctx context.Context) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}

// Decode разбирает сохранённый JSON. Пустой ввод означает пустой документ.
func Decode(data []byte) (*domain.Document, error) {
	doc := domain.NewDocument()
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	Normalize(doc)
	return doc, nil
}

// Encode сериализует документ. Вывод детерминирован,
// поэтому Save(Load()) даёт побайтно то же состояние.
func Encode(doc *domain.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Normalize - единственный шаг миграции при загрузке: отсутствующие коллекции
// становятся пустыми, nil-записи выбрасываются, отрицательные счётчики обнуляются.
func Normalize(doc *domain.Document) {
	if doc.Users == nil {
		doc.Users = []*domain.User{}
	}
	if doc.Posts == nil {
		doc.Posts = []*domain.Post{}
	}
	if doc.Comments == nil {
		doc.Comments = []*domain.Comment{}
	}
	if doc.Likes == nil {
		doc.Likes = []*domain.Like{}
	}
	if doc.CommentLikes == nil {
		doc.CommentLikes = []*domain.CommentLike{}
	}

	doc.Users = compact(doc.Users)
	doc.Posts = compact(doc.Posts)
	doc.Comments = compact(doc.Comments)
	doc.Likes = compact(doc.Likes)
	doc.CommentLikes = compact(doc.CommentLikes)

	for _, p := range doc.Posts {
		if p.Status == "" {
			p.Status = domain.PostStatusPublished
		}
		p.CommentsCount = max(0, p.CommentsCount)
		p.LikesCount = max(0, p.LikesCount)
		p.ViewsCount = max(0, p.ViewsCount)
	}
	for _, c := range doc.Comments {
		c.LikesCount = max(0, c.LikesCount)
	}
}

func compact[T any](items []*T) []*T {
	out := items[:0]
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
