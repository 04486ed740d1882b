package repository

import (
	"time"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
)

// FindUser возвращает пользователя или nil.
func FindUser(doc *domain.Document, id string) *domain.User {
	for _, u := range doc.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UpsertUser добавляет профиль или обновляет существующий по ID.
func UpsertUser(doc *domain.Document, user domain.User) *domain.User {
	if existing := FindUser(doc, user.ID); existing != nil {
		existing.Username = user.Username
		existing.DisplayName = user.DisplayName
		existing.AvatarURL = user.AvatarURL
		return existing
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	u := user
	doc.Users = append(doc.Users, &u)
	return &u
}

// AuthorIndex строит id -> снимок автора за один проход по пользователям.
func AuthorIndex(doc *domain.Document) map[string]domain.AuthorSnapshot {
	index := make(map[string]domain.AuthorSnapshot, len(doc.Users))
	for _, u := range doc.Users {
		index[u.ID] = Snapshot(u)
	}
	return index
}

// Snapshot копирует публичные поля профиля.
func Snapshot(u *domain.User) domain.AuthorSnapshot {
	return domain.AuthorSnapshot{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
