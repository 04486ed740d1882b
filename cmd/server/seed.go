package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/service"
)

// fillWithMockData заполняет пустое хранилище данными для ручной проверки.
func fillWithMockData(ctx context.Context, svc *service.Service) error {
	empty, err := svc.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		slog.Info("store is not empty, skipping mock data")
		return nil
	}

	users := []domain.User{
		{ID: "user-1", Username: "alice", DisplayName: "Alice"},
		{ID: "user-2", Username: "bob", DisplayName: "Bob"},
		{ID: "user-3", Username: "carol", DisplayName: "Carol"},
	}
	for _, u := range users {
		if err := svc.UpsertUser(ctx, u); err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.ID, err)
		}
	}

	// 1. Пост от первого пользователя.
	post, err := svc.CreatePost(ctx, "user-1", "Test post about threaded comments in Go.")
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	// 2. Корневой комментарий.
	c1, err := svc.CreateComment(ctx, service.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: "user-2",
		Content:  "Great post! Very informative.",
	})
	if err != nil {
		return fmt.Errorf("failed to create comment 1: %w", err)
	}

	// 3. Ответ на него и ответ на ответ.
	c2, err := svc.CreateComment(ctx, service.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: "user-1",
		Content:  "Thanks! Glad you liked it.",
		ParentID: &c1.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create nested comment: %w", err)
	}
	if _, err := svc.CreateComment(ctx, service.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: "user-3",
		Content:  "How does it behave with deep nesting?",
		ParentID: &c2.ID,
	}); err != nil {
		return fmt.Errorf("failed to create nested comment: %w", err)
	}

	// 4. Лайки.
	if _, err := svc.TogglePostLike(ctx, post.ID, "user-2"); err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	if _, err := svc.ToggleCommentLike(ctx, c1.ID, "user-1"); err != nil {
		return fmt.Errorf("failed to like comment: %w", err)
	}

	slog.Info("mock data filled", "post_id", post.ID)
	return nil
}
