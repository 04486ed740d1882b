package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
)

// Guard - единственная точка сериализации доступа к документу.
// Update выполняет load -> fn -> save как одну критическую секцию,
// поэтому два изменения никогда не перекрываются и обновления не теряются.
// View читает под разделяемой блокировкой и ничего не сохраняет.
type Guard struct {
	mu     sync.RWMutex
	store  DocumentStore
	logger *slog.Logger
}

// NewGuard оборачивает хранилище.
func NewGuard(store DocumentStore, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{store: store, logger: logger}
}

// View загружает документ и передаёт его fn. Изменения fn не сохраняются.
func (g *Guard) View(ctx context.Context, fn func(doc *domain.Document) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Error("document load failed", "error", err)
		return fmt.Errorf("%w: load: %v", domain.ErrPersistence, err)
	}
	return fn(doc)
}

// Update загружает документ, применяет fn и сохраняет результат.
// Если fn вернула ошибку, ничего не сохраняется. Если не удалось сохранить,
// возвращается ошибка, даже когда изменение в памяти прошло успешно.
func (g *Guard) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Error("document load failed", "error", err)
		return fmt.Errorf("%w: load: %v", domain.ErrPersistence, err)
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := g.store.Save(ctx, doc); err != nil {
		g.logger.Error("document save failed", "error", err)
		return fmt.Errorf("%w: save: %v", domain.ErrPersistence, err)
	}
	return nil
}
