package inmemory

import (
	"context"
	"sync"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/storage"
)

// Store реализует DocumentStore в памяти.
// Документ хранится в сериализованном виде: каждый Load отдаёт независимую копию,
// и изменения снимка не видны, пока их не сохранили.
type Store struct {
	mu   sync.RWMutex
	data []byte
}

// New создает новый экземпляр in-memory хранилища.
func New() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Decode(s.data)
}

func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Bytes возвращает копию последнего сохранённого состояния.
func (s *Store) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}
