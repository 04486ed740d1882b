package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// documentKey - ключ единственной строки с документом.
const documentKey = "main"

// documentRow - весь документ в одной строке таблицы documents.
type documentRow struct {
	Key       string    `gorm:"type:varchar(64);primary_key"`
	Body      []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (documentRow) TableName() string { return "documents" }

// Store реализует DocumentStore с использованием PostgreSQL.
type Store struct {
	db *gorm.DB
}

// New создает новый экземпляр хранилища PostgreSQL.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).First(&row, "key = ?", documentKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, err
	}
	return storage.Decode(row.Body)
}

// Save заменяет строку целиком (INSERT ... ON CONFLICT DO UPDATE).
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	body, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	row := documentRow{Key: documentKey, Body: body, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&row).Error
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
