package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	collectionName = "documents"
	documentID     = "main"
)

// record - документ целиком плюс _id единственной записи коллекции.
type record struct {
	ID              string `bson:"_id"`
	domain.Document `bson:",inline"`
}

// document достаёт документ из записи. BSON null в коллекциях становится
// пустым срезом, как и у остальных хранилищ.
func (r record) document() *domain.Document {
	doc := r.Document
	storage.Normalize(&doc)
	return &doc
}

// Store хранит документ одной записью в MongoDB.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New подключается к MongoDB и пингует primary.
func New(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"_id": documentID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}

	return rec.document(), nil
}

// Save заменяет запись целиком, создавая её при первом сохранении.
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	rec := record{ID: documentID, Document: *doc}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": documentID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
