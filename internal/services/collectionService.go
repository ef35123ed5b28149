package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arzan03/doctasks/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrUnknownCollection = errors.New("unknown collection")

// CollectionService lists raw documents of the task collections.
type CollectionService struct {
	database *mongo.Database
}

func NewCollectionService(database *mongo.Database) *CollectionService {
	return &CollectionService{database: database}
}

// ListDocuments returns up to limit documents of name; limit <= 0 means all.
func (s *CollectionService) ListDocuments(ctx context.Context, name string, limit int64) ([]bson.M, error) {
	if !db.IsKnownCollection(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.database.Collection(name).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	return docs, nil
}
