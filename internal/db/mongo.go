package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	UsersCollection    = "users"
	ArticlesCollection = "articles"
	StudentsCollection = "students"
)

var Collections = []string{UsersCollection, ArticlesCollection, StudentsCollection}

const connectTimeout = 10 * time.Second

// Session owns the client for one process run. Close must be called on
// every exit path.
type Session struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens the client and pings the primary.
func Connect(ctx context.Context, uri, dbName string) (*Session, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connection failed: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	log.Info().Str("db", dbName).Msg("connected to MongoDB")
	return NewSession(client, dbName), nil
}

// NewSession wraps an already connected client.
func NewSession(client *mongo.Client, dbName string) *Session {
	return &Session{Client: client, DB: client.Database(dbName)}
}

// IsKnownCollection reports whether name is one of the task collections.
func IsKnownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Session) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := s.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb disconnect failed: %w", err)
	}
	log.Info().Msg("disconnected from MongoDB")
	return nil
}
