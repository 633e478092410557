// Package mongodb is the MongoDB adapter for the identity and campaign stores.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	campaignsCollection = "campaigns"
)

// Store holds the collections used by the repositories.
type Store struct {
	Client       *mongo.Client
	DB           *mongo.Database
	colUsers     *mongo.Collection
	colCampaigns *mongo.Collection
}

// NewStore wraps a connected client. The client must use NewRegistry.
func NewStore(client *mongo.Client, dbname string) *Store {
	db := client.Database(dbname)
	return &Store{
		Client:       client,
		DB:           db,
		colUsers:     db.Collection(usersCollection),
		colCampaigns: db.Collection(campaignsCollection),
	}
}

// ClientOptions returns the client options the store expects.
func ClientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetRegistry(NewRegistry()).
		SetRetryWrites(true).
		SetMaxPoolSize(50)
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

// EnsureIndexes creates the indexes that arbitrate concurrent sign-ups.
// Email is unique; googleId is unique only where it is set.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.colUsers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys: bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"googleId": bson.M{"$type": "string"}}).
				SetName("uniq_google_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	_, err = s.colCampaigns.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "amount", Value: -1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("feed_order"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("owner_created_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("create campaign indexes: %w", err)
	}
	return nil
}

// IsDup reports whether err is a unique index violation.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
