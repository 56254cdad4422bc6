package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names
const (
	ColUsers   = "users"
	ColTours   = "tours"
	ColReviews = "reviews"
)

// DB is the storage handle. It is constructed once in main and passed to
// the handlers; nothing else in the program opens connections.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the client, verifies the connection and makes sure the
// indexes backing the uniqueness invariants exist.
func Connect(uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := &DB{client: client, db: client.Database(dbName)}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	log.Println("MongoDB connected successfully")
	return db, nil
}

// Disconnect closes the client. Call on shutdown.
func (d *DB) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *DB) Users() *mongo.Collection   { return d.db.Collection(ColUsers) }
func (d *DB) Tours() *mongo.Collection   { return d.db.Collection(ColTours) }
func (d *DB) Reviews() *mongo.Collection { return d.db.Collection(ColReviews) }

// ensureIndexes creates the unique indexes the API relies on: one account
// per email, one review per (tour, user) pair.
func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	_, err = d.Reviews().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("reviews tour/user index: %w", err)
	}

	return nil
}
