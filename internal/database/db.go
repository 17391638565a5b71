package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotFound is returned when no song matches the given id.
var ErrNotFound = errors.New("song not found")

const connectTimeout = 10 * time.Second

type DB struct {
	client *mongo.Client
	songs  *mongo.Collection
}

func New(uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetMaxPoolSize(25))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db := &DB{
		client: client,
		songs:  client.Database(dbName).Collection("songs"),
	}
	if err := db.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("error creating indexes: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}

// ensureIndexes creates the query-acceleration indexes. None of them enforce
// uniqueness; duplicate prevention stays an application-level check.
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.songs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "artist", Value: 1}, {Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return db.client.Disconnect(ctx)
}
