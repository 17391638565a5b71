package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zubbymusic/song-suggestions/internal/models"
)

// CreateSong validates and inserts a new suggestion. Status is always forced
// to pending; a client-supplied status never reaches the document.
func (db *DB) CreateSong(ctx context.Context, req *models.CreateSongRequest) (*models.Song, error) {
	req.Trim()
	song := &models.Song{
		Name:      req.Name,
		Artist:    req.Artist,
		Title:     req.Title,
		Link:      req.Link,
		Message:   req.Message,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}

	res, err := db.songs.InsertOne(ctx, song)
	if err != nil {
		return nil, fmt.Errorf("error creating song: %w", err)
	}
	song.ID = res.InsertedID.(primitive.ObjectID)
	return song, nil
}

// FindDuplicate looks for an existing suggestion with the same artist and
// title, ignoring case. Returns (nil, nil) when there is none. The check is
// not atomic with the following insert; concurrent identical submissions can
// both land.
func (db *DB) FindDuplicate(ctx context.Context, artist, title string) (*models.Song, error) {
	filter := bson.M{
		"artist": caseInsensitiveExact(artist),
		"title":  caseInsensitiveExact(title),
	}
	var song models.Song
	err := db.songs.FindOne(ctx, filter).Decode(&song)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking for duplicate song: %w", err)
	}
	return &song, nil
}

func caseInsensitiveExact(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func (db *DB) GetSongByID(ctx context.Context, id primitive.ObjectID) (*models.Song, error) {
	var song models.Song
	err := db.songs.FindOne(ctx, bson.M{"_id": id}).Decode(&song)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting song: %w", err)
	}
	return &song, nil
}

// ListOptions selects and orders one page of suggestions.
type ListOptions struct {
	Status string // "all" disables the status filter
	Artist string // case-insensitive substring match
	Page   int
	Limit  int
	Sort   string
	Order  string // "asc" ascends, anything else descends
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{}
	if o.Status != "" && o.Status != "all" {
		filter["status"] = o.Status
	}
	if o.Artist != "" {
		filter["artist"] = primitive.Regex{Pattern: regexp.QuoteMeta(o.Artist), Options: "i"}
	}
	return filter
}

func (o ListOptions) sort() bson.D {
	field := o.Sort
	if field == "" {
		field = "createdAt"
	}
	dir := -1
	if o.Order == "asc" {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}}
}

// ListSongs returns one page of suggestions plus the total count. The same
// filter backs both, so the page and the reported total always agree.
func (db *DB) ListSongs(ctx context.Context, opts ListOptions) ([]models.Song, int64, error) {
	filter := opts.filter()

	skip := int64(opts.Page-1) * int64(opts.Limit)
	cursor, err := db.songs.Find(ctx, filter, options.Find().
		SetSort(opts.sort()).
		SetSkip(skip).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing songs: %w", err)
	}

	songs := []models.Song{}
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, 0, fmt.Errorf("error decoding songs: %w", err)
	}

	total, err := db.songs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting songs: %w", err)
	}

	return songs, total, nil
}

// UpdateSongStatus moves a suggestion to a new moderation state. Only the
// status field is ever written; everything else is immutable after creation.
func (db *DB) UpdateSongStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Song, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	var song models.Song
	err := db.songs.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&song)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating song status: %w", err)
	}
	return &song, nil
}

func (db *DB) DeleteSong(ctx context.Context, id primitive.ObjectID) (*models.Song, error) {
	var song models.Song
	err := db.songs.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&song)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error deleting song: %w", err)
	}
	return &song, nil
}
