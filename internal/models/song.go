package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation states of a suggestion. Every new suggestion starts out pending
// and only a moderator moves it from there.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// IsValidStatus reports whether s is one of the three moderation states.
// Case variants are not accepted.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Song is a suggested playlist addition. The validate tags are the field rule
// table enforced on every write.
type Song struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Artist    string             `bson:"artist" json:"artist" validate:"required,min=2,max=100"`
	Title     string             `bson:"title" json:"title" validate:"required,min=2,max=200"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty" validate:"omitempty,songlink"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty" validate:"omitempty,max=500"`
	Status    string             `bson:"status" json:"status" validate:"required,oneof=pending approved rejected"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// SongSummary is the trimmed projection returned from the create endpoint.
type SongSummary struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Artist    string             `json:"artist"`
	Title     string             `json:"title"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Summary returns the projection of s used in the create response.
func (s *Song) Summary() SongSummary {
	return SongSummary{
		ID:        s.ID,
		Name:      s.Name,
		Artist:    s.Artist,
		Title:     s.Title,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

type CreateSongRequest struct {
	Name    string `json:"name"`
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Message string `json:"message"`
}

// Trim strips surrounding whitespace from every field, matching how the
// record is stored.
func (r *CreateSongRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Artist = strings.TrimSpace(r.Artist)
	r.Title = strings.TrimSpace(r.Title)
	r.Link = strings.TrimSpace(r.Link)
	r.Message = strings.TrimSpace(r.Message)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
