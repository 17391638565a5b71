package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zubbymusic/song-suggestions/internal/database"
	"github.com/zubbymusic/song-suggestions/internal/models"
)

// Store is the slice of the database layer the song handlers use.
type Store interface {
	CreateSong(ctx context.Context, req *models.CreateSongRequest) (*models.Song, error)
	FindDuplicate(ctx context.Context, artist, title string) (*models.Song, error)
	GetSongByID(ctx context.Context, id primitive.ObjectID) (*models.Song, error)
	ListSongs(ctx context.Context, opts database.ListOptions) ([]models.Song, int64, error)
	UpdateSongStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Song, error)
	DeleteSong(ctx context.Context, id primitive.ObjectID) (*models.Song, error)
}

type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the health check, the song resource, and the
// catch-all 404 on the given app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HealthCheck)

	songs := app.Group("/api/songs")
	songs.Post("/", h.CreateSong)
	songs.Get("/", h.GetAllSongs)
	songs.Get("/:id", h.GetSong)
	songs.Put("/:id/status", h.UpdateSongStatus)
	songs.Delete("/:id", h.DeleteSong)

	app.Use(h.NotFound)
}

// CreateSong accepts a new suggestion. The stored status is always pending,
// no matter what the client sent.
func (h *Handler) CreateSong(c *fiber.Ctx) error {
	var req models.CreateSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "Name, artist, and title must be strings",
		})
	}

	req.Trim()
	if req.Name == "" || req.Artist == "" || req.Title == "" {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "Name, artist, and title are required fields",
		})
	}

	existing, err := h.store.FindDuplicate(c.Context(), req.Artist, req.Title)
	if err != nil {
		log.Printf("Error checking for duplicate song: %v", err)
		return internalError(c, "Failed to save song suggestion")
	}
	if existing != nil {
		return c.Status(409).JSON(fiber.Map{
			"error":   "Duplicate song",
			"message": "This song has already been suggested",
		})
	}

	song, err := h.store.CreateSong(c.Context(), &req)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{
				"error":   "Validation failed",
				"details": verr.Details,
			})
		}
		log.Printf("Error creating song: %v", err)
		return internalError(c, "Failed to save song suggestion")
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Song suggestion submitted successfully",
		"song":    song.Summary(),
	})
}

// GetAllSongs lists suggestions with filtering and pagination.
func (h *Handler) GetAllSongs(c *fiber.Ctx) error {
	opts := database.ListOptions{
		Status: c.Query("status", "approved"),
		Artist: c.Query("artist"),
		Page:   positiveQueryInt(c, "page", 1),
		Limit:  positiveQueryInt(c, "limit", 10),
		Sort:   c.Query("sort", "createdAt"),
		Order:  c.Query("order", "desc"),
	}

	songs, total, err := h.store.ListSongs(c.Context(), opts)
	if err != nil {
		log.Printf("Error fetching songs: %v", err)
		return internalError(c, "Failed to fetch songs")
	}

	pages := (total + int64(opts.Limit) - 1) / int64(opts.Limit)
	return c.JSON(fiber.Map{
		"songs": songs,
		"pagination": fiber.Map{
			"page":  opts.Page,
			"limit": opts.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

// GetSong retrieves a single suggestion by id.
func (h *Handler) GetSong(c *fiber.Ctx) error {
	id, ok := songID(c)
	if !ok {
		return invalidID(c)
	}

	song, err := h.store.GetSongByID(c.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		log.Printf("Error fetching song: %v", err)
		return internalError(c, "Failed to fetch song")
	}

	return c.JSON(fiber.Map{"song": song})
}

// UpdateSongStatus moves a suggestion between pending, approved, and
// rejected. Admin use.
func (h *Handler) UpdateSongStatus(c *fiber.Ctx) error {
	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || !models.IsValidStatus(req.Status) {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Invalid status",
			"message": "Status must be one of: pending, approved, rejected",
		})
	}

	id, ok := songID(c)
	if !ok {
		return invalidID(c)
	}

	song, err := h.store.UpdateSongStatus(c.Context(), id, req.Status)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		log.Printf("Error updating song status: %v", err)
		return internalError(c, "Failed to update song status")
	}

	return c.JSON(fiber.Map{
		"message": "Song status updated successfully",
		"song":    song,
	})
}

// DeleteSong removes a suggestion. The deleted record is not echoed back.
func (h *Handler) DeleteSong(c *fiber.Ctx) error {
	id, ok := songID(c)
	if !ok {
		return invalidID(c)
	}

	_, err := h.store.DeleteSong(c.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		log.Printf("Error deleting song: %v", err)
		return internalError(c, "Failed to delete song")
	}

	return c.JSON(fiber.Map{"message": "Song deleted successfully"})
}

// HealthCheck returns server health status.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Song Suggestions API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound answers any unmatched route.
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(404).JSON(fiber.Map{
		"error":   "Route not found",
		"message": "The requested endpoint does not exist",
	})
}

// songID parses the :id path parameter, enforcing the 24-character
// hexadecimal shape before the store is touched.
func songID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	return id, err == nil
}

// positiveQueryInt reads a query parameter as a positive integer, falling
// back to def for missing, malformed, or non-positive values.
func positiveQueryInt(c *fiber.Ctx, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{
		"error":   "Invalid ID format",
		"message": "Song ID must be a 24-character hexadecimal string",
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(404).JSON(fiber.Map{
		"error":   "Song not found",
		"message": "No song found with the provided ID",
	})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(500).JSON(fiber.Map{
		"error":   msg,
		"message": "An internal server error occurred",
	})
}
