package models

import "time"

// GameStatus tracks whether a title is in the collection, wanted, or gone.
type GameStatus string

const (
	StatusOwned    GameStatus = "owned"
	StatusWishlist GameStatus = "wishlist"
	StatusSold     GameStatus = "sold"
)

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s GameStatus) bool {
	switch s {
	case StatusOwned, StatusWishlist, StatusSold:
		return true
	}
	return false
}

// Game represents one collected or wishlisted title.
//
// Categories, mechanics, designers, publishers and labels are stored as
// JSON-array text, preserving insertion order and allowing duplicates.
// DateAdded is set once at creation; DateModified is touched on every
// mutation. Deletes are hard deletes, so there is no soft-delete column.
type Game struct {
	ID            uint   `gorm:"primaryKey"`
	BGGID         *int64 `gorm:"column:bgg_id;uniqueIndex"`
	Name          string `gorm:"size:255;not null;index"`
	YearPublished *int
	MinPlayers    *int
	MaxPlayers    *int
	MinPlaytime   *int
	MaxPlaytime   *int
	Difficulty    *float64 // BGG weight, 1-5
	Description   *string
	ImageURL      *string `gorm:"column:image_url"`
	ThumbnailURL  *string `gorm:"column:thumbnail_url"`
	Categories    *string // JSON array as text
	Mechanics     *string
	Designers     *string
	Publishers    *string
	Labels        *string

	UserRating *int
	UserNotes  *string
	LastPlayed *time.Time `gorm:"type:date"`
	Status     GameStatus `gorm:"size:20;not null;default:'owned';index"`

	PurchaseDate     *time.Time `gorm:"type:date"`
	PurchasePrice    *float64
	PurchaseLocation *string `gorm:"size:255"`

	ImageCached          bool    `gorm:"not null;default:false"`
	InstructionsFilename *string `gorm:"size:255"`
	ScanFilename         *string `gorm:"size:255"`
	ScanGLBFilename      *string `gorm:"column:scan_glb_filename;size:255"`
	ScanFeatured         bool    `gorm:"not null;default:false"`

	DateAdded    time.Time `gorm:"not null"`
	DateModified time.Time `gorm:"not null"`
}
