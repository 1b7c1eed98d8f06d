package models

// GameImage is one entry in a game's ordered photo gallery.
// SortOrder values are contiguous from 0 per game; order 0 is the
// primary image surfaced as the game's cover.
type GameImage struct {
	ID        uint   `gorm:"primaryKey"`
	GameID    uint   `gorm:"not null;index"`
	Filename  string `gorm:"size:255;not null"`
	SortOrder int    `gorm:"not null;default:0"`

	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}
