package models

import "time"

// PlaySession is one logged play of a game.
type PlaySession struct {
	ID              uint      `gorm:"primaryKey"`
	GameID          uint      `gorm:"not null;index"`
	PlayedAt        time.Time `gorm:"type:date;not null;index"`
	PlayerCount     *int
	DurationMinutes *int
	Notes           *string
	DateAdded       time.Time `gorm:"not null"`

	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}
