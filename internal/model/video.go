package model

import "time"

type Video struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatorID string `gorm:"index;not null" json:"-"`
	Creator   *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	Title  string `gorm:"not null" json:"title"`
	Prompt string `gorm:"not null" json:"prompt"`

	// Asset references. Either absolute URLs pointing at externally hosted
	// media or URLs derived from our own upload directory. Device-local
	// handles (file://, content://) must never end up here.
	Video     string `gorm:"not null" json:"video"`
	Thumbnail string `gorm:"not null" json:"thumbnail"`

	Views int64  `json:"views"`
	Likes []User `gorm:"many2many:video_likes" json:"likes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
