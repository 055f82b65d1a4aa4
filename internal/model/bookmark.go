package model

import "time"

type Bookmark struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string `gorm:"index:idx_bookmark_user_video,unique;not null" json:"-"`
	VideoID string `gorm:"index:idx_bookmark_user_video,unique;not null" json:"-"`
	Video   *Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
