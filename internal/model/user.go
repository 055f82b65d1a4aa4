// Package model defines database models
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Avatar       string `json:"avatar"`

	CreatedAt time.Time `json:"created_at"`

	Videos    []Video    `gorm:"foreignKey:CreatorID" json:"-"`
	Bookmarks []Bookmark `gorm:"foreignKey:UserID" json:"-"`
}
