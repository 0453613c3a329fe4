// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a published article on the Inkwell platform.
//
// LikesCount is a denormalized cache of the like ledger cardinality for this
// post. The ledger (likes table) is the source of truth; the column is
// recomputed from the ledger inside the same transaction as every toggle,
// never incremented independently.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"not null" json:"title"`
	Content       string `gorm:"type:text;not null" json:"content"`
	Excerpt       string `json:"excerpt"`
	CoverImageURL string `json:"cover_image_url"`
	Category      string `gorm:"index" json:"category"`
	Featured      bool   `gorm:"default:false;index" json:"featured"`
	Views         int    `gorm:"default:0" json:"views"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	LikesCount    int    `gorm:"default:0" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->;-:migration" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
