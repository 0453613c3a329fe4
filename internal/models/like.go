// Package models contains data structures for the application's domain models.
package models

import "time"

// Like is a ledger entry recording that a user likes a post.
// The combination of UserID and PostID must be unique; the database
// constraint, not an application-level check, is the final arbiter under
// concurrent toggles from the same user.
//
// Likes are hard-deleted (no DeletedAt) so the unique index stays meaningful
// across repeated toggle cycles.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
