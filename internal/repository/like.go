package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like ledger operations
type LikeRepository interface {
	Toggle(ctx context.Context, userID, postID uint) (liked bool, likesCount int64, err error)
	HasLiked(ctx context.Context, userID, postID uint) (bool, error)
	Count(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state for (userID, postID) in one transaction.
// Delete runs first; if a row was removed the user had liked the post and the
// toggle unlikes it. Otherwise an insert records the like. The insert uses
// ON CONFLICT DO NOTHING so a racing toggle from the same user cannot abort
// the transaction; zero rows inserted means the race was lost and the post is
// already liked, so the state stands.
//
// posts.likes_count is recomputed from the ledger cardinality before commit,
// never incremented, so it cannot drift from the ledger.
func (r *likeRepository) Toggle(ctx context.Context, userID, postID uint) (bool, int64, error) {
	defer dbMetrics.TrackQuery("toggle", "likes")()

	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The post must exist; a like against a missing post is an error,
		// not a silent no-op.
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Unscoped().
			Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
		} else {
			ins := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
				DoNothing: true,
			}).Create(&models.Like{UserID: userID, PostID: postID})
			if ins.Error != nil {
				return ins.Error
			}
			// Zero rows means a concurrent toggle inserted first; either way
			// the row exists now.
			liked = true
		}

		if err := tx.Model(&models.Like{}).
			Where("post_id = ?", postID).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", count).Error
	})
	if err != nil {
		return false, 0, err
	}

	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return liked, count, nil
}

func (r *likeRepository) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
