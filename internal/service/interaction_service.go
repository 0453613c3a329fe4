package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// InteractionService covers the like ledger: toggling and status reads.
type InteractionService struct {
	likeRepo repository.LikeRepository
}

// ToggleResult is the authoritative state after a toggle.
type ToggleResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// LikeState is the read-only status check response.
type LikeState struct {
	Liked      bool  `json:"hasLiked"`
	LikesCount int64 `json:"likesCount"`
}

func NewInteractionService(likeRepo repository.LikeRepository) *InteractionService {
	return &InteractionService{likeRepo: likeRepo}
}

// ToggleLike flips the caller's like on a post and returns the resulting
// state. The repository performs the flip and the count recomputation in a
// single transaction.
func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID uint) (*ToggleResult, error) {
	span, ctx := observability.NewSpan(ctx, "InteractionService.ToggleLike")
	defer span.End()
	span.AddAttributes(
		attribute.Int64("post.id", int64(postID)),
		attribute.Int64("user.id", int64(userID)),
	)

	liked, count, err := s.likeRepo.Toggle(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		span.SetError(err)
		return nil, err
	}

	result := "unliked"
	if liked {
		result = "liked"
	}
	observability.LikeToggles.WithLabelValues(result).Inc()

	return &ToggleResult{Liked: liked, LikesCount: count}, nil
}

// LikeStatus reports whether userID has liked the post along with the current
// count. It never mutates the ledger. userID zero means an anonymous caller,
// who has liked nothing.
func (s *InteractionService) LikeStatus(ctx context.Context, userID, postID uint) (*LikeState, error) {
	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	if userID == 0 {
		return &LikeState{Liked: false, LikesCount: count}, nil
	}

	liked, err := s.likeRepo.HasLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, LikesCount: count}, nil
}
