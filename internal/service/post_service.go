package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID        uint
	Title         string
	Content       string
	Excerpt       string
	CoverImageURL string
	Category      string
	Featured      bool
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Category      string
	Featured      *bool
	AuthorID      uint
}

// UpdatePostInput carries a partial update. Nil fields are left untouched;
// there is no generic key whitelist, every updatable field is named here.
type UpdatePostInput struct {
	UserID        uint
	PostID        uint
	Title         *string
	Content       *string
	Excerpt       *string
	CoverImageURL *string
	Category      *string
	Featured      *bool
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

const excerptLen = 160

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(in.Title) > validation.MaxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(in.Content) > validation.MaxContentLen {
		return nil, models.NewValidationError("Content too long (max 100000 characters)")
	}

	excerpt := in.Excerpt
	if strings.TrimSpace(excerpt) == "" {
		excerpt = deriveExcerpt(in.Content)
	}

	post := &models.Post{
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       excerpt,
		CoverImageURL: in.CoverImageURL,
		Category:      in.Category,
		Featured:      in.Featured,
		UserID:        in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetPost returns a post with its interaction details for the viewing user
// and records the view.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, postID); err == nil {
		post.Views++
		observability.PostViews.Inc()
	}

	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	filter := repository.PostFilter{
		Category: in.Category,
		Featured: in.Featured,
		UserID:   in.AuthorID,
	}
	return s.postRepo.List(ctx, filter, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	if post.UserID != in.UserID {
		// A post you cannot edit looks the same as a post that does not exist.
		return nil, models.NewNotFoundError("Post not found")
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if utf8.RuneCountInString(*in.Title) > validation.MaxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		if utf8.RuneCountInString(*in.Content) > validation.MaxContentLen {
			return nil, models.NewValidationError("Content too long (max 100000 characters)")
		}
		post.Content = *in.Content
		if in.Excerpt == nil && strings.TrimSpace(post.Excerpt) == "" {
			post.Excerpt = deriveExcerpt(post.Content)
		}
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.CoverImageURL != nil {
		post.CoverImageURL = *in.CoverImageURL
	}
	if in.Category != nil {
		post.Category = *in.Category
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}
	if post.UserID != in.UserID {
		return models.NewNotFoundError("Post not found")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// deriveExcerpt takes the leading content as a preview, cut on a rune
// boundary.
func deriveExcerpt(content string) string {
	trimmed := strings.TrimSpace(content)
	if utf8.RuneCountInString(trimmed) <= excerptLen {
		return trimmed
	}
	runes := []rune(trimmed)
	return strings.TrimSpace(string(runes[:excerptLen])) + "…"
}
