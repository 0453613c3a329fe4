// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options tunes the volume of generated data.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	LikeRatio       float64 // probability that a given user likes a given post
	MaxDays         int     // spread of created_at timestamps into the past
	Password        string  // plaintext password shared by all seeded users
}

// DefaultOptions returns a small data set suitable for local development.
func DefaultOptions() Options {
	return Options{
		Users:           8,
		PostsPerUser:    3,
		CommentsPerPost: 4,
		LikeRatio:       0.35,
		MaxDays:         60,
		Password:        "password1",
	}
}

var categories = []string{"engineering", "essays", "letters", "reviews", "travel"}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run populates the database with users, posts, comments and likes, then
// reconciles the denormalized like counters against the ledger.
func (f *Factory) Run() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	users := make([]*models.User, 0, f.opts.Users)
	for i := 0; i < f.opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("seed%d_%s", i, gofakeit.Email()),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := f.db.Create(user).Error; err != nil {
			return fmt.Errorf("creating seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	posts := make([]*models.Post, 0, f.opts.Users*f.opts.PostsPerUser)
	for _, user := range users {
		for i := 0; i < f.opts.PostsPerUser; i++ {
			content := gofakeit.Paragraph(3, 4, 12, "\n\n")
			post := &models.Post{
				Title:         gofakeit.Sentence(6),
				Content:       content,
				Excerpt:       gofakeit.Sentence(12),
				CoverImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
				Category:      categories[f.rand.Intn(len(categories))],
				Featured:      f.rand.Intn(10) == 0,
				Views:         f.rand.Intn(500),
				UserID:        user.ID,
				CreatedAt:     f.pastTime(),
			}
			if err := f.db.Create(post).Error; err != nil {
				return fmt.Errorf("creating seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}
	log.Printf("seeded %d posts", len(posts))

	comments := 0
	for _, post := range posts {
		n := f.rand.Intn(f.opts.CommentsPerPost + 1)
		for i := 0; i < n; i++ {
			commenter := users[f.rand.Intn(len(users))]
			comment := &models.Comment{
				Content:   gofakeit.Sentence(10),
				UserID:    commenter.ID,
				PostID:    post.ID,
				CreatedAt: f.pastTime(),
			}
			if err := f.db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating seed comment: %w", err)
			}
			comments++
		}
	}
	log.Printf("seeded %d comments", comments)

	likes := 0
	for _, post := range posts {
		for _, user := range users {
			if f.rand.Float64() >= f.opts.LikeRatio {
				continue
			}
			like := &models.Like{UserID: user.ID, PostID: post.ID, CreatedAt: f.pastTime()}
			if err := f.db.Create(like).Error; err != nil {
				return fmt.Errorf("creating seed like: %w", err)
			}
			likes++
		}
	}
	log.Printf("seeded %d likes", likes)

	return f.reconcileLikeCounts()
}

// reconcileLikeCounts rewrites posts.likes_count from the ledger cardinality.
func (f *Factory) reconcileLikeCounts() error {
	return f.db.Exec(
		"UPDATE posts SET likes_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)",
	).Error
}

// ClearAll removes all seeded data. Order matters: interactions first, then
// posts, then users.
func ClearAll(db *gorm.DB) error {
	for _, stmt := range []string{
		"DELETE FROM likes",
		"DELETE FROM comments",
		"DELETE FROM posts",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().Add(-back)
}
