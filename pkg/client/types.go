package client

import "time"

// User is an author account as returned by the API.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post is a published article together with the interaction details computed
// for the requesting user.
type Post struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	CoverImageURL string    `json:"cover_image_url"`
	Category      string    `json:"category"`
	Featured      bool      `json:"featured"`
	Views         int       `json:"views"`
	UserID        uint      `json:"user_id"`
	User          User      `json:"user"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	Liked         bool      `json:"liked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Comment is a reader comment on a post.
type Comment struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	PostID    uint      `json:"post_id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikeState is the like status check response for one post and one viewer.
type LikeState struct {
	HasLiked   bool  `json:"hasLiked"`
	LikesCount int64 `json:"likesCount"`
}

// ToggleResult is the server-confirmed state after a like toggle.
type ToggleResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// Session is the result of a successful register or login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreatePostInput holds the fields for a new post.
type CreatePostInput struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	Category      string `json:"category,omitempty"`
	Featured      bool   `json:"featured,omitempty"`
}

// UpdatePostInput is a partial post update. Nil fields are left unchanged.
type UpdatePostInput struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	Category      *string `json:"category,omitempty"`
	Featured      *bool   `json:"featured,omitempty"`
}

// UpdateProfileInput is a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// ListPostsOptions filters and paginates the post feed.
type ListPostsOptions struct {
	Limit    int
	Offset   int
	Category string
	AuthorID uint
	Featured *bool
}
