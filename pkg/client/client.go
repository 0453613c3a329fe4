// Package client is a Go SDK for the Inkwell HTTP API. It also carries the
// client-side reading state that never leaves the device: the feed loader,
// the per-post interaction widget and the local bookmark store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
	Details    string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Inkwell API with an optional bearer token.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sets an initial bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8480").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, empty if unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		// Best effort: keep the status line if the body is not the envelope.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Logout revokes the current token server-side and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/users/me", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPosts returns one page of the feed.
func (c *Client) ListPosts(ctx context.Context, opts ListPostsOptions) ([]Post, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.AuthorID != 0 {
		q.Set("author", strconv.FormatUint(uint64(opts.AuthorID), 10))
	}
	if opts.Featured != nil {
		q.Set("featured", strconv.FormatBool(*opts.Featured))
	}
	path := "/api/posts"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page struct {
		Posts []Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Posts, nil
}

// GetPost fetches a single post with its interaction details.
func (c *Client) GetPost(ctx context.Context, postID uint) (*Post, error) {
	var post Post
	path := fmt.Sprintf("/api/posts/%d", postID)
	if err := c.do(ctx, http.MethodGet, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post authored by the authenticated user.
func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update to a post the caller owns.
func (c *Client) UpdatePost(ctx context.Context, postID uint, in UpdatePostInput) (*Post, error) {
	var post Post
	path := fmt.Sprintf("/api/posts/%d", postID)
	if err := c.do(ctx, http.MethodPut, path, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post the caller owns.
func (c *Client) DeletePost(ctx context.Context, postID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, nil)
}

// ListComments returns one page of a post's comments, newest first.
func (c *Client) ListComments(ctx context.Context, postID uint, limit, offset int) ([]Comment, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Comments, nil
}

// AddComment posts a comment on a post.
func (c *Client) AddComment(ctx context.Context, postID uint, content string) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, path, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment edits a comment the caller wrote.
func (c *Client) UpdateComment(ctx context.Context, postID, commentID uint, content string) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPut, path, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment the caller wrote.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID uint) error {
	path := fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ToggleLike flips the caller's like on a post and returns the resulting
// server-confirmed state.
func (c *Client) ToggleLike(ctx context.Context, postID uint) (*ToggleResult, error) {
	var result ToggleResult
	path := fmt.Sprintf("/api/posts/%d/likes", postID)
	if err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LikeStatus reports the current like state without changing it.
func (c *Client) LikeStatus(ctx context.Context, postID uint) (*LikeState, error) {
	var state LikeState
	path := fmt.Sprintf("/api/posts/%d/likes/check", postID)
	if err := c.do(ctx, http.MethodGet, path, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
