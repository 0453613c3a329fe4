package client

import (
	"context"
	"errors"
	"sync"
)

// ErrLoadInProgress is returned when LoadMore is triggered while a previous
// load is still running. The caller should ignore it and wait for the first
// load to finish.
var ErrLoadInProgress = errors.New("feed load already in progress")

// FeedLoader accumulates pages of the post feed. It guarantees that at most
// one page fetch runs at a time, that the page cursor only moves forward and
// that a post never appears twice even if pages overlap because of writes
// happening between fetches.
type FeedLoader struct {
	client   *Client
	pageSize int
	category string

	mu         sync.Mutex
	inFlight   bool
	nextOffset int
	exhausted  bool
	posts      []Post
	seen       map[uint]struct{}
}

// NewFeedLoader creates a loader over the given client. A non-empty category
// restricts the feed to that category.
func NewFeedLoader(c *Client, pageSize int, category string) *FeedLoader {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &FeedLoader{
		client:   c,
		pageSize: pageSize,
		category: category,
		seen:     make(map[uint]struct{}),
	}
}

// LoadMore fetches the next page and returns only the posts that were new to
// this loader. It returns (nil, nil) once the feed is exhausted and
// ErrLoadInProgress when called while another LoadMore is running.
func (f *FeedLoader) LoadMore(ctx context.Context) ([]Post, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return nil, ErrLoadInProgress
	}
	if f.exhausted {
		f.mu.Unlock()
		return nil, nil
	}
	f.inFlight = true
	offset := f.nextOffset
	f.mu.Unlock()

	page, err := f.client.ListPosts(ctx, ListPostsOptions{
		Limit:    f.pageSize,
		Offset:   offset,
		Category: f.category,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		// The cursor stays where it was so a retry refetches the same page.
		return nil, err
	}

	f.nextOffset = offset + f.pageSize
	if len(page) < f.pageSize {
		f.exhausted = true
	}

	fresh := make([]Post, 0, len(page))
	for _, post := range page {
		if _, ok := f.seen[post.ID]; ok {
			continue
		}
		f.seen[post.ID] = struct{}{}
		fresh = append(fresh, post)
	}
	f.posts = append(f.posts, fresh...)
	return fresh, nil
}

// Posts returns a copy of everything loaded so far, in load order.
func (f *FeedLoader) Posts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// Exhausted reports whether the server has run out of pages.
func (f *FeedLoader) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exhausted
}

// Reset discards all loaded posts and rewinds the cursor to the start.
func (f *FeedLoader) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextOffset = 0
	f.exhausted = false
	f.posts = nil
	f.seen = make(map[uint]struct{})
}
