package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmissionInProgress is returned when an interaction is triggered while
// a previous one is still being submitted. Nothing is queued or retried.
var ErrSubmissionInProgress = errors.New("interaction already in progress")

// commentPageSize is the server's maximum comments page. Re-fetches page at
// this size until a short page so long threads are never truncated.
const commentPageSize = 100

// PostInteractions is the widget state for a single post: the like button
// and the comment section. It moves between Idle and Submitting; at most one
// submission runs at a time.
//
// The like state only ever changes from a server response. A failed toggle
// leaves the displayed state exactly as it was, so the UI never shows a like
// the ledger does not have.
type PostInteractions struct {
	client *Client
	postID uint

	mu         sync.Mutex
	submitting bool
	likes      LikeState
	comments   []Comment
}

// NewPostInteractions creates the interaction state for one post.
func NewPostInteractions(c *Client, postID uint) *PostInteractions {
	return &PostInteractions{client: c, postID: postID}
}

// Refresh loads the current like state and comment list from the server.
func (p *PostInteractions) Refresh(ctx context.Context) error {
	state, err := p.client.LikeStatus(ctx, p.postID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.likes = *state
	p.mu.Unlock()
	return p.refetchComments(ctx)
}

func (p *PostInteractions) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.submitting {
		return ErrSubmissionInProgress
	}
	p.submitting = true
	return nil
}

func (p *PostInteractions) end() {
	p.mu.Lock()
	p.submitting = false
	p.mu.Unlock()
}

// ToggleLike submits a like toggle. On success the displayed state becomes
// whatever the server returned; on failure it is left untouched.
func (p *PostInteractions) ToggleLike(ctx context.Context) (LikeState, error) {
	if err := p.begin(); err != nil {
		return p.Likes(), err
	}
	defer p.end()

	result, err := p.client.ToggleLike(ctx, p.postID)
	if err != nil {
		return p.Likes(), err
	}

	state := LikeState{HasLiked: result.Liked, LikesCount: result.LikesCount}
	p.mu.Lock()
	p.likes = state
	p.mu.Unlock()
	return state, nil
}

// AddComment submits a new comment and, on success, re-fetches the comment
// list so the section shows the server's ordering.
func (p *PostInteractions) AddComment(ctx context.Context, content string) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if _, err := p.client.AddComment(ctx, p.postID, content); err != nil {
		return err
	}
	return p.refetchComments(ctx)
}

// EditComment submits an edit to one of the caller's comments and re-fetches
// the list on success.
func (p *PostInteractions) EditComment(ctx context.Context, commentID uint, content string) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if _, err := p.client.UpdateComment(ctx, p.postID, commentID, content); err != nil {
		return err
	}
	return p.refetchComments(ctx)
}

// DeleteComment removes one of the caller's comments and re-fetches the list
// on success.
func (p *PostInteractions) DeleteComment(ctx context.Context, commentID uint) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if err := p.client.DeleteComment(ctx, p.postID, commentID); err != nil {
		return err
	}
	return p.refetchComments(ctx)
}

func (p *PostInteractions) refetchComments(ctx context.Context) error {
	var all []Comment
	for offset := 0; ; offset += commentPageSize {
		page, err := p.client.ListComments(ctx, p.postID, commentPageSize, offset)
		if err != nil {
			return err
		}
		all = append(all, page...)
		if len(page) < commentPageSize {
			break
		}
	}
	p.mu.Lock()
	p.comments = all
	p.mu.Unlock()
	return nil
}

// Likes returns the currently displayed like state.
func (p *PostInteractions) Likes() LikeState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.likes
}

// Comments returns a copy of the currently displayed comment list.
func (p *PostInteractions) Comments() []Comment {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Comment, len(p.comments))
	copy(out, p.comments)
	return out
}

// Submitting reports whether an interaction is currently in flight.
func (p *PostInteractions) Submitting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitting
}
