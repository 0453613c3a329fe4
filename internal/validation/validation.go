// Package validation holds input validation rules shared by services.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 8
	MaxCommentLen  = 10000
	MaxTitleLen    = 200
	MaxContentLen  = 100000
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Username checks length and allowed characters. Returns a human readable
// reason when invalid, empty string when valid.
func Username(name string) string {
	n := utf8.RuneCountInString(name)
	if n < MinUsernameLen {
		return "Username must be at least 3 characters"
	}
	if n > MaxUsernameLen {
		return "Username must be at most 30 characters"
	}
	if !usernameRe.MatchString(name) {
		return "Username may only contain letters, numbers, hyphens and underscores"
	}
	return ""
}

// Email checks basic address shape.
func Email(email string) string {
	if !emailRe.MatchString(email) {
		return "A valid email address is required"
	}
	return ""
}

// Password enforces the minimum length.
func Password(password string) string {
	if len(password) < MinPasswordLen {
		return "Password must be at least 8 characters"
	}
	return ""
}

// CommentContent rejects empty or whitespace-only content and enforces the
// maximum length. Content is validated as submitted; it is not trimmed before
// storage.
func CommentContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return "Comment content is required"
	}
	if utf8.RuneCountInString(content) > MaxCommentLen {
		return "Comment too long (max 10000 characters)"
	}
	return ""
}
