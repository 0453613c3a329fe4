package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	assert.Empty(t, Username("writer_01"))
	assert.Empty(t, Username("ink-well"))
	assert.NotEmpty(t, Username("ab"))
	assert.NotEmpty(t, Username(strings.Repeat("a", 31)))
	assert.NotEmpty(t, Username("has space"))
	assert.NotEmpty(t, Username("emoji😀"))
}

func TestEmail(t *testing.T) {
	assert.Empty(t, Email("a@b.co"))
	assert.NotEmpty(t, Email("not-an-email"))
	assert.NotEmpty(t, Email("missing@tld"))
	assert.NotEmpty(t, Email("@nouser.com"))
}

func TestPassword(t *testing.T) {
	assert.Empty(t, Password("12345678"))
	assert.NotEmpty(t, Password("1234567"))
}

func TestCommentContent(t *testing.T) {
	assert.Empty(t, CommentContent("fine"))
	assert.NotEmpty(t, CommentContent(""))
	assert.NotEmpty(t, CommentContent("   \t\n  "))
	assert.NotEmpty(t, CommentContent(strings.Repeat("x", MaxCommentLen+1)))

	// Content with surrounding whitespace but real text is accepted as-is.
	assert.Empty(t, CommentContent("  padded  "))
}
