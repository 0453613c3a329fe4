package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PostKeyPrefix    = "post:%d"
	PostListKey      = "posts:list"
	CommentsKeyPref  = "post:%d:comments"
	LikeCountKeyPref = "post:%d:likes"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 30 * time.Minute
	PostListTTL  = 1 * time.Minute
	CommentsTTL  = 2 * time.Minute
	LikeCountTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CommentsKey(postID uint) string {
	return fmt.Sprintf(CommentsKeyPref, postID)
}

func LikeCountKey(postID uint) string {
	return fmt.Sprintf(LikeCountKeyPref, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, CommentsKey(postID))
	Invalidate(ctx, LikeCountKey(postID))
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostListKey)
}
