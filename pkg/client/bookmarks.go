package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// BookmarkStore keeps the reader's bookmarks in a local JSON file. Bookmarks
// are a device-local feature: they are never sent to the server and no other
// device sees them. Toggles apply immediately and persist synchronously.
type BookmarkStore struct {
	path string

	mu  sync.Mutex
	ids map[uint]bool
}

// OpenBookmarkStore loads the bookmark file at path, creating an empty store
// if the file does not exist yet.
func OpenBookmarkStore(path string) (*BookmarkStore, error) {
	store := &BookmarkStore{path: path, ids: make(map[uint]bool)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bookmark file: %w", err)
	}
	if len(data) == 0 {
		return store, nil
	}
	if err := json.Unmarshal(data, &store.ids); err != nil {
		return nil, fmt.Errorf("parsing bookmark file: %w", err)
	}
	return store, nil
}

// Toggle flips the bookmark for a post and reports the new state. The change
// is written to disk before Toggle returns; if the write fails, the toggle is
// rolled back.
func (b *BookmarkStore) Toggle(postID uint) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bookmarked := !b.ids[postID]
	if bookmarked {
		b.ids[postID] = true
	} else {
		delete(b.ids, postID)
	}

	if err := b.save(); err != nil {
		if bookmarked {
			delete(b.ids, postID)
		} else {
			b.ids[postID] = true
		}
		return !bookmarked, err
	}
	return bookmarked, nil
}

// IsBookmarked reports whether the post is bookmarked on this device.
func (b *BookmarkStore) IsBookmarked(postID uint) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids[postID]
}

// All returns the bookmarked post IDs in ascending order.
func (b *BookmarkStore) All() []uint {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]uint, 0, len(b.ids))
	for id := range b.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// save writes the store via a temp file and rename so a crash mid-write
// cannot truncate the bookmark file. Caller must hold b.mu.
func (b *BookmarkStore) save() error {
	data, err := json.MarshalIndent(b.ids, "", "  ")
	if err != nil {
		return err
	}

	tmp := b.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}
