package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedServer serves fixed pages keyed by offset.
func feedServer(t *testing.T, pages map[int][]Post) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		json.NewEncoder(w).Encode(map[string]any{"posts": pages[offset]})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedLoaderDeduplicatesOverlappingPages(t *testing.T) {
	// A post was created between the two fetches, shifting post 3 from the
	// second page into the first page's window on the server. The client had
	// already seen it.
	srv := feedServer(t, map[int][]Post{
		0: {{ID: 5}, {ID: 4}, {ID: 3}},
		3: {{ID: 3}, {ID: 2}, {ID: 1}},
	})
	loader := NewFeedLoader(New(srv.URL), 3, "")

	first, err := loader.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 3)

	second, err := loader.LoadMore(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, uint(2), second[0].ID)
	assert.Equal(t, uint(1), second[1].ID)

	ids := map[uint]int{}
	for _, p := range loader.Posts() {
		ids[p.ID]++
	}
	for id, n := range ids {
		assert.Equal(t, 1, n, "post %d appeared %d times", id, n)
	}
}

func TestFeedLoaderExhaustsOnShortPage(t *testing.T) {
	srv := feedServer(t, map[int][]Post{
		0: {{ID: 2}, {ID: 1}},
	})
	loader := NewFeedLoader(New(srv.URL), 5, "")

	posts, err := loader.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.True(t, loader.Exhausted())

	// Further loads are no-ops, not requests.
	posts, err = loader.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, posts)
}

func TestFeedLoaderSingleFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		json.NewEncoder(w).Encode(map[string]any{"posts": []Post{{ID: 1}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	loader := NewFeedLoader(New(srv.URL), 5, "")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := loader.LoadMore(context.Background())
		assert.NoError(t, err)
	}()

	<-entered
	_, err := loader.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrLoadInProgress)

	close(release)
	wg.Wait()
	assert.Len(t, loader.Posts(), 1)
}

func TestFeedLoaderRetryAfterErrorReusesCursor(t *testing.T) {
	var offsets []string
	fail := true
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("offset"))
		if fail {
			fail = false
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"posts": []Post{{ID: 1}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	loader := NewFeedLoader(New(srv.URL), 5, "")

	_, err := loader.LoadMore(context.Background())
	require.Error(t, err)

	posts, err := loader.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, []string{"", ""}, offsets, "both attempts should fetch the first page")
}
