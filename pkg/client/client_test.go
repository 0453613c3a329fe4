package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresTokenAndSendsBearer(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		json.NewEncoder(w).Encode(Session{
			Token: "token-123",
			User:  User{ID: 7, Username: "alice"},
		})
	})
	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{ID: 7, Username: "alice"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	session, err := c.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-123", session.Token)
	assert.Equal(t, "token-123", c.Token())

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(7), me.ID)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestToggleLikeDecodesServerState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts/42/likes", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ToggleResult{Liked: true, LikesCount: 5})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, WithToken("t"))
	result, err := c.ToggleLike(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(5), result.LikesCount)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Post not found",
			"code":  "NOT_FOUND",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetPost(context.Background(), 99)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Post not found", apiErr.Message)
}

func TestListPostsQueryParams(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"posts":  []Post{{ID: 1, Title: "First"}},
			"limit":  5,
			"offset": 10,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	featured := true
	posts, err := New(srv.URL).ListPosts(context.Background(), ListPostsOptions{
		Limit:    5,
		Offset:   10,
		Category: "essays",
		Featured: &featured,
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "category=essays&featured=true&limit=5&offset=10", gotQuery)
}
