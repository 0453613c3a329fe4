package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetOwned(ctx context.Context, id, postID, userID uint) (*models.Comment, error) {
	args := m.Called(ctx, id, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, postID, limit, offset)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCommentTestServer(commentRepo *MockCommentRepository, postRepo *MockPostRepository) *Server {
	return &Server{
		config:         testConfig(),
		commentService: service.NewCommentService(commentRepo, postRepo),
	}
}

func TestCreateComment(t *testing.T) {
	app := fiber.New()
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	s := newCommentTestServer(commentRepo, postRepo)

	withUser(app, 1)
	app.Post("/posts/:postId/comments", s.CreateComment)

	postJSON := func(body map[string]string) *http.Request {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/posts/1/comments", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("success", func(t *testing.T) {
		postRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
			Return(&models.Post{ID: 1}, nil).Once()
		commentRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				c := args.Get(1).(*models.Comment)
				c.ID = 10
				c.User = models.User{ID: 1, Username: "inkuser"}
			}).
			Return(nil).Once()

		resp, _ := app.Test(postJSON(map[string]string{"content": "Nice piece"}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment models.Comment
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&comment))
		assert.Equal(t, uint(10), comment.ID)
		assert.Equal(t, "inkuser", comment.User.Username)
	})

	t.Run("whitespace-only content", func(t *testing.T) {
		resp, _ := app.Test(postJSON(map[string]string{"content": "   \n\t "}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
			Return(nil, gorm.ErrRecordNotFound).Once()

		resp, _ := app.Test(postJSON(map[string]string{"content": "Orphan"}))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateComment_SomeoneElses404(t *testing.T) {
	app := fiber.New()
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	s := newCommentTestServer(commentRepo, postRepo)

	withUser(app, 2)
	app.Put("/posts/:postId/comments/:commentId", s.UpdateComment)

	// The ownership-scoped lookup misses for user 2.
	commentRepo.On("GetOwned", mock.Anything, uint(5), uint(1), uint(2)).
		Return(nil, gorm.ErrRecordNotFound).Once()

	body, _ := json.Marshal(map[string]string{"content": "hijacked"})
	req := httptest.NewRequest(http.MethodPut, "/posts/1/comments/5", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteComment(t *testing.T) {
	app := fiber.New()
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	s := newCommentTestServer(commentRepo, postRepo)

	withUser(app, 1)
	app.Delete("/posts/:postId/comments/:commentId", s.DeleteComment)

	t.Run("own comment", func(t *testing.T) {
		commentRepo.On("GetOwned", mock.Anything, uint(5), uint(1), uint(1)).
			Return(&models.Comment{ID: 5, PostID: 1, UserID: 1}, nil).Once()
		commentRepo.On("Delete", mock.Anything, uint(5)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/posts/1/comments/5", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("someone else's comment", func(t *testing.T) {
		commentRepo.On("GetOwned", mock.Anything, uint(6), uint(1), uint(1)).
			Return(nil, gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/posts/1/comments/6", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		commentRepo.AssertNotCalled(t, "Delete", mock.Anything, uint(6))
	})
}

func TestGetComments_Pagination(t *testing.T) {
	app := fiber.New()
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	s := newCommentTestServer(commentRepo, postRepo)

	app.Get("/posts/:postId/comments", s.GetComments)

	postRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
		Return(&models.Post{ID: 1}, nil).Once()
	commentRepo.On("ListByPost", mock.Anything, uint(1), 5, 10).
		Return([]*models.Comment{{ID: 3, Content: "newest"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/posts/1/comments?limit=5&offset=10", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	commentRepo.AssertExpectations(t)
}
