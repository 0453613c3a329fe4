package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func emptyUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(emptyUserRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@b.com", Password: "password1"}},
		{"bad username chars", RegisterInput{Username: "no spaces!", Email: "a@b.com", Password: "password1"}},
		{"bad email", RegisterInput{Username: "writer", Email: "not-an-email", Password: "password1"}},
		{"short password", RegisterInput{Username: "writer", Email: "a@b.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := emptyUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		return &models.User{ID: 1, Email: email}, nil
	}

	svc := NewUserService(repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "writer",
		Email:    "taken@example.com",
		Password: "password1",
	})
	assertValidationError(t, err)
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	t.Parallel()

	var created *models.User
	repo := emptyUserRepo()
	repo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 1
		created = u
		return nil
	}

	svc := NewUserService(repo)
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "writer",
		Email:    "new@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEqual(t, "password1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password1")))
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := emptyUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "known@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hashed)}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		user, err := svc.Login(ctx, LoginInput{Email: "known@example.com", Password: "password1"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Login(ctx, LoginInput{Email: "known@example.com", Password: "nope"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("unknown account uses the same error", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "password1"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
	})
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	t.Parallel()

	stored := &models.User{ID: 1, Username: "writer", Bio: "old bio", Avatar: "old.png"}
	repo := emptyUserRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		cp := *stored
		return &cp, nil
	}
	repo.updateFn = func(_ context.Context, u *models.User) error {
		stored = u
		return nil
	}

	svc := NewUserService(repo)
	bio := "new bio"
	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "old.png", user.Avatar)
}
