package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour, zap.NewNop())
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()

	// Successful registration stores a normalised email and a bcrypt hash
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "test@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	user, err := authService.RegisterUser(ctx, "  Test@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("failed to create user: %w", repositories.ErrConstraintViolation)).Once()
	_, err = authService.RegisterUser(ctx, "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	assert.Contains(t, err.Error(), "test@example.com")

	// Store failure
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("database error")).Once()
	_, err = authService.RegisterUser(ctx, "other@example.com", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
	token, expiresAt, err := authService.LoginUser(ctx, "TEST@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, user.Email, claims["email"])
	assert.NotEmpty(t, claims["jti"])

	// Wrong password
	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
	_, _, err = authService.LoginUser(ctx, "test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user gets the same answer
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	_, _, err = authService.LoginUser(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	sign := func(claims jwt.MapClaims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	// Valid token
	claims, err := authService.ValidateToken(sign(jwt.MapClaims{
		"sub":   "user-123",
		"email": "test@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", services.EmailFromClaims(claims))

	// Garbage
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Wrong secret
	_, err = authService.ValidateToken(sign(jwt.MapClaims{"email": "test@example.com"}, "other-secret"))
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Expired
	_, err = authService.ValidateToken(sign(jwt.MapClaims{
		"email": "test@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}, testJWTSecret))
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestEmailFromClaims(t *testing.T) {
	assert.Equal(t, "a@x.com", services.EmailFromClaims(jwt.MapClaims{"email": "a@x.com"}))
	assert.Equal(t, "", services.EmailFromClaims(jwt.MapClaims{"sub": "1"}))
	assert.Equal(t, "", services.EmailFromClaims(jwt.MapClaims{"email": 42}))
}

func TestAuthService_GetUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Email: "test@example.com"}
	mockRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil).Once()
	mockRepo.On("GetByID", mock.Anything, "ghost").Return(nil, repositories.ErrUserNotFound).Once()

	got, err := authService.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = authService.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	// An empty subject never reaches the repository.
	_, err = authService.GetUser(ctx, "")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	mockRepo.AssertExpectations(t)
}
