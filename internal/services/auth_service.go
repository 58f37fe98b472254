package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"productapi/internal/models"
	"productapi/internal/repositories"
)

// Claim names carried by issued tokens.
const (
	ClaimEmail   = "email"
	ClaimSubject = "sub"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// NormalizeEmail trims and lower-cases an address so that it can be compared for ownership.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser hashes the password and saves a new account.
func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    NormalizeEmail(email),
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, user.Email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// LoginUser authenticates a user and returns a signed token and its expiry.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			s.log.Error("user lookup failed", zap.Error(err))
		}
		// Do not reveal whether the account exists.
		return "", time.Time{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		ClaimSubject: user.ID,
		ClaimEmail:   user.Email,
		"jti":        uuid.New().String(),
		"exp":        expiresAt.Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// GetUser loads the account a token's subject refers to. It returns ErrUserNotFound once the
// account is gone.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// EmailFromClaims returns the email claim, or "" when it is absent or not a string.
func EmailFromClaims(claims jwt.MapClaims) string {
	email, _ := claims[ClaimEmail].(string)
	return email
}
