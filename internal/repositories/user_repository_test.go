package repositories_test

import (
	"context"
	"testing"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	factories := []struct {
		name string
		new  func(t *testing.T) repositories.UserRepository
	}{
		{"gorm", func(t *testing.T) repositories.UserRepository {
			return repositories.NewGORMUserRepository(newTestDB(t))
		}},
		{"memory", func(t *testing.T) repositories.UserRepository {
			return repositories.NewMemoryUserRepository()
		}},
	}

	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			repo := f.new(t)
			ctx := context.Background()

			user := &models.User{Email: "a@x.com", Password: "hash"}
			require.NoError(t, repo.Create(ctx, user))
			assert.NotEmpty(t, user.ID)

			byEmail, err := repo.GetByEmail(ctx, "a@x.com")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byEmail.ID)

			byID, err := repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", byID.Email)

			err = repo.Create(ctx, &models.User{Email: "a@x.com", Password: "other"})
			assert.ErrorIs(t, err, repositories.ErrConstraintViolation)

			_, err = repo.GetByEmail(ctx, "nobody@x.com")
			assert.ErrorIs(t, err, repositories.ErrUserNotFound)
			_, err = repo.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, repositories.ErrUserNotFound)
		})
	}
}
