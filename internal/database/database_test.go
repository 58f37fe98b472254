package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOpen_SQLiteAndSeed(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:seed_test?mode=memory&cache=shared",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	ctx := context.Background()
	require.NoError(t, database.Ping(ctx, db))

	repo := repositories.NewGORMProductRepository(db)
	require.NoError(t, database.SeedProducts(ctx, repo, zap.NewNop()))
	// Seeding twice leaves the existing rows alone.
	require.NoError(t, database.SeedProducts(ctx, repo, zap.NewNop()))

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "manufacturer1@example.com", products[0].ManufactureEmail)
	assert.False(t, products[1].IsAvailable)
}

func TestOpen_RejectsMemoryDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: config.DriverMemory}, zap.NewNop())
	assert.Error(t, err)
}

func TestOpen_MigrationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.db")

	// A view named like the products table makes CREATE TABLE fail.
	raw, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, raw.Exec("CREATE VIEW products AS SELECT 1 AS id").Error)
	require.NoError(t, database.Close(raw))

	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: path}, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "auto-migrate")
}

func TestOpen_LogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:zap_log_test?mode=memory&cache=shared",
	}, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()
	require.NoError(t, database.SeedProducts(ctx, repo, zap.NewNop()))

	// A unique violation and a missing row are ordinary outcomes, not warnings.
	dup := &models.Product{
		Name:             "Dup",
		ProduceDate:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		ManufacturePhone: "1234567890",
		ManufactureEmail: "someone@example.com",
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), repositories.ErrConstraintViolation)
	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.NotZero(t, logs.FilterMessage("gorm.query").Len())
}
