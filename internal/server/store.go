package server

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/repositories"
)

// Store bundles the repositories for the configured driver. DB is nil for the memory driver.
type Store struct {
	DB       *gorm.DB
	Products repositories.ProductRepository
	Users    repositories.UserRepository
}

// OpenStore connects the repositories selected by cfg.Driver.
func OpenStore(cfg config.DatabaseConfig, log *zap.Logger) (*Store, error) {
	if cfg.Driver == config.DriverMemory {
		log.Info("using in-memory store")
		return &Store{
			Products: repositories.NewMemoryProductRepository(),
			Users:    repositories.NewMemoryUserRepository(),
		}, nil
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Store{
		DB:       db,
		Products: repositories.NewGORMProductRepository(db),
		Users:    repositories.NewGORMUserRepository(db),
	}, nil
}

// Close releases the SQL connection pool, if any.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return database.Close(s.DB)
}
