package main

import (
	"fmt"
	"log/slog"

	"github.com/fkhayef/popbarter/internal/barter"
	"github.com/fkhayef/popbarter/internal/config"
	"github.com/fkhayef/popbarter/internal/database"
	"github.com/fkhayef/popbarter/internal/message"
	"github.com/fkhayef/popbarter/internal/offer"
	"github.com/fkhayef/popbarter/internal/user"
)

type repositories struct {
	barters  barter.Repository
	offers   offer.Repository
	messages message.Repository
	profiles user.Repository
}

// openStorage builds every feature repository on the configured driver.
// The returned func releases the underlying connection.
func openStorage(cfg *config.Config, logger *slog.Logger) (*repositories, func(), error) {
	var (
		db  *database.DB
		err error
	)
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return &repositories{
			barters:  barter.NewMemoryRepository(),
			offers:   offer.NewMemoryRepository(),
			messages: message.NewMemoryRepository(),
			profiles: user.NewMemoryRepository(),
		}, func() {}, nil
	case config.DriverSQLite:
		db, err = database.NewSQLiteConnection(cfg.SQLitePath)
	default:
		db, err = database.NewPostgresConnection(cfg.DatabaseURL)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.StorageDriver, err)
	}

	logger.Info("connected to database", "driver", cfg.StorageDriver)

	return &repositories{
		barters:  barter.NewRepository(db),
		offers:   offer.NewRepository(db),
		messages: message.NewRepository(db),
		profiles: user.NewRepository(db),
	}, func() { db.Close() }, nil
}
