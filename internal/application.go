package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
)

type closableStore interface {
	repository.KeyValueStore
	io.Closer
}

// RunApp - runs the HTTP application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	controller, closeStore, err := NewController(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	if err = rest.New(logger, controller).Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// NewController - opens the configured storage and restores the game from it.
// A persistence failure during restore is logged and the game starts fresh.
func NewController(ctx context.Context, logger *slog.Logger, conf *config.Config) (*usecase.HistoryController, func(), error) {
	log := logger.With("component", "app")

	store, err := OpenStorage(ctx, conf)
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}

	controller := usecase.NewHistoryController(logger, repository.NewHistoryRepository(store))
	if err = controller.Initialize(ctx); err != nil {
		if !errors.Is(err, apperror.ErrPersistence) {
			closeStore()
			return nil, nil, fmt.Errorf("could not initialize game: %w", err)
		}

		log.Error("game history could not be restored", "error", err)
	}

	return controller, closeStore, nil
}

// OpenStorage - connects to the backend named by the config.
func OpenStorage(ctx context.Context, conf *config.Config) (closableStore, error) {
	switch conf.Storage.Driver {
	case config.DriverMemory:
		return storage.NewMemoryStorage(), nil
	case config.DriverRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Storage.KeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return redisStorage, nil
	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return sqliteStorage, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, conf.Storage.Driver)
	}
}

// NewLogger - builds the JSON logger for the configured level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
