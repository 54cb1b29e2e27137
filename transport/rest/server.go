package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameController interface {
	SelectSquare(ctx context.Context, cell int) error
	Restart(ctx context.Context) error
	JumpToStep(ctx context.Context, step int) error
	Projection() usecase.Projection
}

type Server struct {
	logger *slog.Logger

	// mu serializes every call into the controller.
	mu         sync.Mutex
	controller gameController
}

func New(logger *slog.Logger, controller gameController) *Server {
	return &Server{
		logger:     logger.With("component", "rest"),
		controller: controller,
	}
}

// Handler - builds the routes of the game API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /game", that.handleGetGame)
	mux.HandleFunc("POST /game/squares/{index}", that.handleSelectSquare)
	mux.HandleFunc("POST /game/restart", that.handleRestart)
	mux.HandleFunc("POST /game/steps/{step}", that.handleJumpToStep)

	return requestID(that.logger, mux)
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}

		return nil
	}
}
