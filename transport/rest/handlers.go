package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

// PersistenceErrorHeader is set when the move was applied but could not be stored.
const PersistenceErrorHeader = "X-Persistence-Error"

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	that.mu.Lock()
	projection := that.controller.Projection()
	that.mu.Unlock()

	that.writeJSON(w, r, projection)
}

func (that *Server) handleSelectSquare(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "Invalid square index", http.StatusBadRequest)
		return
	}

	that.apply(w, r, func(ctx context.Context) error {
		return that.controller.SelectSquare(ctx, index)
	})
}

func (that *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	that.apply(w, r, that.controller.Restart)
}

func (that *Server) handleJumpToStep(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.PathValue("step"))
	if err != nil {
		http.Error(w, "Invalid step", http.StatusBadRequest)
		return
	}

	that.apply(w, r, func(ctx context.Context) error {
		return that.controller.JumpToStep(ctx, step)
	})
}

// apply runs one intent and answers with the resulting projection.
func (that *Server) apply(w http.ResponseWriter, r *http.Request, intent func(ctx context.Context) error) {
	log := loggerFrom(r.Context(), that.logger)

	that.mu.Lock()
	err := intent(r.Context())
	projection := that.controller.Projection()
	that.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrPersistence):
		log.Warn("state applied but not persisted", "error", err)
		w.Header().Set(PersistenceErrorHeader, err.Error())
	default:
		log.Error("failed to apply intent", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, r, projection)
}

func (that *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFrom(r.Context(), that.logger).Error("failed to write response", "error", err)
	}
}
