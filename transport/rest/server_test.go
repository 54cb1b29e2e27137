package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

var errRedisDown = errors.New("redis down")

// flakyStore reads from memory but refuses every write once broken is set.
type flakyStore struct {
	*storage.MemoryStorage
	broken bool
}

func (that *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if that.broken {
		return errRedisDown
	}
	return that.MemoryStorage.Set(ctx, key, value)
}

func (that *flakyStore) SetMany(ctx context.Context, values map[string][]byte) error {
	if that.broken {
		return errRedisDown
	}
	return that.MemoryStorage.SetMany(ctx, values)
}

func newTestServer(t *testing.T, store repository.KeyValueStore) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	controller := usecase.NewHistoryController(logger, repository.NewHistoryRepository(store))
	require.NoError(t, controller.Initialize(context.Background()))

	return New(logger, controller).Handler()
}

func do(t *testing.T, handler http.Handler, method, path string) (*httptest.ResponseRecorder, usecase.Projection) {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var projection usecase.Projection
	if rec.Code == http.StatusOK && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projection))
	}

	return rec, projection
}

func TestServer_Ping(t *testing.T) {
	handler := newTestServer(t, storage.NewMemoryStorage())

	rec, _ := do(t, handler, http.MethodGet, "/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_Game(t *testing.T) {
	t.Run("Fresh game projection", func(t *testing.T) {
		handler := newTestServer(t, storage.NewMemoryStorage())

		// When: reading the game
		rec, projection := do(t, handler, http.MethodGet, "/game")

		// Then: an empty board is returned
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, entity.EmptyBoard(), projection.Squares)
		assert.Equal(t, "Next player: X", projection.Status)
		require.Len(t, projection.History, 1)
		assert.True(t, projection.History[0].Current)
	})

	t.Run("Winning game through the API", func(t *testing.T) {
		handler := newTestServer(t, storage.NewMemoryStorage())

		// When: playing 0, 3, 1, 4, 2
		var projection usecase.Projection
		for _, path := range []string{"/game/squares/0", "/game/squares/3", "/game/squares/1", "/game/squares/4", "/game/squares/2"} {
			var rec *httptest.ResponseRecorder
			rec, projection = do(t, handler, http.MethodPost, path)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		// Then: X wins
		assert.Equal(t, entity.PlayerX, projection.Winner)
		assert.Equal(t, "Winner: X", projection.Status)
		assert.Equal(t, 5, projection.CurrentStep)
	})

	t.Run("Jump and restart", func(t *testing.T) {
		handler := newTestServer(t, storage.NewMemoryStorage())
		do(t, handler, http.MethodPost, "/game/squares/4")
		do(t, handler, http.MethodPost, "/game/squares/0")

		// When: jumping to move 1
		_, projection := do(t, handler, http.MethodPost, "/game/steps/1")

		// Then: the board shows only the first move
		assert.Equal(t, 1, projection.CurrentStep)
		assert.Equal(t, entity.Board{4: entity.PlayerX}, projection.Squares)
		assert.Len(t, projection.History, 3)

		// When: restarting
		_, projection = do(t, handler, http.MethodPost, "/game/restart")

		// Then: the history collapses to the start
		assert.Equal(t, 0, projection.CurrentStep)
		assert.Len(t, projection.History, 1)
	})

	t.Run("Illegal intents return the unchanged projection", func(t *testing.T) {
		handler := newTestServer(t, storage.NewMemoryStorage())
		do(t, handler, http.MethodPost, "/game/squares/4")

		rec, projection := do(t, handler, http.MethodPost, "/game/squares/4")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, projection.CurrentStep)

		rec, projection = do(t, handler, http.MethodPost, "/game/steps/7")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, projection.CurrentStep)
	})

	t.Run("Non numeric path values", func(t *testing.T) {
		handler := newTestServer(t, storage.NewMemoryStorage())

		rec, _ := do(t, handler, http.MethodPost, "/game/squares/centre")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec, _ = do(t, handler, http.MethodPost, "/game/steps/first")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Persistence failure is flagged but not fatal", func(t *testing.T) {
		// Given: a store that breaks after initialization
		store := &flakyStore{MemoryStorage: storage.NewMemoryStorage()}
		handler := newTestServer(t, store)
		store.broken = true

		// When: playing a move
		rec, projection := do(t, handler, http.MethodPost, "/game/squares/4")

		// Then: the move is applied and the failure is reported in a header
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(PersistenceErrorHeader))
		assert.Equal(t, entity.PlayerX, projection.Squares[4])
	})
}

func TestRequestID(t *testing.T) {
	handler := newTestServer(t, storage.NewMemoryStorage())

	t.Run("Generated when missing", func(t *testing.T) {
		rec, _ := do(t, handler, http.MethodGet, "/ping")

		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("Echoed when valid", func(t *testing.T) {
		id := uuid.NewString()

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})
}
