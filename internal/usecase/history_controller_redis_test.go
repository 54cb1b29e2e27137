package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

func TestHistoryController_Redis(t *testing.T) {
	ctx, st := suite.New(t)

	repo := repository.NewHistoryRepository(st.Storage)

	// Given: a game played, rewound and branched against redis
	first := NewHistoryController(st.Logger, repo)
	require.NoError(t, first.Initialize(ctx))
	play(ctx, t, first, 0, 3, 1, 4)
	require.NoError(t, first.JumpToStep(ctx, 2))
	require.NoError(t, first.SelectSquare(ctx, 8))

	// When: a second controller restores from the same redis
	second := NewHistoryController(st.Logger, repo)
	require.NoError(t, second.Initialize(ctx))

	// Then: it sees the branched timeline at its latest step
	assert.Equal(t, first.History(), second.History())
	assert.Equal(t, 3, second.Step())
	assert.Equal(t, 4, second.History().Len())
}
