package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type HistoryRepository interface {
	LoadHistory(ctx context.Context) (entity.History, bool, error)
	LoadStep(ctx context.Context) (int, bool, error)

	SaveHistory(ctx context.Context, history entity.History) error
	SaveStep(ctx context.Context, step int) error
	SaveState(ctx context.Context, history entity.History, step int) error
}

type kvHistory struct {
	store KeyValueStore
}

func NewHistoryRepository(store KeyValueStore) HistoryRepository {
	return &kvHistory{
		store: store,
	}
}

func (that *kvHistory) LoadHistory(ctx context.Context) (entity.History, bool, error) {
	response, found, err := that.store.Get(ctx, HistoryKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get history: %w", err)
	}

	if !found {
		return nil, false, nil
	}

	var history entity.History
	if err = json.Unmarshal(response, &history); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return history, true, nil
}

func (that *kvHistory) LoadStep(ctx context.Context) (int, bool, error) {
	response, found, err := that.store.Get(ctx, CurrentStepKey)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get current step: %w", err)
	}

	if !found {
		return 0, false, nil
	}

	var step int
	if err = json.Unmarshal(response, &step); err != nil {
		return 0, false, fmt.Errorf("failed to unmarshal current step: %w", err)
	}

	return step, true, nil
}

func (that *kvHistory) SaveHistory(ctx context.Context, history entity.History) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err = that.store.Set(ctx, HistoryKey, historyJSON); err != nil {
		return fmt.Errorf("failed to set history: %w", err)
	}

	return nil
}

func (that *kvHistory) SaveStep(ctx context.Context, step int) error {
	stepJSON, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("failed to marshal current step: %w", err)
	}

	if err = that.store.Set(ctx, CurrentStepKey, stepJSON); err != nil {
		return fmt.Errorf("failed to set current step: %w", err)
	}

	return nil
}

// SaveState writes history and step in one batch when the store supports it,
// otherwise history first and then step.
func (that *kvHistory) SaveState(ctx context.Context, history entity.History, step int) error {
	batch, ok := that.store.(BatchStore)
	if !ok {
		if err := that.SaveHistory(ctx, history); err != nil {
			return err
		}

		return that.SaveStep(ctx, step)
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	stepJSON, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("failed to marshal current step: %w", err)
	}

	err = batch.SetMany(ctx, map[string][]byte{
		HistoryKey:     historyJSON,
		CurrentStepKey: stepJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to set history state: %w", err)
	}

	return nil
}
