package repository

import "context"

const (
	HistoryKey     = "history"
	CurrentStepKey = "currentStep"
)

// KeyValueStore is the durable key/value capability the history is persisted to.
type KeyValueStore interface {
	// Get returns found=false without an error when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// BatchStore is implemented by stores able to write several keys atomically.
type BatchStore interface {
	KeyValueStore
	SetMany(ctx context.Context, values map[string][]byte) error
}
