package repository

import "context"

// Record is a notification entry that can live in a LogStore.
type Record interface {
	RecordID() string
	OwnerID() int64
}

// LogStore is the per-channel notification log. Implementations return
// copies; mutating a returned record never changes stored state.
type LogStore[T Record] interface {
	Append(ctx context.Context, record T) error
	FindByUser(ctx context.Context, userID int64) ([]T, error)
	FindByID(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, mutate func(*T)) error
	// UpdateByUser applies mutate to every record owned by userID and
	// returns how many calls reported a change.
	UpdateByUser(ctx context.Context, userID int64, mutate func(*T) bool) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
}
