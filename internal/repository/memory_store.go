package repository

import (
	"context"
	"sync"

	"github.com/kursadbilgin/notify-api/internal/domain"
)

var (
	_ LogStore[domain.EmailNotification] = (*MemoryStore[domain.EmailNotification])(nil)
	_ LogStore[domain.SMSNotification]   = (*MemoryStore[domain.SMSNotification])(nil)
	_ LogStore[domain.InAppNotification] = (*MemoryStore[domain.InAppNotification])(nil)
)

// MemoryStore is a process-lifetime, insertion-ordered LogStore. A single
// mutex guards every read and mutation.
type MemoryStore[T Record] struct {
	mu      sync.RWMutex
	records []T
}

func NewMemoryStore[T Record]() *MemoryStore[T] {
	return &MemoryStore[T]{}
}

func (s *MemoryStore[T]) Append(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	return nil
}

func (s *MemoryStore[T]) FindByUser(_ context.Context, userID int64) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, record := range s.records {
		if record.OwnerID() == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *MemoryStore[T]) FindByID(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.records[i], nil
	}

	var zero T
	return zero, domain.ErrNotFound
}

func (s *MemoryStore[T]) Update(_ context.Context, id string, mutate func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}

	updated := s.records[i]
	mutate(&updated)
	s.records[i] = updated
	return nil
}

func (s *MemoryStore[T]) UpdateByUser(_ context.Context, userID int64, mutate func(*T) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.records {
		if s.records[i].OwnerID() != userID {
			continue
		}

		updated := s.records[i]
		if mutate(&updated) {
			s.records[i] = updated
			changed++
		}
	}
	return changed, nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	s.records = append(s.records[:i], s.records[i+1:]...)
	return true, nil
}

// Len reports the number of stored records.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

func (s *MemoryStore[T]) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].RecordID() == id {
			return i
		}
	}
	return -1
}
