package review

import (
	"context"
	"sync"
	"time"
)

type progressKey struct {
	date    string
	storage int64
}

type RepositoryStub struct {
	mu        sync.RWMutex
	records   map[progressKey]DailyProgress
	upsertErr error
	readErr   error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		records: make(map[progressKey]DailyProgress),
	}
}

func (r *RepositoryStub) Upsert(ctx context.Context, progress DailyProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.upsertErr != nil {
		return r.upsertErr
	}
	key := progressKey{progress.Date.Format(dateFormat), progress.Scope.StorageID()}
	r.records[key] = progress
	return nil
}

func (r *RepositoryStub) ReadRange(ctx context.Context, startDate time.Time, endDate time.Time, scope DeckScope) ([]DailyProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.readErr != nil {
		return nil, r.readErr
	}

	var records []DailyProgress
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		key := progressKey{date.Format(dateFormat), scope.StorageID()}
		if record, ok := r.records[key]; ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *RepositoryStub) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[progressKey]DailyProgress)
	return nil
}

func (r *RepositoryStub) SetUpsertError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertErr = err
}

func (r *RepositoryStub) SetReadError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readErr = err
}

func (r *RepositoryStub) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[progressKey]DailyProgress)
	r.upsertErr = nil
	r.readErr = nil
}
