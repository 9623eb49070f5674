package documents

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-composer/internal/identity"
)

// MemoryRepository keeps records in process.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryRepository) Get(_ context.Context, key string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[key]
	if !ok {
		return nil, notFound(key)
	}
	return cloneRecord(record), nil
}

func (m *MemoryRepository) Upsert(_ context.Context, record *Record) (*Record, error) {
	if record == nil || strings.TrimSpace(record.Key) == "" {
		return nil, ErrPageKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	stored := cloneRecord(record)
	if existing, ok := m.records[record.Key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
		stored.Revision = existing.Revision + 1
	} else {
		stored.ID = identity.DocumentUUID(record.Key)
		stored.CreatedAt = now
		stored.Revision = 1
	}
	stored.UpdatedAt = now
	m.records[record.Key] = stored
	return cloneRecord(stored), nil
}

func (m *MemoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[key]; !ok {
		return notFound(key)
	}
	delete(m.records, key)
	return nil
}

func (m *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Record, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, cloneRecord(record))
	}
	slices.SortFunc(out, func(a, b *Record) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}
