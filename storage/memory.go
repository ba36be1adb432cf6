package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/awantoch/procmap/utils"
)

// MemoryStorage implements Storage in process memory, mainly for tests and
// one-shot CLI runs.
type MemoryStorage struct {
	mu     sync.RWMutex
	builds map[uuid.UUID]*Build
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{builds: map[uuid.UUID]*Build{}}
}

func (s *MemoryStorage) SaveBuild(ctx context.Context, b *Build) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.builds[b.ID] = &cp
	return nil
}

func (s *MemoryStorage) GetBuild(ctx context.Context, id uuid.UUID) (*Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.builds[id]
	if !ok {
		return nil, utils.Errorf("build %s not found", id)
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStorage) ListBuilds(ctx context.Context, processName string) ([]*Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Build
	for _, b := range s.builds {
		if processName != "" && b.ProcessName != processName {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *MemoryStorage) Close() error { return nil }
