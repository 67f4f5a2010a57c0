package inmemory

import (
	"context"
	"sync"
	"time"

	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/pkg/cache"
)

type entry struct {
	expires time.Time
}

// ResetStore keeps verified markers in a map with the same take-once semantics as Redis.
type ResetStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

var _ repositories.ResetStore = (*ResetStore)(nil)

func NewResetStore() *ResetStore {
	return &ResetStore{entries: make(map[string]entry)}
}

func (s *ResetStore) MarkVerified(_ context.Context, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[cache.ResetVerifiedKey(email)] = entry{expires: time.Now().Add(ttl)}
	return nil
}

func (s *ResetStore) ConsumeVerified(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cache.ResetVerifiedKey(email)
	e, ok := s.entries[key]
	delete(s.entries, key)
	return ok && time.Now().Before(e.expires), nil
}

// ProfileCache is a no-expiry map cache; Invalidate removes entries.
type ProfileCache struct {
	mu    sync.Mutex
	users map[string]models.User
}

var _ repositories.ProfileCache = (*ProfileCache)(nil)

func NewProfileCache() *ProfileCache {
	return &ProfileCache{users: make(map[string]models.User)}
}

func (p *ProfileCache) Get(_ context.Context, userID string) (*models.User, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return nil, false, nil
	}
	return clone(u), true, nil
}

func (p *ProfileCache) Set(_ context.Context, user *models.User, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[user.ID.Hex()] = *clone(*user)
	return nil
}

func (p *ProfileCache) Invalidate(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.users, userID)
	return nil
}

func (p *ProfileCache) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.users)
}
