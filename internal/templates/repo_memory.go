package templates

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo starts pre-seeded with the built-in catalog, matching what
// the migration seeds in Postgres.
type MemoryRepo struct {
	mu        sync.RWMutex
	templates map[string]Template
}

func NewMemoryRepo() *MemoryRepo {
	m := &MemoryRepo{templates: map[string]Template{}}
	for _, t := range Defaults() {
		t.CreatedAt = time.Now().UTC()
		m.templates[t.ID] = t
	}
	return m
}

func (m *MemoryRepo) List(ctx context.Context, activeOnly bool) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Template
	for _, t := range m.templates {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return Template{}, ErrNotFound
	}
	return t, nil
}

func (m *MemoryRepo) GetByName(ctx context.Context, name string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, ErrNotFound
}

func (m *MemoryRepo) Create(ctx context.Context, t Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t.CreatedAt = time.Now().UTC()
	m.templates[t.ID] = t
	return nil
}

func (m *MemoryRepo) Update(ctx context.Context, t Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.templates[t.ID]
	if !ok {
		return ErrNotFound
	}
	stored.DisplayName = t.DisplayName
	stored.Description = t.Description
	stored.IsPremium = t.IsPremium
	stored.IsActive = t.IsActive
	m.templates[t.ID] = stored
	return nil
}

func (m *MemoryRepo) IncrementUsage(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.templates {
		if t.Name == name {
			t.UsageCount++
			m.templates[id] = t
			return nil
		}
	}
	return ErrNotFound
}
