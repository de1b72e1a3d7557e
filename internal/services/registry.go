package services

import (
	"fmt"
	"sync"

	"cmsarticle/internal/models"
)

// ModelRegistry - зарегистрированные модели контента в порядке регистрации.
type ModelRegistry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]models.ContentModel
}

func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{byName: map[string]models.ContentModel{}}
}

func (r *ModelRegistry) Add(m models.ContentModel) error {
	if !models.ValidModelName(m.Name) {
		return fmt.Errorf("invalid model name %q", m.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[m.Name]; ok {
		return fmt.Errorf("model %q is already registered", m.Name)
	}
	r.byName[m.Name] = m
	r.order = append(r.order, m.Name)
	return nil
}

func (r *ModelRegistry) Get(name string) (models.ContentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	if !ok {
		return models.ContentModel{}, fmt.Errorf("%w: %s", models.ErrUnknownModel, name)
	}
	return m, nil
}

func (r *ModelRegistry) All() []models.ContentModel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ContentModel, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
