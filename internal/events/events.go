// Package events - именованные точки расширения жизненного цикла сущностей.
package events

import (
	"context"
	"fmt"
	"sync"

	"cmsarticle/internal/models"
)

const (
	SectionPreDelete = "section@pre_delete"
	TagPreDelete     = "tag@pre_delete"
	ContentGenerate  = "content@generate"
	ContentView      = "content@view"
)

type Handler[T any] func(ctx context.Context, v T) error

type listener[T any] struct {
	owner string
	fn    Handler[T]
}

// Hook - список обработчиков одного события. Fire вызывает их по порядку
// регистрации и останавливается на первой ошибке.
type Hook[T any] struct {
	name      string
	mu        sync.RWMutex
	listeners []listener[T]
}

func NewHook[T any](name string) *Hook[T] { return &Hook[T]{name: name} }

func (h *Hook[T]) Name() string { return h.name }

// Listen регистрирует обработчик; owner попадает в текст ошибки.
func (h *Hook[T]) Listen(owner string, fn Handler[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, listener[T]{owner: owner, fn: fn})
}

func (h *Hook[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

func (h *Hook[T]) Fire(ctx context.Context, v T) error {
	h.mu.RLock()
	ls := make([]listener[T], len(h.listeners))
	copy(ls, h.listeners)
	h.mu.RUnlock()

	for _, l := range ls {
		if err := l.fn(ctx, v); err != nil {
			return fmt.Errorf("%s (%s): %w", h.name, l.owner, err)
		}
	}
	return nil
}

// Registry - все точки расширения, которыми пользуются сервисы.
type Registry struct {
	SectionPreDelete *Hook[*models.Section]
	TagPreDelete     *Hook[*models.Tag]
	ContentGenerate  *Hook[*models.Article]
	ContentView      *Hook[*models.Article]
}

func NewRegistry() *Registry {
	return &Registry{
		SectionPreDelete: NewHook[*models.Section](SectionPreDelete),
		TagPreDelete:     NewHook[*models.Tag](TagPreDelete),
		ContentGenerate:  NewHook[*models.Article](ContentGenerate),
		ContentView:      NewHook[*models.Article](ContentView),
	}
}
