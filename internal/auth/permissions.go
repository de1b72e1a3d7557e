package auth

import (
	"fmt"
	"sort"
	"sync"
)

const (
	PermSectionModify = "section@modify"
	PermTagModify     = "tag@modify"
)

func PermSetStarred(model string) string     { return "article@set_starred." + model }
func PermSetPublishTime(model string) string { return "article@set_publish_time." + model }
func PermModify(model string) string         { return "content@modify." + model }
func PermDelete(model string) string         { return "content@delete." + model }

type Permission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// Registry - объявленные права. Повторное объявление - ошибка.
type Registry struct {
	mu    sync.RWMutex
	perms map[string]Permission
}

func NewRegistry() *Registry {
	return &Registry{perms: map[string]Permission{}}
}

func (r *Registry) Define(name, description, group string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.perms[name]; ok {
		return fmt.Errorf("permission %q is already defined", name)
	}
	r.perms[name] = Permission{Name: name, Description: description, Group: group}
	return nil
}

func (r *Registry) IsDefined(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.perms[name]
	return ok
}

func (r *Registry) All() []Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Permission, 0, len(r.perms))
	for _, p := range r.perms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Grants - права ролей из файла моделей.
type Grants map[string][]string

func (g Grants) For(role string) []string { return g[role] }
