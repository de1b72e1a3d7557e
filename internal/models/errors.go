package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound       = errors.New("не найдено")
	ErrForbidden      = errors.New("доступ запрещён")
	ErrUnknownModel   = errors.New("неизвестная модель контента")
	ErrForbidDeletion = errors.New("удаление запрещено")

	// Ошибки конфигурации: не повторяются и считаются фатальными.
	ErrEmptyTitle  = errors.New("cannot generate route alias because title is empty")
	ErrNoSections  = errors.New("no sections found")
	ErrNoLanguages = errors.New("no languages configured")
)

// ForbidDeletionError - попытка удалить раздел/тег, на который ссылается контент.
// Message предназначено для показа пользователю.
type ForbidDeletionError struct {
	Message     string
	EntityModel string
	EntityID    int64
}

func (e *ForbidDeletionError) Error() string { return e.Message }

func (e *ForbidDeletionError) Is(target error) bool { return target == ErrForbidDeletion }

// ValidationError - ошибки валидации по полям.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
