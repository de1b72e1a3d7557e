package events

import (
	"context"
	"errors"
	"testing"

	"cmsarticle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHook_FireInOrderStopsOnError(t *testing.T) {
	h := NewHook[*models.Tag](TagPreDelete)
	var order []string
	veto := errors.New("used")

	h.Listen("first", func(_ context.Context, _ *models.Tag) error {
		order = append(order, "first")
		return nil
	})
	h.Listen("blog", func(_ context.Context, _ *models.Tag) error {
		order = append(order, "blog")
		return veto
	})
	h.Listen("last", func(_ context.Context, _ *models.Tag) error {
		order = append(order, "last")
		return nil
	})

	err := h.Fire(context.Background(), &models.Tag{ID: 1})
	require.ErrorIs(t, err, veto)
	assert.Equal(t, "tag@pre_delete (blog): used", err.Error())
	assert.Equal(t, []string{"first", "blog"}, order)
	assert.Equal(t, 3, h.Len())
}

func TestHook_NoListeners(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.ContentView.Fire(context.Background(), &models.Article{}))
	assert.Equal(t, ContentView, r.ContentView.Name())
	assert.Zero(t, r.SectionPreDelete.Len())
}

func TestHook_ForbidDeletionSurvivesWrapping(t *testing.T) {
	h := NewHook[*models.Section](SectionPreDelete)
	h.Listen("article", func(_ context.Context, s *models.Section) error {
		return &models.ForbidDeletionError{Message: "busy", EntityModel: "article", EntityID: 2}
	})

	err := h.Fire(context.Background(), &models.Section{ID: 5})
	assert.ErrorIs(t, err, models.ErrForbidDeletion)
	var fde *models.ForbidDeletionError
	require.ErrorAs(t, err, &fde)
	assert.Equal(t, int64(2), fde.EntityID)
}
