package services

import (
	"context"
	"testing"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_NoDriver(t *testing.T) {
	s := NewCommentService(nil)
	assert.False(t, s.Enabled())

	assert.ErrorIs(t, s.DeleteThread(context.Background(), "/a"), ErrNoCommentDriver)
	_, err := s.CountThread(context.Background(), "/a")
	assert.ErrorIs(t, err, ErrNoCommentDriver)
}

func TestCommentService_DeleteThreadPermission(t *testing.T) {
	calls := &[]string{}
	d := &fakeCommentDriver{counts: map[string]int{"/a": 3}, calls: calls}
	s := NewCommentService(d)

	err := s.DeleteThread(userCtx(1), "/a")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Empty(t, d.deleted)

	err = auth.RunAsSystem(context.Background(), func(ctx context.Context) error {
		return s.DeleteThread(ctx, "/a")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/a"}, d.deleted)

	n, err := s.CountThread(context.Background(), "/a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
