package services

import (
	"context"
	"testing"
	"time"

	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacentEntities(t *testing.T) {
	e := newTestEnv(t, false, blogModel())
	base := time.Now().Add(-10 * time.Hour).Truncate(time.Second).UTC()

	mk := func(ctx context.Context, title string, at time.Time) *models.Article {
		req := saveReq("en", title)
		req.PublishTime = &at
		return e.create(t, ctx, "blog", req)
	}
	a1 := mk(adminCtxAs(1), "First", base)
	a2 := mk(adminCtxAs(2), "Second", base.Add(time.Hour))
	a3 := mk(adminCtxAs(1), "Third", base.Add(2*time.Hour))
	a4 := mk(adminCtxAs(1), "Fourth", base.Add(3*time.Hour))

	ctx := context.Background()
	q := repository.ContentQuery{}

	next, err := e.svc.GetNextEntity(ctx, a1, true, q)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, a3.ID, next.ID)

	next, err = e.svc.GetNextEntity(ctx, a1, false, q)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, a2.ID, next.ID)

	prev, err := e.svc.GetPreviousEntity(ctx, a4, true, q)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, a3.ID, prev.ID)

	prev, err = e.svc.GetPreviousEntity(ctx, a3, true, q)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, a1.ID, prev.ID)

	none, err := e.svc.GetNextEntity(ctx, a4, true, q)
	require.NoError(t, err)
	assert.Nil(t, none)

	none, err = e.svc.GetPreviousEntity(ctx, a1, false, q)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAdjacentEntities_RespectsConstraints(t *testing.T) {
	e := newTestEnv(t, false, blogModel())
	base := time.Now().Add(-5 * time.Hour).Truncate(time.Second).UTC()

	mk := func(title, status string, at time.Time) *models.Article {
		req := saveReq("en", title)
		req.PublishTime = &at
		req.Status = status
		return e.create(t, adminCtx(), "blog", req)
	}
	a1 := mk("One", models.StatusPublished, base)
	mk("Draft", models.StatusWaiting, base.Add(time.Hour))
	a3 := mk("Three", models.StatusPublished, base.Add(2*time.Hour))

	next, err := e.svc.GetNextEntity(context.Background(), a1, false, repository.ContentQuery{})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, a3.ID, next.ID, "черновик пропускается")
	require.NotNil(t, next.RouteAlias)
	assert.Equal(t, "/blog/three", next.RouteAlias.Alias)

	next, err = e.svc.GetNextEntity(context.Background(), a1, false, repository.ContentQuery{AnyStatus: true})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "Draft", next.Title)
}
