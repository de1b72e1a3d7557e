package auth

import (
	"context"
	"errors"
	"testing"

	"cmsarticle/internal/reqctx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalPermissions(t *testing.T) {
	editor := NewPrincipal(3, "ed", "editor", []string{PermModify("article")})
	assert.True(t, editor.HasPermission("content@modify.article"))
	assert.False(t, editor.HasPermission(PermDelete("article")))
	assert.False(t, editor.IsAnonymous())

	assert.True(t, NewPrincipal(1, "root", RoleAdmin, nil).HasPermission(PermSetStarred("blog")))
	assert.True(t, System().HasPermission(PermTagModify))
	assert.False(t, System().IsAnonymous())
	assert.True(t, Anonymous().IsAnonymous())
	assert.False(t, Anonymous().HasPermission(PermModify("article")))

	var nilP *Principal
	assert.True(t, nilP.IsAnonymous())
	assert.False(t, nilP.HasPermission(PermTagModify))
}

func TestFromContext(t *testing.T) {
	assert.True(t, FromContext(context.Background()).IsAnonymous())

	ctx := WithPrincipal(context.Background(), NewPrincipal(8, "u", "author", nil))
	assert.Equal(t, int64(8), FromContext(ctx).ID)
	uid, ok := reqctx.GetUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(8), uid)
}

func TestRunAsSystemRestoresCaller(t *testing.T) {
	ctx := WithPrincipal(context.Background(), NewPrincipal(8, "u", "author", nil))

	err := RunAsSystem(ctx, func(inner context.Context) error {
		assert.True(t, FromContext(inner).System)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "u", FromContext(ctx).Login)

	boom := errors.New("boom")
	assert.ErrorIs(t, RunAsSystem(ctx, func(context.Context) error { return boom }), boom)

	assert.Panics(t, func() {
		_ = RunAsSystem(ctx, func(context.Context) error { panic("x") })
	})
	assert.False(t, FromContext(ctx).System)
}

func TestRegistryDefine(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Define(PermModify("blog"), "Modify blog", "content"))
	require.NoError(t, r.Define(PermDelete("blog"), "Delete blog", "content"))
	assert.Error(t, r.Define(PermModify("blog"), "again", "content"))

	assert.True(t, r.IsDefined("content@delete.blog"))
	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "content@delete.blog", all[0].Name)

	g := Grants{"editor": {PermModify("blog")}}
	assert.Equal(t, []string{"content@modify.blog"}, g.For("editor"))
	assert.Nil(t, g.For("guest"))
}
