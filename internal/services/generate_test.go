package services

import (
	"testing"

	"cmsarticle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_FailsWithoutSections(t *testing.T) {
	e := newTestEnv(t, false, articleModel())
	e.tag(t, "en", "Go")

	out, err := e.svc.Generate(adminCtx(), "article", "en", 3)
	assert.ErrorIs(t, err, models.ErrNoSections)
	assert.Empty(t, out)
	assert.Empty(t, e.content.items, "ничего не должно сохраниться")
}

func TestGenerate_SectionsOfOtherLanguageDoNotCount(t *testing.T) {
	e := newTestEnv(t, false, articleModel())
	e.section(t, "ru", "Новости")

	_, err := e.svc.Generate(adminCtx(), "article", "en", 1)
	assert.ErrorIs(t, err, models.ErrNoSections)
}

func TestGenerate_FillsFields(t *testing.T) {
	e := newTestEnv(t, false, articleModel())
	e.section(t, "en", "News")
	e.section(t, "en", "Sport")
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		e.tag(t, "en", title)
	}

	out, err := e.svc.Generate(adminCtx(), "article", "en", 4)
	require.NoError(t, err)
	require.Len(t, out, 4)

	for _, a := range out {
		require.NotNil(t, a.SectionID)
		assert.LessOrEqual(t, len(a.TagIDs), 5)
		assert.NotEmpty(t, a.TagIDs)
		assert.GreaterOrEqual(t, a.ViewsCount, 0)
		assert.Less(t, a.ViewsCount, 1000)
		assert.GreaterOrEqual(t, a.CommentsCount, 0)
		assert.Less(t, a.CommentsCount, 100)
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Images)
		require.NotNil(t, a.RouteAlias)
		assert.Equal(t, "en", a.Language)
	}

	// веса тегов совпадают с числом статей, которые на них ссылаются
	for id, tag := range e.tags.items {
		n := 0
		for _, a := range e.content.items {
			for _, tid := range a.TagIDs {
				if tid == id {
					n++
				}
			}
		}
		assert.Equal(t, n, tag.Weight, "тег %d", id)
	}
}

func TestGenerate_UnknownLanguage(t *testing.T) {
	e := newTestEnv(t, false, blogModel())

	_, err := e.svc.Generate(adminCtx(), "blog", "de", 1)
	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}
