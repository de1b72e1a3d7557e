package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	fs, err := ParseFields([]string{" Tags", "section"})
	require.NoError(t, err)
	assert.True(t, fs.Has(FieldTags|FieldSection))
	assert.False(t, fs.Has(FieldStarred))
	assert.Equal(t, []string{"section", "tags"}, fs.Names())

	_, err = ParseFields([]string{"colour"})
	assert.Error(t, err)
	assert.Len(t, AllFields.Names(), 10)
}

func TestValidModelName(t *testing.T) {
	assert.True(t, ValidModelName("article"))
	assert.True(t, ValidModelName("news_2"))
	assert.False(t, ValidModelName(""))
	assert.False(t, ValidModelName("Blog"))
	assert.False(t, ValidModelName("a'b"))
}

func TestArticleLocalizations(t *testing.T) {
	a := &Article{}
	_, ok := a.Localization("ru")
	assert.False(t, ok)

	a.SetLocalization("ru", 5)
	id, ok := a.Localization("ru")
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	a.SetLocalization("ru", 0)
	_, ok = a.Localization("ru")
	assert.False(t, ok)
	assert.Empty(t, a.Localizations)
}

func TestSortedTagsAndString(t *testing.T) {
	a := &Article{Tags: []*Tag{
		{Title: "b", Weight: 1},
		{Title: "a", Weight: 1},
		{Title: "z", Weight: 7},
	}}
	assert.Equal(t, "z,a,b", a.TagsString())
	assert.Equal(t, "b", a.Tags[0].Title)
}

func TestErrors(t *testing.T) {
	ve := NewValidationError()
	assert.True(t, ve.Empty())
	ve.Add("title", "обязательное поле")
	ve.Add("title", "другое")
	ve.Add("body", "пусто")
	assert.Equal(t, "validation failed: body: пусто; title: обязательное поле", ve.Error())

	var err error = &ForbidDeletionError{Message: "busy"}
	assert.True(t, errors.Is(err, ErrForbidDeletion))
	assert.Equal(t, "busy", err.Error())
}
