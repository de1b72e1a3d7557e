package services

import (
	"context"
	"testing"
	"time"

	"cmsarticle/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgo(t *testing.T) {
	tr, err := i18n.New([]string{"en", "ru"}, "en")
	require.NoError(t, err)

	assert.Equal(t, "just now", Ago(tr, "en", 10*time.Second))
	assert.Equal(t, "just now", Ago(tr, "en", -time.Hour))
	assert.Equal(t, "5 min ago", Ago(tr, "en", 5*time.Minute+10*time.Second))
	assert.Equal(t, "3 h ago", Ago(tr, "en", 3*time.Hour))
	assert.Equal(t, "2 days ago", Ago(tr, "en", 50*time.Hour))
	assert.Equal(t, "5 мин. назад", Ago(tr, "ru", 5*time.Minute))
}

func TestPublishTimeView(t *testing.T) {
	tr, err := i18n.New([]string{"en"}, "en")
	require.NoError(t, err)

	pt := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	v := PublishTimeView(tr, "en", pt, pt.Add(2*time.Hour))
	assert.Equal(t, "2024-03-05T14:07:00Z", v.W3C)
	assert.Equal(t, "05.03.2024", v.PrettyDate)
	assert.Equal(t, "05.03.2024 14:07", v.PrettyDateTime)
	assert.Equal(t, "2 h ago", v.Ago)
}

func TestToView(t *testing.T) {
	e := newTestEnv(t, false, articleModel(), blogModel())
	secEn := e.section(t, "en", "News")
	secRu := e.section(t, "ru", "Новости")
	light := e.tag(t, "en", "light")
	heavy := e.tag(t, "en", "heavy")

	ruReq := saveReq("ru", "Перевод")
	ruReq.SectionID = &secRu.ID
	ru := e.create(t, adminCtx(), "article", ruReq)

	// вес heavy больше: он должен идти первым
	other := saveReq("en", "Other")
	other.TagIDs = []int64{heavy.ID}
	e.create(t, adminCtx(), "blog", other)

	req := saveReq("en", "Original")
	req.SectionID = &secEn.ID
	req.TagIDs = []int64{light.ID, heavy.ID}
	req.ExtLinks = []string{"https://go.dev"}
	req.Localizations = map[string]int64{"ru": ru.ID}
	a := e.create(t, adminCtx(), "article", req)

	got, err := e.svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	v, err := e.svc.ToView(context.Background(), got, "en")
	require.NoError(t, err)

	assert.Equal(t, "/news/original", v.URL)
	require.NotNil(t, v.Starred)
	assert.False(t, *v.Starred)
	require.NotNil(t, v.Section)
	assert.Equal(t, "News", v.Section.Title)
	require.Len(t, v.Tags, 2)
	assert.Equal(t, "heavy", v.Tags[0].Title)
	assert.Equal(t, []string{"https://go.dev"}, v.ExtLinks)
	require.NotNil(t, v.PublishTime)
	require.NotNil(t, v.ViewsCount)

	require.Contains(t, v.Localizations, "ru")
	assert.Equal(t, "Перевод", v.Localizations["ru"].Title)
	assert.Equal(t, "/novosti/perevod", v.Localizations["ru"].URL)

	blog, _, err := e.svc.List(context.Background(), repositoryQuery("blog", false))
	require.NoError(t, err)
	require.Len(t, blog, 1)
	bv, err := e.svc.ToView(context.Background(), blog[0], "en")
	require.NoError(t, err)
	assert.Nil(t, bv.Starred, "у blog нет поля starred")
	assert.Nil(t, bv.Section)
	assert.Empty(t, bv.Localizations)
}
