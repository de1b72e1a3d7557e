package services

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/events"
	"cmsarticle/internal/i18n"
	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"

	"github.com/stretchr/testify/require"
)

// ----- content -----

type fakeContentRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.Article
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: map[int64]*models.Article{}}
}

func cloneArticle(a *models.Article) *models.Article {
	c := *a
	c.Images = slices.Clone(a.Images)
	c.TagIDs = slices.Clone(a.TagIDs)
	c.ExtLinks = slices.Clone(a.ExtLinks)
	if a.Localizations != nil {
		c.Localizations = maps.Clone(a.Localizations)
	}
	c.Section, c.Tags, c.RouteAlias = nil, nil, nil
	return &c
}

func (r *fakeContentRepo) Create(_ context.Context, a *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.items[a.ID] = cloneArticle(a)
	return nil
}

func (r *fakeContentRepo) Update(_ context.Context, a *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return models.ErrNotFound
	}
	a.UpdatedAt = time.Now()
	r.items[a.ID] = cloneArticle(a)
	return nil
}

func (r *fakeContentRepo) UpdateCounters(_ context.Context, id int64, views, comments int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return models.ErrNotFound
	}
	a.ViewsCount, a.CommentsCount = views, comments
	return nil
}

func (r *fakeContentRepo) SetRouteAlias(_ context.Context, id int64, aliasID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return models.ErrNotFound
	}
	a.RouteAliasID = aliasID
	return nil
}

func (r *fakeContentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeContentRepo) GetByID(_ context.Context, id int64) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneArticle(a), nil
}

// stored - текущее состояние записи без копирования (только для проверок в тестах).
func (r *fakeContentRepo) stored(id int64) *models.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

func (r *fakeContentRepo) Find(_ context.Context, q repository.ContentQuery) ([]*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Article
	for _, a := range r.items {
		if matchQuery(q, a) {
			out = append(out, cloneArticle(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		less := out[i].ID < out[j].ID
		if q.SortBy == "" || q.SortBy == "publish_time" {
			if !out[i].PublishTime.Equal(out[j].PublishTime) {
				less = out[i].PublishTime.Before(out[j].PublishTime)
			}
		}
		if q.SortDesc {
			return !less
		}
		return less
	})

	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return nil, nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeContentRepo) First(ctx context.Context, q repository.ContentQuery) (*models.Article, error) {
	q.Limit, q.Offset = 1, 0
	list, err := r.Find(ctx, q)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *fakeContentRepo) Count(ctx context.Context, q repository.ContentQuery) (int, error) {
	q.Limit, q.Offset = 0, 0
	list, err := r.Find(ctx, q)
	return len(list), err
}

func matchQuery(q repository.ContentQuery, a *models.Article) bool {
	if q.Model != "" && a.Model != q.Model {
		return false
	}
	if q.Language != "" && a.Language != q.Language {
		return false
	}
	if !q.AnyStatus {
		statuses := q.Statuses
		if len(statuses) == 0 {
			statuses = []string{models.StatusPublished}
		}
		if !slices.Contains(statuses, a.Status) {
			return false
		}
	}
	if !q.IgnorePublishTime && a.PublishTime.After(time.Now()) {
		return false
	}
	if q.AuthorID != nil && (a.AuthorID == nil || *a.AuthorID != *q.AuthorID) {
		return false
	}
	if q.NoAuthor && a.AuthorID != nil {
		return false
	}
	if q.SectionID != nil && (a.SectionID == nil || *a.SectionID != *q.SectionID) {
		return false
	}
	if q.TagID != nil && !slices.Contains(a.TagIDs, *q.TagID) {
		return false
	}
	if q.ExcludeID != 0 && a.ID == q.ExcludeID {
		return false
	}
	if q.PublishedAfter != nil && !a.PublishTime.After(*q.PublishedAfter) {
		return false
	}
	if q.PublishedBefore != nil && !a.PublishTime.Before(*q.PublishedBefore) {
		return false
	}
	if q.LocalizationLang != "" && a.Localizations[q.LocalizationLang] != q.LocalizationOf {
		return false
	}
	if q.Search != "" {
		text := strings.ToLower(a.Title + " " + a.Description + " " + a.Body)
		if !strings.Contains(text, strings.ToLower(q.Search)) {
			return false
		}
	}
	return true
}

// ----- sections / tags -----

type fakeSectionRepo struct {
	nextID int64
	items  map[int64]*models.Section
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{items: map[int64]*models.Section{}}
}

func (r *fakeSectionRepo) Create(_ context.Context, s *models.Section) error {
	r.nextID++
	s.ID = r.nextID
	c := *s
	r.items[s.ID] = &c
	return nil
}

func (r *fakeSectionRepo) GetByID(_ context.Context, id int64) (*models.Section, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (r *fakeSectionRepo) ListByLanguage(_ context.Context, lang string) ([]*models.Section, error) {
	var out []*models.Section
	for _, s := range r.items {
		if s.Language == lang {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSectionRepo) AliasExists(_ context.Context, lang, alias string) (bool, error) {
	for _, s := range r.items {
		if s.Language == lang && s.Alias == alias {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSectionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeTagRepo struct {
	nextID int64
	items  map[int64]*models.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{items: map[int64]*models.Tag{}}
}

func (r *fakeTagRepo) Create(_ context.Context, t *models.Tag) error {
	r.nextID++
	t.ID = r.nextID
	c := *t
	r.items[t.ID] = &c
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id int64) (*models.Tag, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *fakeTagRepo) GetByIDs(_ context.Context, ids []int64) ([]*models.Tag, error) {
	var out []*models.Tag
	for _, id := range ids {
		if t, ok := r.items[id]; ok {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) ListByLanguage(_ context.Context, lang string, _ int) ([]*models.Tag, error) {
	var out []*models.Tag
	for _, t := range r.sorted() {
		if t.Language == lang {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) ListAll(_ context.Context) ([]*models.Tag, error) {
	return r.sorted(), nil
}

func (r *fakeTagRepo) Random(ctx context.Context, lang string, n int) ([]*models.Tag, error) {
	list, _ := r.ListByLanguage(ctx, lang, 0)
	if len(list) > n {
		list = list[:n]
	}
	return list, nil
}

func (r *fakeTagRepo) AliasExists(_ context.Context, lang, alias string) (bool, error) {
	for _, t := range r.items {
		if t.Language == lang && t.Alias == alias {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTagRepo) UpdateWeight(_ context.Context, id int64, weight int) error {
	t, ok := r.items[id]
	if !ok {
		return models.ErrNotFound
	}
	t.Weight = weight
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeTagRepo) sorted() []*models.Tag {
	out := make([]*models.Tag, 0, len(r.items))
	for _, t := range r.items {
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ----- route aliases / comments -----

type fakeAliasRepo struct {
	nextID int64
	items  map[int64]*models.RouteAlias
	calls  *[]string
}

func (r *fakeAliasRepo) Create(_ context.Context, ra *models.RouteAlias) error {
	r.nextID++
	ra.ID = r.nextID
	c := *ra
	r.items[ra.ID] = &c
	return nil
}

func (r *fakeAliasRepo) GetByID(_ context.Context, id int64) (*models.RouteAlias, error) {
	ra, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	c := *ra
	return &c, nil
}

func (r *fakeAliasRepo) Exists(_ context.Context, alias string) (bool, error) {
	for _, ra := range r.items {
		if ra.Alias == alias {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAliasRepo) Rename(_ context.Context, id int64, alias string) error {
	ra, ok := r.items[id]
	if !ok {
		return models.ErrNotFound
	}
	ra.Alias = alias
	return nil
}

func (r *fakeAliasRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.items, id)
	*r.calls = append(*r.calls, fmt.Sprintf("alias.delete:%d", id))
	return nil
}

type fakeCommentDriver struct {
	counts  map[string]int
	deleted []string
	calls   *[]string
}

func (d *fakeCommentDriver) DeleteThread(_ context.Context, uid string) error {
	d.deleted = append(d.deleted, uid)
	*d.calls = append(*d.calls, "comments.delete:"+uid)
	return nil
}

func (d *fakeCommentDriver) CountThread(_ context.Context, uid string) (int, error) {
	return d.counts[uid], nil
}

// ----- окружение -----

var testLanguages = []string{"en", "ru"}

type testEnv struct {
	content  *fakeContentRepo
	sections *fakeSectionRepo
	tags     *fakeTagRepo
	aliases  *fakeAliasRepo
	driver   *fakeCommentDriver
	calls    *[]string

	events     *events.Registry
	perms      *auth.Registry
	svc        ArticleService
	sectionSvc *SectionService
	tagSvc     *TagService
}

func newTestEnv(t *testing.T, withComments bool, ms ...models.ContentModel) *testEnv {
	t.Helper()

	calls := &[]string{}
	e := &testEnv{
		content:  newFakeContentRepo(),
		sections: newFakeSectionRepo(),
		tags:     newFakeTagRepo(),
		aliases:  &fakeAliasRepo{items: map[int64]*models.RouteAlias{}, calls: calls},
		driver:   &fakeCommentDriver{counts: map[string]int{}, calls: calls},
		calls:    calls,
		events:   events.NewRegistry(),
		perms:    auth.NewRegistry(),
	}

	tr, err := i18n.New(testLanguages, "en")
	require.NoError(t, err)

	comments := NewCommentService(nil)
	if withComments {
		comments = NewCommentService(e.driver)
	}

	e.sectionSvc = NewSectionService(e.sections, e.events, testLanguages)
	e.tagSvc = NewTagService(e.tags, e.events, testLanguages)
	e.svc = NewArticleService(ArticleDeps{
		Content:         e.content,
		Models:          NewModelRegistry(),
		Sections:        e.sectionSvc,
		Tags:            e.tagSvc,
		Aliases:         NewRouteAliasService(e.aliases),
		Comments:        comments,
		Perms:           e.perms,
		Events:          e.events,
		I18n:            tr,
		Languages:       testLanguages,
		DefaultLanguage: "en",
	})
	for _, m := range ms {
		require.NoError(t, e.svc.RegisterModel(m))
	}
	return e
}

func (e *testEnv) section(t *testing.T, lang, title string) *models.Section {
	t.Helper()
	s, err := e.sectionSvc.Create(adminCtx(), models.TermRequest{Language: lang, Title: title})
	require.NoError(t, err)
	return s
}

func (e *testEnv) tag(t *testing.T, lang, title string) *models.Tag {
	t.Helper()
	tag, err := e.tagSvc.Create(adminCtx(), models.TermRequest{Language: lang, Title: title})
	require.NoError(t, err)
	return tag
}

func (e *testEnv) create(t *testing.T, ctx context.Context, model string, req models.SaveArticleRequest) *models.Article {
	t.Helper()
	a, err := e.svc.Create(ctx, model, req)
	require.NoError(t, err)
	return a
}

func (e *testEnv) weight(id int64) int { return e.tags.items[id].Weight }

// ----- модели и пользователи -----

func articleModel() models.ContentModel {
	return models.ContentModel{Name: "article", Fields: models.AllFields, SectionRequired: true}
}

func blogModel() models.ContentModel {
	return models.ContentModel{
		Name:   "blog",
		Fields: models.FieldImages | models.FieldTags | models.FieldPublishTime | models.FieldRouteAlias,
	}
}

func newsModel() models.ContentModel {
	return models.ContentModel{Name: "news", Fields: models.FieldTags}
}

func pageModel() models.ContentModel {
	return models.ContentModel{Name: "page", Fields: models.FieldImages | models.FieldSection | models.FieldRouteAlias}
}

func storyModel() models.ContentModel {
	return models.ContentModel{Name: "story", Fields: models.FieldImages | models.FieldLocalization | models.FieldRouteAlias}
}

func postModel() models.ContentModel {
	return models.ContentModel{Name: "post", Fields: models.FieldImages | models.FieldCommentsCount | models.FieldRouteAlias}
}

func adminCtx() context.Context {
	return adminCtxAs(1)
}

func adminCtxAs(id int64) context.Context {
	return auth.WithPrincipal(context.Background(), auth.NewPrincipal(id, fmt.Sprintf("admin%d", id), auth.RoleAdmin, nil))
}

func userCtx(id int64, grants ...string) context.Context {
	return auth.WithPrincipal(context.Background(), auth.NewPrincipal(id, fmt.Sprintf("user%d", id), "editor", grants))
}

func saveReq(lang, title string) models.SaveArticleRequest {
	return models.SaveArticleRequest{
		Language: lang,
		Title:    title,
		Body:     "<p>Текст статьи</p>",
		Images:   []string{"https://example.com/cover.jpg"},
	}
}

func repositoryQuery(model string, anyStatus bool) repository.ContentQuery {
	return repository.ContentQuery{Model: model, AnyStatus: anyStatus}
}

func itoa(n int64) string { return fmt.Sprintf("%d", n) }
