package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"cmsarticle/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTerms struct {
	lang      string
	deleteErr error
	created   models.TermRequest
}

func (s *stubTerms) List(_ context.Context, lang string) ([]*models.Section, error) {
	s.lang = lang
	if lang != "en" {
		return nil, nil
	}
	return []*models.Section{{ID: 1, Language: "en", Title: "News", Alias: "news"}}, nil
}

func (s *stubTerms) Create(_ context.Context, req models.TermRequest) (*models.Section, error) {
	if req.Title == "" {
		ve := models.NewValidationError()
		ve.Add("title", "обязательное поле")
		return nil, ve
	}
	s.created = req
	return &models.Section{ID: 2, Language: req.Language, Title: req.Title, Alias: "x"}, nil
}

func (s *stubTerms) Delete(_ context.Context, _ int64) error { return s.deleteErr }

type stubTags struct{ limit int }

func (s *stubTags) List(_ context.Context, _ string, limit int) ([]*models.Tag, error) {
	s.limit = limit
	return nil, nil
}

func (s *stubTags) Create(_ context.Context, req models.TermRequest) (*models.Tag, error) {
	return &models.Tag{ID: 1, Title: req.Title}, nil
}

func (s *stubTags) Delete(_ context.Context, _ int64) error {
	return fmt.Errorf("tag@pre_delete (blog): %w",
		&models.ForbidDeletionError{Message: `Tag "go" is used by blog "Hello".`})
}

func taxonomyRouter(sections SectionService, tags TagService) *mux.Router {
	h := NewTaxonomyHandler(sections, tags, "en")
	r := mux.NewRouter()
	r.HandleFunc("/api/sections", h.ListSections).Methods(http.MethodGet)
	r.HandleFunc("/api/tags", h.ListTags).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/sections", h.CreateSection).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/sections/{id:[0-9]+}", h.DeleteSection).Methods(http.MethodDelete)
	r.HandleFunc("/api/admin/tags/{id:[0-9]+}", h.DeleteTag).Methods(http.MethodDelete)
	return r
}

func TestTaxonomyHandler_ListSectionsDefaultLanguage(t *testing.T) {
	sections := &stubTerms{}
	r := taxonomyRouter(sections, &stubTags{})

	rec := do(t, r, http.MethodGet, "/api/sections", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", sections.lang)
	assert.Len(t, decode[[]models.Section](t, rec), 1)

	rec = do(t, r, http.MethodGet, "/api/sections?lang=ru", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ru", sections.lang)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestTaxonomyHandler_ListTagsLimit(t *testing.T) {
	tags := &stubTags{}
	r := taxonomyRouter(&stubTerms{}, tags)

	do(t, r, http.MethodGet, "/api/tags?limit=10000", "")
	assert.Equal(t, 500, tags.limit)
	do(t, r, http.MethodGet, "/api/tags", "")
	assert.Equal(t, 100, tags.limit)
}

func TestTaxonomyHandler_CreateSection(t *testing.T) {
	sections := &stubTerms{}
	r := taxonomyRouter(sections, &stubTags{})

	rec := do(t, r, http.MethodPost, "/api/admin/sections", `{"language":"en","title":"World"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "World", sections.created.Title)

	rec = do(t, r, http.MethodPost, "/api/admin/sections", `{"language":"en"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaxonomyHandler_DeleteVetoed(t *testing.T) {
	r := taxonomyRouter(&stubTerms{deleteErr: models.ErrNotFound}, &stubTags{})

	rec := do(t, r, http.MethodDelete, "/api/admin/tags/4", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `Tag \"go\" is used by blog \"Hello\".`)

	rec = do(t, r, http.MethodDelete, "/api/admin/sections/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
