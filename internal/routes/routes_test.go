package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/handlers"
	"cmsarticle/internal/models"
	"cmsarticle/internal/services"
	"cmsarticle/internal/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-secret"

type stubArticles struct {
	services.ArticleService
	recalculated bool
}

func (s *stubArticles) Models() []models.ContentModel {
	return []models.ContentModel{models.DefaultArticleModel()}
}

func (s *stubArticles) RecalculateTagWeights(context.Context) (int, error) {
	s.recalculated = true
	return 2, nil
}

type stubTerms struct{}

func (stubTerms) Create(context.Context, models.TermRequest) (*models.Section, error) { return nil, nil }
func (stubTerms) List(context.Context, string) ([]*models.Section, error)             { return nil, nil }
func (stubTerms) Delete(context.Context, int64) error                                 { return nil }

type stubTags struct{}

func (stubTags) Create(context.Context, models.TermRequest) (*models.Tag, error) { return nil, nil }
func (stubTags) List(context.Context, string, int) ([]*models.Tag, error)       { return nil, nil }
func (stubTags) Delete(context.Context, int64) error                            { return nil }

func newTestRouter(svc *stubArticles) *mux.Router {
	r := mux.NewRouter()
	grants := auth.Grants{"editor": {auth.PermTagModify}}
	InitRoutes(r, secret, grants,
		handlers.NewArticleHandler(svc),
		handlers.NewAdminHandler(svc, auth.NewRegistry(), r),
		handlers.NewTaxonomyHandler(stubTerms{}, stubTags{}, "en"),
	)
	return r
}

func request(t *testing.T, r http.Handler, method, target, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if role != "" {
		token, err := utils.GenerateToken(secret, 10, "user", role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_PublicAndMetrics(t *testing.T) {
	r := newTestRouter(&stubArticles{})

	rec := request(t, r, http.MethodGet, "/api/content/models", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = request(t, r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_ProtectedNeedAuth(t *testing.T) {
	r := newTestRouter(&stubArticles{})

	assert.Equal(t, http.StatusUnauthorized, request(t, r, http.MethodPost, "/api/content/article", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(t, r, http.MethodGet, "/api/admin/permissions", "").Code)
}

func TestRoutes_RecalculateNeedsTagPermission(t *testing.T) {
	svc := &stubArticles{}
	r := newTestRouter(svc)

	rec := request(t, r, http.MethodPost, "/api/admin/tags/recalculate", "author")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, svc.recalculated)

	rec = request(t, r, http.MethodPost, "/api/admin/tags/recalculate", "editor")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"fixed":2}}`, rec.Body.String())
	assert.True(t, svc.recalculated)
}

func TestRoutes_PermissionsAdminOnly(t *testing.T) {
	r := newTestRouter(&stubArticles{})

	assert.Equal(t, http.StatusForbidden, request(t, r, http.MethodGet, "/api/admin/permissions", "editor").Code)
	assert.Equal(t, http.StatusOK, request(t, r, http.MethodGet, "/api/admin/permissions", auth.RoleAdmin).Code)
}

func TestRoutes_ModifyRouteIsNamed(t *testing.T) {
	r := newTestRouter(&stubArticles{})

	u, err := r.Get(handlers.RouteContentModify).URL("model", "blog", "eid", "0")
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/content/blog/modify/0", u.Path)
}
