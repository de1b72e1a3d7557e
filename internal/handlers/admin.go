package handlers

import (
	"net/http"
	"strconv"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"
	"cmsarticle/internal/services"
	"cmsarticle/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RouteContentModify - имя маршрута формы изменения, по нему строится action формы.
const RouteContentModify = "content.modify"

const redirectEntityView = "ENTITY_VIEW"

type AdminHandler struct {
	svc    services.ArticleService
	perms  *auth.Registry
	router *mux.Router
}

func NewAdminHandler(svc services.ArticleService, perms *auth.Registry, router *mux.Router) *AdminHandler {
	return &AdminHandler{svc: svc, perms: perms, router: router}
}

type rowsResponse struct {
	Rows  []models.BrowserRow `json:"rows"`
	Total int                 `json:"total"`
}

// Browser
// @Summary      Настройка таблицы админки
// @Tags         admin-content
// @Produce      json
// @Param        model  path   string  true   "Модель контента"
// @Param        lang   query  string  false  "Язык подписей"
// @Success      200 {object} models.Browser
// @Failure      403 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/content/{model}/browser [get]
func (h *AdminHandler) Browser(w http.ResponseWriter, r *http.Request) {
	model := mux.Vars(r)["model"]
	b, err := h.svc.BrowserSetup(r.Context(), model, r.URL.Query().Get("lang"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, b)
}

// Rows
// @Summary      Строки таблицы админки
// @Description  Статьи модели в любом статусе
// @Tags         admin-content
// @Produce      json
// @Param        model   path   string  true   "Модель контента"
// @Param        lang    query  string  false  "Язык подписей"
// @Param        sort    query  string  false  "Поле сортировки"
// @Param        limit   query  int     false  "Лимит (1..100)"
// @Param        offset  query  int     false  "Смещение"
// @Success      200 {object} rowsResponse
// @Security     ApiKeyAuth
// @Router       /api/admin/content/{model}/rows [get]
func (h *AdminHandler) Rows(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	model := mux.Vars(r)["model"]
	lang := r.URL.Query().Get("lang")

	b, err := h.svc.BrowserSetup(r.Context(), model, lang)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	q := listQuery(r, model)
	q.Language = ""
	q.AnyStatus, q.IgnorePublishTime = true, true
	if q.SortBy == "" {
		q.SortBy, q.SortDesc = b.DefaultSortField, b.DefaultSortOrder == "desc"
	}

	list, total, err := h.svc.List(r.Context(), q)
	if err != nil {
		log.Warn("Ошибка получения строк таблицы", zap.String("model", model), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	resp := rowsResponse{Rows: make([]models.BrowserRow, 0, len(list)), Total: total}
	for _, a := range list {
		resp.Rows = append(resp.Rows, h.svc.BrowserRow(r.Context(), a, lang))
	}
	helpers.JSON(w, http.StatusOK, resp)
}

// Form
// @Summary      Форма изменения статьи
// @Description  eid = 0 - форма новой статьи
// @Tags         admin-content
// @Produce      json
// @Param        model  path   string  true   "Модель контента"
// @Param        eid    path   int     true   "ID статьи или 0"
// @Param        lang   query  string  false  "Язык подписей"
// @Success      200 {object} models.Form
// @Failure      403 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/content/{model}/modify/{eid} [get]
func (h *AdminHandler) Form(w http.ResponseWriter, r *http.Request) {
	model := mux.Vars(r)["model"]
	eid, ok := pathID(w, r, "eid")
	if !ok {
		return
	}

	var a *models.Article
	var err error
	if eid == 0 {
		a, err = h.svc.Dispense(r.Context(), model)
	} else {
		a, err = h.svc.GetByID(r.Context(), eid)
		if err == nil && a.Model != model {
			err = models.ErrNotFound
		}
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	f, err := h.svc.FormSetup(r.Context(), a, r.URL.Query().Get("lang"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	action, err := h.modifyURL(model, eid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	f.Action = action
	helpers.JSON(w, http.StatusOK, f)
}

// modifyURL - action формы: маршрут content.modify с __redirect=ENTITY_VIEW.
func (h *AdminHandler) modifyURL(model string, eid int64) (string, error) {
	u, err := h.router.Get(RouteContentModify).URL("model", model, "eid", strconv.FormatInt(eid, 10))
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("__redirect", redirectEntityView)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Modify
// @Summary      Сохранить форму статьи
// @Description  eid = 0 - создание. С __redirect=ENTITY_VIEW отвечает 303 на страницу статьи.
// @Tags         admin-content
// @Accept       json
// @Produce      json
// @Param        model       path   string                     true   "Модель контента"
// @Param        eid         path   int                        true   "ID статьи или 0"
// @Param        __redirect  query  string                     false  "ENTITY_VIEW"
// @Param        body        body   models.SaveArticleRequest  true   "Данные статьи"
// @Success      200 {object} models.ArticleView
// @Success      303
// @Failure      400 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/content/{model}/modify/{eid} [post]
func (h *AdminHandler) Modify(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	model := mux.Vars(r)["model"]
	eid, ok := pathID(w, r, "eid")
	if !ok {
		return
	}

	var req models.SaveArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var a *models.Article
	var err error
	if eid == 0 {
		a, err = h.svc.Create(r.Context(), model, req)
	} else {
		var cur *models.Article
		cur, err = h.svc.GetByID(r.Context(), eid)
		if err == nil && cur.Model != model {
			err = models.ErrNotFound
		}
		if err == nil {
			a, err = h.svc.Update(r.Context(), eid, req)
		}
	}
	if err != nil {
		log.Warn("Форма статьи не сохранена", zap.String("model", model), zap.Int64("eid", eid), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}

	v, err := h.svc.ToView(r.Context(), a, "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if r.URL.Query().Get("__redirect") == redirectEntityView {
		log.Info("Форма статьи сохранена, переход к просмотру", zap.Int64("id", a.ID), zap.String("url", v.URL))
		http.Redirect(w, r, v.URL, http.StatusSeeOther)
		return
	}
	helpers.JSON(w, http.StatusOK, v)
}

// Generate
// @Summary      Сгенерировать статьи
// @Tags         admin-content
// @Accept       json
// @Produce      json
// @Param        model  path  string  true  "Модель контента"
// @Param        body   body  generateRequest  true  "Язык и количество"
// @Success      201 {object} map[string]int
// @Failure      400 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/content/{model}/generate [post]
func (h *AdminHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	model := mux.Vars(r)["model"]

	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Count < 1 || req.Count > 100 {
		helpers.ErrorDetails(w, http.StatusBadRequest, "Ошибка валидации",
			map[string]string{"count": "значение должно быть от 1 до 100"})
		return
	}

	list, err := h.svc.Generate(r.Context(), model, req.Language, req.Count)
	if err != nil {
		log.Error("Ошибка генерации статей", zap.String("model", model), zap.Int("created", len(list)), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, map[string]int{"created": len(list)})
}

type generateRequest struct {
	Language string `json:"language" example:"en"`
	Count    int    `json:"count"    example:"10"`
}

// Permissions
// @Summary      Объявленные права
// @Tags         admin-content
// @Produce      json
// @Success      200 {array} auth.Permission
// @Security     ApiKeyAuth
// @Router       /api/admin/permissions [get]
func (h *AdminHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	helpers.JSON(w, http.StatusOK, h.perms.All())
}

// RecalculateTags
// @Summary      Пересчитать вес тегов
// @Description  Сверяет вес каждого тега с числом ссылающихся на него статей
// @Tags         admin-content
// @Produce      json
// @Success      200 {object} map[string]int
// @Security     ApiKeyAuth
// @Router       /api/admin/tags/recalculate [post]
func (h *AdminHandler) RecalculateTags(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.RecalculateTagWeights(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]int{"fixed": n})
}
