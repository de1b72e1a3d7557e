package handlers

import (
	"net/http"
	"strings"

	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"
	"cmsarticle/internal/services"
	"cmsarticle/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

type listResponse struct {
	Items []*models.ArticleView `json:"items"`
	Total int                   `json:"total"`
}

// Models
// @Summary      Модели контента
// @Tags         content
// @Produce      json
// @Success      200 {array} models.ContentModel
// @Router       /api/content/models [get]
func (h *ArticleHandler) Models(w http.ResponseWriter, r *http.Request) {
	type modelT struct {
		models.ContentModel
		Fields []string `json:"fields"`
	}
	out := []modelT{}
	for _, m := range h.svc.Models() {
		out = append(out, modelT{ContentModel: m, Fields: m.Fields.Names()})
	}
	helpers.JSON(w, http.StatusOK, out)
}

// Preview
// @Summary      Предпросмотр статьи
// @Description  Возвращает очищенный HTML (без сохранения в БД). С format=html - готовая страница.
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        format query  string             false  "html"
// @Param        body   body   map[string]string  true   "Сырой HTML статьи"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  helpers.Response
// @Router       /api/content/preview [post]
func (h *ArticleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req struct {
		Title    string `json:"title"`
		BodyHTML string `json:"bodyHtml"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	safe := h.svc.PreviewHTML(req.BodyHTML)
	log.Info("Предпросмотр статьи создан", zap.Int("len", len(safe)))

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(helpers.BuildPreviewHTML(req.Title, safe)))
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"bodyHtml": safe})
}

// List
// @Summary      Список статей модели
// @Description  Неопубликованные статьи видны только редакторам модели
// @Tags         content
// @Produce      json
// @Param        model     path   string  true   "Модель контента"
// @Param        lang      query  string  false  "Язык"
// @Param        section   query  int     false  "ID раздела"
// @Param        tag       query  int     false  "ID тега"
// @Param        author    query  int     false  "ID автора"
// @Param        starred   query  bool    false  "Только избранные"
// @Param        q         query  string  false  "Полнотекстовый поиск"
// @Param        sort      query  string  false  "publish_time|created_at|views_count|comments_count|title"
// @Param        desc      query  bool    false  "По убыванию"
// @Param        all       query  bool    false  "Любой статус (для редакторов)"
// @Param        limit     query  int     false  "Лимит (1..100)"
// @Param        offset    query  int     false  "Смещение"
// @Success      200 {object} listResponse
// @Failure      404 {object} helpers.Response
// @Router       /api/content/{model} [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	model := mux.Vars(r)["model"]

	q := listQuery(r, model)
	list, total, err := h.svc.List(r.Context(), q)
	if err != nil {
		log.Warn("Ошибка получения списка статей", zap.String("model", model), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}

	resp := listResponse{Items: make([]*models.ArticleView, 0, len(list)), Total: total}
	for _, a := range list {
		v, err := h.svc.ToView(r.Context(), a, q.Language)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		resp.Items = append(resp.Items, v)
	}
	helpers.JSON(w, http.StatusOK, resp)
}

func listQuery(r *http.Request, model string) repository.ContentQuery {
	qs := r.URL.Query()
	q := repository.ContentQuery{
		Model:     model,
		Language:  strings.TrimSpace(qs.Get("lang")),
		SectionID: queryInt64(r, "section"),
		TagID:     queryInt64(r, "tag"),
		AuthorID:  queryInt64(r, "author"),
		Search:    qs.Get("q"),
		SortBy:    qs.Get("sort"),
		SortDesc:  qs.Get("desc") == "" || queryBool(r, "desc"),
		Limit:     clampAtoi(qs.Get("limit"), 20, 1, 100),
		Offset:    clampAtoi(qs.Get("offset"), 0, 0, 1_000_000),
	}
	if queryBool(r, "all") {
		q.AnyStatus, q.IgnorePublishTime = true, true
	}
	return q
}

// Get
// @Summary      Получить статью
// @Tags         content
// @Produce      json
// @Param        model  path   string  true   "Модель контента"
// @Param        id     path   int     true   "ID статьи"
// @Param        lang   query  string  false  "Язык представления"
// @Success      200 {object} models.ArticleView
// @Failure      404 {object} helpers.Response
// @Router       /api/content/{model}/{id} [get]
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r, false)
	if !ok {
		return
	}
	h.writeView(w, r, http.StatusOK, a)
}

// View
// @Summary      Просмотр статьи
// @Description  Как Get, но увеличивает счётчики просмотров и комментариев
// @Tags         content
// @Produce      json
// @Param        model  path   string  true   "Модель контента"
// @Param        id     path   int     true   "ID статьи"
// @Success      200 {object} models.ArticleView
// @Failure      404 {object} helpers.Response
// @Router       /content/view/{model}/{id} [get]
func (h *ArticleHandler) View(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r, true)
	if !ok {
		return
	}
	h.writeView(w, r, http.StatusOK, a)
}

// Previous
// @Summary      Предыдущая статья
// @Tags         content
// @Produce      json
// @Param        model        path   string  true   "Модель контента"
// @Param        id           path   int     true   "ID статьи"
// @Param        same_author  query  bool    false  "Только того же автора"
// @Success      200 {object} models.ArticleView
// @Failure      404 {object} helpers.Response
// @Router       /api/content/{model}/{id}/previous [get]
func (h *ArticleHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.adjacent(w, r, true)
}

// Next
// @Summary      Следующая статья
// @Tags         content
// @Produce      json
// @Param        model        path   string  true   "Модель контента"
// @Param        id           path   int     true   "ID статьи"
// @Param        same_author  query  bool    false  "Только того же автора"
// @Success      200 {object} models.ArticleView
// @Failure      404 {object} helpers.Response
// @Router       /api/content/{model}/{id}/next [get]
func (h *ArticleHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.adjacent(w, r, false)
}

func (h *ArticleHandler) adjacent(w http.ResponseWriter, r *http.Request, before bool) {
	a, ok := h.load(w, r, false)
	if !ok {
		return
	}
	q := repository.ContentQuery{Language: a.Language}

	var found *models.Article
	var err error
	if before {
		found, err = h.svc.GetPreviousEntity(r.Context(), a, queryBool(r, "same_author"), q)
	} else {
		found, err = h.svc.GetNextEntity(r.Context(), a, queryBool(r, "same_author"), q)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if found == nil {
		helpers.Error(w, http.StatusNotFound, "Не найдено")
		return
	}
	h.writeView(w, r, http.StatusOK, found)
}

// Create
// @Summary      Создать статью
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        model  path  string                     true  "Модель контента"
// @Param        body   body  models.SaveArticleRequest  true  "Данные статьи"
// @Success      201 {object} models.ArticleView
// @Failure      400 {object} helpers.Response
// @Failure      403 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/content/{model} [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	model := mux.Vars(r)["model"]

	var req models.SaveArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.svc.Create(r.Context(), model, req)
	if err != nil {
		log.Warn("Статья не создана", zap.String("model", model), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	h.writeView(w, r, http.StatusCreated, a)
}

// Update
// @Summary      Изменить статью
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        model  path  string                     true  "Модель контента"
// @Param        id     path  int                        true  "ID статьи"
// @Param        body   body  models.SaveArticleRequest  true  "Данные статьи"
// @Success      200 {object} models.ArticleView
// @Failure      400 {object} helpers.Response
// @Failure      404 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/content/{model}/{id} [patch]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	if _, ok := h.load(w, r, false); !ok {
		return
	}
	id, _ := pathID(w, r, "id")

	var req models.SaveArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		log.Warn("Статья не обновлена", zap.Int64("id", id), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	h.writeView(w, r, http.StatusOK, a)
}

// Delete
// @Summary      Удалить статью
// @Description  Вместе со статьёй удаляются ветка комментариев и алиас маршрута
// @Tags         content
// @Produce      json
// @Param        model  path  string  true  "Модель контента"
// @Param        id     path  int     true  "ID статьи"
// @Success      200 {object} map[string]int64
// @Failure      404 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/content/{model}/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	if _, ok := h.load(w, r, false); !ok {
		return
	}
	id, _ := pathID(w, r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		log.Warn("Статья не удалена", zap.Int64("id", id), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	log.Info("Статья удалена", zap.Int64("id", id))
	helpers.JSON(w, http.StatusOK, map[string]int64{"id": id})
}

// load читает статью по {id} и проверяет, что она принадлежит модели {model}.
func (h *ArticleHandler) load(w http.ResponseWriter, r *http.Request, view bool) (*models.Article, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}

	var a *models.Article
	var err error
	if view {
		a, err = h.svc.View(r.Context(), id)
	} else {
		a, err = h.svc.GetByID(r.Context(), id)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	if a.Model != mux.Vars(r)["model"] {
		helpers.Error(w, http.StatusNotFound, "Не найдено")
		return nil, false
	}
	return a, true
}

func (h *ArticleHandler) writeView(w http.ResponseWriter, r *http.Request, status int, a *models.Article) {
	v, err := h.svc.ToView(r.Context(), a, r.URL.Query().Get("lang"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, status, v)
}
