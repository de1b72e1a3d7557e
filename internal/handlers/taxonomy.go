package handlers

import (
	"context"
	"net/http"

	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"
	"cmsarticle/internal/utils/helpers"

	"go.uber.org/zap"
)

// SectionService и TagService - то, что нужно хендлерам от сервисов разделов и тегов.
type SectionService interface {
	Create(ctx context.Context, req models.TermRequest) (*models.Section, error)
	List(ctx context.Context, lang string) ([]*models.Section, error)
	Delete(ctx context.Context, id int64) error
}

type TagService interface {
	Create(ctx context.Context, req models.TermRequest) (*models.Tag, error)
	List(ctx context.Context, lang string, limit int) ([]*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type TaxonomyHandler struct {
	sections SectionService
	tags     TagService
	lang     string
}

func NewTaxonomyHandler(sections SectionService, tags TagService, defaultLang string) *TaxonomyHandler {
	return &TaxonomyHandler{sections: sections, tags: tags, lang: defaultLang}
}

func (h *TaxonomyHandler) langOf(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		return l
	}
	return h.lang
}

// ListSections
// @Summary      Разделы языка
// @Tags         taxonomy
// @Produce      json
// @Param        lang  query  string  false  "Язык (по умолчанию - основной)"
// @Success      200 {array} models.Section
// @Failure      500 {object} helpers.Response
// @Router       /api/sections [get]
func (h *TaxonomyHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	lang := h.langOf(r)

	list, err := h.sections.List(r.Context(), lang)
	if err != nil {
		log.Error("taxonomy: ошибка получения разделов", zap.String("lang", lang), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Section{}
	}
	helpers.JSON(w, http.StatusOK, list)
}

// CreateSection
// @Summary      Создать раздел
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        body  body  models.TermRequest  true  "Данные раздела"
// @Success      201 {object} models.Section
// @Failure      400 {object} helpers.Response
// @Failure      403 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/sections [post]
func (h *TaxonomyHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.TermRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sec, err := h.sections.Create(r.Context(), req)
	if err != nil {
		log.Warn("taxonomy: раздел не создан", zap.String("title", req.Title), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, sec)
}

// DeleteSection
// @Summary      Удалить раздел
// @Description  409, если на раздел ссылается контент
// @Tags         taxonomy
// @Produce      json
// @Param        id  path  int  true  "ID раздела"
// @Success      200 {object} map[string]int64
// @Failure      409 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/sections/{id} [delete]
func (h *TaxonomyHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.sections.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.WithCtx(r.Context()).Info("taxonomy: раздел удалён", zap.Int64("id", id))
	helpers.JSON(w, http.StatusOK, map[string]int64{"id": id})
}

// ListTags
// @Summary      Теги языка
// @Description  По убыванию веса
// @Tags         taxonomy
// @Produce      json
// @Param        lang   query  string  false  "Язык"
// @Param        limit  query  int     false  "Лимит (1..500)"
// @Success      200 {array} models.Tag
// @Router       /api/tags [get]
func (h *TaxonomyHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	lang := h.langOf(r)

	list, err := h.tags.List(r.Context(), lang, clampAtoi(r.URL.Query().Get("limit"), 100, 1, 500))
	if err != nil {
		log.Error("taxonomy: ошибка получения тегов", zap.String("lang", lang), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Tag{}
	}
	helpers.JSON(w, http.StatusOK, list)
}

// CreateTag
// @Summary      Создать тег
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        body  body  models.TermRequest  true  "Данные тега"
// @Success      201 {object} models.Tag
// @Failure      400 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/tags [post]
func (h *TaxonomyHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.TermRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tag, err := h.tags.Create(r.Context(), req)
	if err != nil {
		log.Warn("taxonomy: тег не создан", zap.String("title", req.Title), zap.Error(err))
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, tag)
}

// DeleteTag
// @Summary      Удалить тег
// @Tags         taxonomy
// @Produce      json
// @Param        id  path  int  true  "ID тега"
// @Success      200 {object} map[string]int64
// @Failure      409 {object} helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/tags/{id} [delete]
func (h *TaxonomyHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.tags.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.WithCtx(r.Context()).Info("taxonomy: тег удалён", zap.Int64("id", id))
	helpers.JSON(w, http.StatusOK, map[string]int64{"id": id})
}
