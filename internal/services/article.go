package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/events"
	"cmsarticle/internal/i18n"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/metrics"
	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ArticleService interface {
	RegisterModel(m models.ContentModel) error
	Models() []models.ContentModel

	Dispense(ctx context.Context, model string) (*models.Article, error)
	Create(ctx context.Context, model string, req models.SaveArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id int64, req models.SaveArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	View(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, q repository.ContentQuery) ([]*models.Article, int, error)
	PreviewHTML(rawHTML string) string

	GetPreviousEntity(ctx context.Context, a *models.Article, sameAuthor bool, q repository.ContentQuery) (*models.Article, error)
	GetNextEntity(ctx context.Context, a *models.Article, sameAuthor bool, q repository.ContentQuery) (*models.Article, error)

	OnContentView(ctx context.Context, a *models.Article) (int, error)
	RecalculateTagWeights(ctx context.Context) (int, error)
	Generate(ctx context.Context, model, lang string, n int) ([]*models.Article, error)

	ToView(ctx context.Context, a *models.Article, lang string) (*models.ArticleView, error)
	BrowserSetup(ctx context.Context, model, lang string) (*models.Browser, error)
	BrowserRow(ctx context.Context, a *models.Article, lang string) models.BrowserRow
	FormSetup(ctx context.Context, a *models.Article, lang string) (*models.Form, error)
}

type ArticleDeps struct {
	Content         repository.ContentRepo
	Models          *ModelRegistry
	Sections        *SectionService
	Tags            *TagService
	Aliases         *RouteAliasService
	Comments        *CommentService
	Perms           *auth.Registry
	Events          *events.Registry
	I18n            *i18n.Translator
	Languages       []string
	DefaultLanguage string
}

type articleService struct {
	content   repository.ContentRepo
	models    *ModelRegistry
	sections  *SectionService
	tags      *TagService
	aliases   *RouteAliasService
	comments  *CommentService
	perms     *auth.Registry
	events    *events.Registry
	i18n      *i18n.Translator
	languages []string
	lang      string
	policy    *bluemonday.Policy
}

func NewArticleService(d ArticleDeps) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")

	lang := d.DefaultLanguage
	if lang == "" && len(d.Languages) > 0 {
		lang = d.Languages[0]
	}

	s := &articleService{
		content:   d.Content,
		models:    d.Models,
		sections:  d.Sections,
		tags:      d.Tags,
		aliases:   d.Aliases,
		comments:  d.Comments,
		perms:     d.Perms,
		events:    d.Events,
		i18n:      d.I18n,
		languages: d.Languages,
		lang:      lang,
		policy:    p,
	}

	s.events.ContentGenerate.Listen("article", s.onContentGenerate)
	s.events.ContentView.Listen("article", func(ctx context.Context, a *models.Article) error {
		_, err := s.OnContentView(ctx, a)
		return err
	})
	return s
}

// RegisterModel добавляет модель, объявляет её права и подписывает
// запрет удаления используемых разделов и тегов.
func (s *articleService) RegisterModel(m models.ContentModel) error {
	if err := s.models.Add(m); err != nil {
		return err
	}

	perms := [][2]string{
		{auth.PermModify(m.Name), "article@perm_modify"},
		{auth.PermDelete(m.Name), "article@perm_delete"},
	}
	if m.Has(models.FieldStarred) {
		perms = append(perms, [2]string{auth.PermSetStarred(m.Name), "article@perm_set_starred"})
	}
	if m.Has(models.FieldPublishTime) {
		perms = append(perms, [2]string{auth.PermSetPublishTime(m.Name), "article@perm_set_publish_time"})
	}
	for _, p := range perms {
		if err := s.perms.Define(p[0], s.i18n.T(s.lang, p[1], m.Name), "content"); err != nil {
			return err
		}
	}

	if m.Has(models.FieldSection) {
		s.events.SectionPreDelete.Listen(m.Name, s.sectionVeto(m))
	}
	if m.Has(models.FieldTags) {
		s.events.TagPreDelete.Listen(m.Name, s.tagVeto(m))
	}

	logger.Log.Info("Модель контента зарегистрирована",
		zap.String("model", m.Name),
		zap.Strings("fields", m.Fields.Names()),
	)
	return nil
}

func (s *articleService) Models() []models.ContentModel { return s.models.All() }

func (s *articleService) PreviewHTML(rawHTML string) string {
	log := logger.WithCtx(context.Background())
	clean := s.policy.Sanitize(rawHTML)
	log.Debug("Предпросмотр HTML (sanitize)",
		zap.Int("raw_len", len(rawHTML)),
		zap.Int("clean_len", len(clean)),
	)
	return clean
}

func (s *articleService) Dispense(ctx context.Context, model string) (*models.Article, error) {
	m, err := s.models.Get(model)
	if err != nil {
		return nil, err
	}
	return s.dispense(m, auth.FromContext(ctx)), nil
}

func (s *articleService) dispense(m models.ContentModel, p *auth.Principal) *models.Article {
	a := &models.Article{
		Model:       m.Name,
		Language:    s.lang,
		Status:      models.StatusPublished,
		PublishTime: time.Now().UTC().Truncate(time.Second),
	}
	if !p.IsAnonymous() && !p.System {
		id := p.ID
		a.AuthorID = &id
	}
	return a
}

func (s *articleService) Create(ctx context.Context, model string, req models.SaveArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи",
		zap.String("model", model),
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Int("tags_count", len(req.TagIDs)),
	)

	m, err := s.models.Get(model)
	if err != nil {
		log.Warn("Модель контента не найдена", zap.String("model", model))
		return nil, err
	}
	p := auth.FromContext(ctx)
	if !p.HasPermission(auth.PermModify(model)) {
		log.Warn("Недостаточно прав для создания статьи", zap.String("model", model))
		return nil, models.ErrForbidden
	}

	a := s.dispense(m, p)
	if err := s.apply(ctx, m, a, req); err != nil {
		log.Warn("Валидация статьи не пройдена", zap.Error(err))
		return nil, err
	}
	if err := s.save(ctx, m, a, req.RouteAlias); err != nil {
		log.Error("Ошибка сохранения статьи", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана", zap.Int64("id", a.ID), zap.String("model", model))
	return a, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req models.SaveArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление статьи", zap.Int64("id", id), zap.String("title", strings.TrimSpace(req.Title)))

	a, err := s.content.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья для обновления не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	m, err := s.models.Get(a.Model)
	if err != nil {
		return nil, err
	}
	if !auth.FromContext(ctx).HasPermission(auth.PermModify(a.Model)) {
		log.Warn("Недостаточно прав для изменения статьи", zap.Int64("id", id))
		return nil, models.ErrForbidden
	}

	s.resolve(ctx, a)
	if err := s.apply(ctx, m, a, req); err != nil {
		log.Warn("Валидация статьи не пройдена", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.save(ctx, m, a, req.RouteAlias); err != nil {
		log.Error("Ошибка сохранения статьи", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Статья обновлена", zap.Int64("id", id))
	return a, nil
}

// apply переносит данные формы в статью. Поля, которых нет в модели, и поля,
// на которые у пользователя нет прав, игнорируются.
func (s *articleService) apply(ctx context.Context, m models.ContentModel, a *models.Article, req models.SaveArticleRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	ve := models.NewValidationError()
	p := auth.FromContext(ctx)

	if lang := strings.TrimSpace(req.Language); lang != "" {
		if hasLanguage(s.languages, lang) {
			a.Language = lang
		} else {
			ve.Add("language", "язык не поддерживается")
		}
	}

	a.Title = strings.TrimSpace(req.Title)
	a.Description = strings.TrimSpace(req.Description)
	if a.Description == "" {
		a.Description = a.Title
	}
	a.Body = s.policy.Sanitize(req.Body)
	if strings.TrimSpace(a.Body) == "" {
		ve.Add("body", "обязательное поле")
	}
	if req.Status != "" {
		a.Status = req.Status
	}

	if m.Has(models.FieldImages) {
		a.Images = uniqueStrings(req.Images)
		if len(a.Images) == 0 {
			ve.Add("images", "обязательное поле")
		}
	}

	if m.Has(models.FieldSection) {
		a.SectionID, a.Section = nil, nil
		if req.SectionID != nil {
			sec, err := s.sections.Get(ctx, *req.SectionID)
			switch {
			case errors.Is(err, models.ErrNotFound):
				ve.Add("sectionId", "раздел не найден")
			case err != nil:
				return err
			case sec.Language != a.Language:
				ve.Add("sectionId", "раздел другого языка")
			default:
				a.SectionID = &sec.ID
				a.Section = sec
			}
		} else if m.SectionRequired {
			ve.Add("sectionId", "обязательное поле")
		}
	}

	if m.Has(models.FieldTags) {
		ids := uniqueIDs(req.TagIDs)
		tags, err := s.tags.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(tags) != len(ids) {
			ve.Add("tagIds", "тег не найден")
		}
		for _, t := range tags {
			if t.Language != a.Language {
				ve.Add("tagIds", "тег другого языка")
			}
		}
		if m.TagsRequired && len(ids) == 0 {
			ve.Add("tagIds", "обязательное поле")
		}
		a.TagIDs, a.Tags = ids, tags
	}

	if m.Has(models.FieldStarred) && req.Starred != nil && p.HasPermission(auth.PermSetStarred(m.Name)) {
		a.Starred = *req.Starred
	}
	if m.Has(models.FieldPublishTime) && req.PublishTime != nil && p.HasPermission(auth.PermSetPublishTime(m.Name)) {
		a.PublishTime = req.PublishTime.UTC()
	}
	if m.Has(models.FieldExtLinks) {
		a.ExtLinks = uniqueStrings(req.ExtLinks)
	}

	if m.Has(models.FieldLocalization) {
		if req.Localizations != nil {
			if err := s.applyLocalizations(ctx, a, req.Localizations, ve); err != nil {
				return err
			}
		}
		// ссылка на перевод на собственный язык не имеет смысла (язык мог смениться)
		a.SetLocalization(a.Language, 0)
	}

	if !ve.Empty() {
		return ve
	}
	return nil
}

func (s *articleService) applyLocalizations(ctx context.Context, a *models.Article, in map[string]int64, ve *models.ValidationError) error {
	locs := map[string]int64{}
	for lang, id := range in {
		field := "localizations." + lang
		if id == 0 {
			continue
		}
		if lang == a.Language || !hasLanguage(s.languages, lang) {
			ve.Add(field, "язык не поддерживается")
			continue
		}
		if id == a.ID {
			ve.Add(field, "статья не может быть переводом самой себя")
			continue
		}
		target, err := s.content.GetByID(ctx, id)
		switch {
		case errors.Is(err, models.ErrNotFound):
			ve.Add(field, "статья не найдена")
		case err != nil:
			return err
		case target.Model != a.Model || target.Language != lang:
			ve.Add(field, "статья другой модели или языка")
		default:
			locs[lang] = id
		}
	}
	a.Localizations = locs
	return nil
}

// save записывает статью, создаёт/переименовывает алиас и выполняет
// действия после сохранения.
func (s *articleService) save(ctx context.Context, m models.ContentModel, a *models.Article, explicitAlias string) error {
	log := logger.WithCtx(ctx)
	first := a.IsNew()

	// без заголовка алиас не построить: ошибка до записи в БД
	if m.Has(models.FieldRouteAlias) && a.RouteAliasID == nil {
		if _, err := AlterRouteAliasString(m, a, explicitAlias); err != nil {
			return err
		}
	}

	var err error
	if first {
		err = s.content.Create(ctx, a)
	} else {
		err = s.content.Update(ctx, a)
	}
	if err != nil {
		log.Error("Ошибка записи статьи (repo)", zap.Int64("id", a.ID), zap.Error(err))
		return err
	}
	metrics.ArticlesSaved.WithLabelValues(m.Name, strconv.FormatBool(first)).Inc()

	if m.Has(models.FieldRouteAlias) {
		created, err := s.aliases.Ensure(ctx, m, a, explicitAlias)
		if err != nil {
			return err
		}
		if created {
			if err := s.content.SetRouteAlias(ctx, a.ID, a.RouteAliasID); err != nil {
				log.Error("Ошибка привязки алиаса (repo)", zap.Int64("id", a.ID), zap.Error(err))
				return err
			}
		}
	}

	return s.afterSave(ctx, m, a, first)
}

// persist - повторное сохранение уже существующей статьи (без формы и алиаса).
func (s *articleService) persist(ctx context.Context, a *models.Article) error {
	m, err := s.models.Get(a.Model)
	if err != nil {
		return err
	}
	if err := s.content.Update(ctx, a); err != nil {
		return err
	}
	metrics.ArticlesSaved.WithLabelValues(m.Name, "false").Inc()
	return s.afterSave(ctx, m, a, false)
}

func (s *articleService) afterSave(ctx context.Context, m models.ContentModel, a *models.Article, first bool) error {
	if first && m.Has(models.FieldTags) && len(a.TagIDs) > 0 {
		if err := s.recalcTagWeights(ctx, a); err != nil {
			return err
		}
	}
	if m.Has(models.FieldLocalization) {
		if err := s.syncLocalizations(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление статьи", zap.Int64("id", id))

	a, err := s.content.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья для удаления не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	m, err := s.models.Get(a.Model)
	if err != nil {
		return err
	}
	if !auth.FromContext(ctx).HasPermission(auth.PermDelete(a.Model)) {
		log.Warn("Недостаточно прав для удаления статьи", zap.Int64("id", id))
		return models.ErrForbidden
	}
	s.resolve(ctx, a)

	if err := s.content.Delete(ctx, a.ID); err != nil {
		log.Error("Ошибка удаления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if err := s.afterDelete(ctx, m, a); err != nil {
		log.Error("Ошибка очистки после удаления статьи", zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("Статья удалена", zap.Int64("id", id))
	return nil
}

// afterDelete удаляет ветку комментариев и затем алиас: ветка ищется по строке алиаса.
func (s *articleService) afterDelete(ctx context.Context, m models.ContentModel, a *models.Article) error {
	if !m.Has(models.FieldRouteAlias) || a.RouteAlias == nil {
		return nil
	}
	log := logger.WithCtx(ctx)

	err := auth.RunAsSystem(ctx, func(ctx context.Context) error {
		return s.comments.DeleteThread(ctx, a.RouteAlias.Alias)
	})
	switch {
	case errors.Is(err, ErrNoCommentDriver):
		log.Debug("Комментарии не подключены, ветка не удаляется", zap.String("alias", a.RouteAlias.Alias))
	case err != nil:
		return err
	}

	return s.aliases.Delete(ctx, a.RouteAlias.ID)
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение статьи по ID", zap.Int64("id", id))

	a, err := s.content.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if !s.visible(ctx, a) {
		log.Debug("Статья не опубликована, доступ скрыт", zap.Int64("id", id))
		return nil, models.ErrNotFound
	}
	s.resolve(ctx, a)
	return a, nil
}

// View - просмотр статьи с событием content@view. Ошибка обработчиков события
// просмотр не прерывает.
func (s *articleService) View(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.events.ContentView.Fire(ctx, a); err != nil {
		logger.WithCtx(ctx).Warn("Ошибка обработки события просмотра", zap.Int64("id", id), zap.Error(err))
	}
	return a, nil
}

func (s *articleService) List(ctx context.Context, q repository.ContentQuery) ([]*models.Article, int, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение списка статей",
		zap.String("model", q.Model),
		zap.String("lang", q.Language),
		zap.Int("limit", q.Limit),
		zap.Int("offset", q.Offset),
	)

	if _, err := s.models.Get(q.Model); err != nil {
		return nil, 0, err
	}
	if !auth.FromContext(ctx).HasPermission(auth.PermModify(q.Model)) {
		q.AnyStatus, q.Statuses, q.IgnorePublishTime = false, nil, false
	}

	list, err := s.content.Find(ctx, q)
	if err != nil {
		log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, 0, err
	}
	total, err := s.content.Count(ctx, q)
	if err != nil {
		log.Error("Ошибка подсчёта статей (repo)", zap.Error(err))
		return nil, 0, err
	}
	for _, a := range list {
		s.resolve(ctx, a)
	}

	log.Debug("Список статей получен", zap.Int("count", len(list)), zap.Int("total", total))
	return list, total, nil
}

func (s *articleService) visible(ctx context.Context, a *models.Article) bool {
	if a.Status == models.StatusPublished && !a.PublishTime.After(time.Now()) {
		return true
	}
	return auth.FromContext(ctx).HasPermission(auth.PermModify(a.Model))
}

// resolve подтягивает раздел, теги и алиас. Битые ссылки пропускаются.
func (s *articleService) resolve(ctx context.Context, a *models.Article) {
	log := logger.WithCtx(ctx)
	if a.SectionID != nil && a.Section == nil {
		if sec, err := s.sections.Get(ctx, *a.SectionID); err == nil {
			a.Section = sec
		} else {
			log.Debug("Раздел статьи не найден", zap.Int64("id", a.ID), zap.Error(err))
		}
	}
	if len(a.TagIDs) > 0 && len(a.Tags) == 0 {
		if tags, err := s.tags.GetByIDs(ctx, a.TagIDs); err == nil {
			a.Tags = tags
		} else {
			log.Debug("Теги статьи не получены", zap.Int64("id", a.ID), zap.Error(err))
		}
	}
	if a.RouteAliasID != nil && a.RouteAlias == nil {
		if ra, err := s.aliases.Get(ctx, *a.RouteAliasID); err == nil {
			a.RouteAlias = ra
		} else {
			log.Debug("Алиас статьи не найден", zap.Int64("id", a.ID), zap.Error(err))
		}
	}
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func uniqueIDs(in []int64) []int64 {
	out := make([]int64, 0, len(in))
	seen := map[int64]struct{}{}
	for _, v := range in {
		if v == 0 {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
