package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/events"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/metrics"
	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"
	"cmsarticle/internal/utils/helpers"

	"go.uber.org/zap"
)

type SectionService struct {
	repo      repository.SectionRepo
	events    *events.Registry
	languages []string
}

func NewSectionService(repo repository.SectionRepo, ev *events.Registry, languages []string) *SectionService {
	return &SectionService{repo: repo, events: ev, languages: languages}
}

func (s *SectionService) Create(ctx context.Context, req models.TermRequest) (*models.Section, error) {
	log := logger.WithCtx(ctx)
	log.Info("Сервис: создание раздела", zap.String("title", req.Title), zap.String("lang", req.Language))

	if !auth.FromContext(ctx).HasPermission(auth.PermSectionModify) {
		return nil, models.ErrForbidden
	}
	if err := validateTerm(req, s.languages); err != nil {
		log.Warn("Сервис: валидация раздела не пройдена", zap.Error(err))
		return nil, err
	}

	alias, err := uniqueTermAlias(ctx, req, s.repo.AliasExists)
	if err != nil {
		return nil, err
	}
	sec := &models.Section{
		Language: req.Language,
		Title:    strings.TrimSpace(req.Title),
		Alias:    alias,
		Order:    req.Order,
	}
	if err := s.repo.Create(ctx, sec); err != nil {
		log.Error("Сервис: ошибка создания раздела", zap.Error(err))
		return nil, err
	}

	log.Info("Сервис: раздел создан", zap.Int64("section_id", sec.ID), zap.String("alias", sec.Alias))
	return sec, nil
}

func (s *SectionService) Get(ctx context.Context, id int64) (*models.Section, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SectionService) List(ctx context.Context, lang string) ([]*models.Section, error) {
	return s.repo.ListByLanguage(ctx, lang)
}

// Delete удаляет раздел, если ни один обработчик section@pre_delete не возразил.
func (s *SectionService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Сервис: удаление раздела", zap.Int64("section_id", id))

	if !auth.FromContext(ctx).HasPermission(auth.PermSectionModify) {
		return models.ErrForbidden
	}
	sec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.SectionPreDelete.Fire(ctx, sec); err != nil {
		metrics.DeletionsVetoed.WithLabelValues("section").Inc()
		log.Warn("Сервис: удаление раздела отклонено", zap.Int64("section_id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Сервис: ошибка удаления раздела", zap.Int64("section_id", id), zap.Error(err))
		return err
	}

	log.Info("Сервис: раздел удалён", zap.Int64("section_id", id))
	return nil
}

type TagService struct {
	repo      repository.TagRepo
	events    *events.Registry
	languages []string
}

func NewTagService(repo repository.TagRepo, ev *events.Registry, languages []string) *TagService {
	return &TagService{repo: repo, events: ev, languages: languages}
}

func (s *TagService) Create(ctx context.Context, req models.TermRequest) (*models.Tag, error) {
	log := logger.WithCtx(ctx)
	log.Info("Сервис: создание тега", zap.String("title", req.Title), zap.String("lang", req.Language))

	if !auth.FromContext(ctx).HasPermission(auth.PermTagModify) {
		return nil, models.ErrForbidden
	}
	if err := validateTerm(req, s.languages); err != nil {
		log.Warn("Сервис: валидация тега не пройдена", zap.Error(err))
		return nil, err
	}

	alias, err := uniqueTermAlias(ctx, req, s.repo.AliasExists)
	if err != nil {
		return nil, err
	}
	tag := &models.Tag{Language: req.Language, Title: strings.TrimSpace(req.Title), Alias: alias}
	if err := s.repo.Create(ctx, tag); err != nil {
		log.Error("Сервис: ошибка создания тега", zap.Error(err))
		return nil, err
	}

	log.Info("Сервис: тег создан", zap.Int64("tag_id", tag.ID), zap.String("alias", tag.Alias))
	return tag, nil
}

func (s *TagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TagService) GetByIDs(ctx context.Context, ids []int64) ([]*models.Tag, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *TagService) List(ctx context.Context, lang string, limit int) ([]*models.Tag, error) {
	return s.repo.ListByLanguage(ctx, lang, limit)
}

func (s *TagService) ListAll(ctx context.Context) ([]*models.Tag, error) {
	return s.repo.ListAll(ctx)
}

// Random возвращает до n случайных тегов языка в случайном порядке.
func (s *TagService) Random(ctx context.Context, lang string, n int) ([]*models.Tag, error) {
	tags, err := s.repo.Random(ctx, lang, n)
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(tags), func(i, j int) { tags[i], tags[j] = tags[j], tags[i] })
	return tags, nil
}

// SetWeight записывает вес тега. Требует tag@modify; пересчёт после сохранения
// статьи вызывает его от имени системы.
func (s *TagService) SetWeight(ctx context.Context, tag *models.Tag, weight int) error {
	if !auth.FromContext(ctx).HasPermission(auth.PermTagModify) {
		return models.ErrForbidden
	}
	if err := s.repo.UpdateWeight(ctx, tag.ID, weight); err != nil {
		logger.WithCtx(ctx).Error("Сервис: ошибка записи веса тега", zap.Int64("tag_id", tag.ID), zap.Error(err))
		return err
	}
	tag.Weight = weight
	return nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Сервис: удаление тега", zap.Int64("tag_id", id))

	if !auth.FromContext(ctx).HasPermission(auth.PermTagModify) {
		return models.ErrForbidden
	}
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.TagPreDelete.Fire(ctx, tag); err != nil {
		metrics.DeletionsVetoed.WithLabelValues("tag").Inc()
		log.Warn("Сервис: удаление тега отклонено", zap.Int64("tag_id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Сервис: ошибка удаления тега", zap.Int64("tag_id", id), zap.Error(err))
		return err
	}

	log.Info("Сервис: тег удалён", zap.Int64("tag_id", id))
	return nil
}

func validateTerm(req models.TermRequest, languages []string) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if !hasLanguage(languages, req.Language) {
		ve := models.NewValidationError()
		ve.Add("language", "язык не поддерживается")
		return ve
	}
	return nil
}

func uniqueTermAlias(ctx context.Context, req models.TermRequest,
	exists func(ctx context.Context, lang, alias string) (bool, error)) (string, error) {
	src := req.Alias
	if strings.TrimSpace(src) == "" {
		src = req.Title
	}
	base := helpers.Slugify(src)
	if base == "" {
		ve := models.NewValidationError()
		ve.Add("alias", "не удалось построить алиас")
		return "", ve
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, req.Language, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func hasLanguage(languages []string, lang string) bool {
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}
