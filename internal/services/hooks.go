package services

import (
	"context"
	"errors"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/events"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/metrics"
	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"

	"go.uber.org/zap"
)

// recalcTagWeights пересчитывает вес каждого тега статьи. Запись веса требует
// tag@modify, поэтому выполняется от имени системы.
func (s *articleService) recalcTagWeights(ctx context.Context, a *models.Article) error {
	tags := a.Tags
	if len(tags) != len(a.TagIDs) {
		var err error
		if tags, err = s.tags.GetByIDs(ctx, a.TagIDs); err != nil {
			return err
		}
	}

	return auth.RunAsSystem(ctx, func(ctx context.Context) error {
		log := logger.WithCtx(ctx)
		for _, t := range tags {
			weight, err := s.countTagReferences(ctx, t.ID, a.Language)
			if err != nil {
				log.Error("Ошибка подсчёта ссылок на тег", zap.Int64("tag_id", t.ID), zap.Error(err))
				return err
			}
			if err := s.tags.SetWeight(ctx, t, weight); err != nil {
				return err
			}
			metrics.TagWeightRecalcs.Inc()
			log.Debug("Вес тега пересчитан", zap.Int64("tag_id", t.ID), zap.Int("weight", weight))
		}
		return nil
	})
}

// countTagReferences - число единиц контента всех моделей, ссылающихся на тег.
// Модели без тегов пропускаются.
func (s *articleService) countTagReferences(ctx context.Context, tagID int64, lang string) (int, error) {
	total := 0
	for _, m := range s.models.All() {
		if !m.Has(models.FieldTags) {
			continue
		}
		n, err := s.content.Count(ctx, repository.ContentQuery{
			Model:             m.Name,
			Language:          lang,
			TagID:             &tagID,
			AnyStatus:         true,
			IgnorePublishTime: true,
		})
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// RecalculateTagWeights сверяет веса всех тегов с фактическим числом ссылок.
// Возвращает число исправленных тегов.
func (s *articleService) RecalculateTagWeights(ctx context.Context) (int, error) {
	log := logger.WithCtx(ctx)
	log.Info("Сверка весов тегов")

	fixed := 0
	err := auth.RunAsSystem(ctx, func(ctx context.Context) error {
		tags, err := s.tags.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, t := range tags {
			weight, err := s.countTagReferences(ctx, t.ID, t.Language)
			if err != nil {
				return err
			}
			metrics.TagWeightRecalcs.Inc()
			if weight == t.Weight {
				continue
			}
			log.Info("Вес тега исправлен",
				zap.Int64("tag_id", t.ID),
				zap.Int("old", t.Weight),
				zap.Int("new", weight),
			)
			if err := s.tags.SetWeight(ctx, t, weight); err != nil {
				return err
			}
			fixed++
		}
		return nil
	})
	if err != nil {
		log.Error("Ошибка сверки весов тегов", zap.Error(err))
		return fixed, err
	}

	log.Info("Сверка весов тегов завершена", zap.Int("fixed", fixed))
	return fixed, nil
}

// syncLocalizations поддерживает симметрию ссылок на переводы:
// установленная ссылка получает обратную, снятая - снимает обратные у всех, кто ссылается сюда.
func (s *articleService) syncLocalizations(ctx context.Context, a *models.Article) error {
	log := logger.WithCtx(ctx)

	for _, lang := range s.languages {
		if lang == a.Language {
			continue
		}

		if targetID, ok := a.Localization(lang); ok {
			target, err := s.content.GetByID(ctx, targetID)
			if err == nil {
				if back, _ := target.Localization(a.Language); back != a.ID {
					target.SetLocalization(a.Language, a.ID)
					if err := s.persist(ctx, target); err != nil {
						return err
					}
					metrics.LocalizationUpdates.WithLabelValues("set").Inc()
					log.Info("Обратная ссылка на перевод установлена",
						zap.Int64("id", target.ID),
						zap.String("lang", a.Language),
						zap.Int64("ref", a.ID),
					)
				}
				continue
			}
			if !errors.Is(err, models.ErrNotFound) {
				return err
			}
			log.Warn("Перевод не найден", zap.Int64("id", a.ID), zap.String("lang", lang), zap.Int64("ref", targetID))
		}

		refs, err := s.content.Find(ctx, repository.ContentQuery{
			Model:             a.Model,
			Language:          lang,
			LocalizationLang:  a.Language,
			LocalizationOf:    a.ID,
			AnyStatus:         true,
			IgnorePublishTime: true,
		})
		if err != nil {
			return err
		}
		for _, ref := range refs {
			ref.SetLocalization(a.Language, 0)
			if err := s.persist(ctx, ref); err != nil {
				return err
			}
			metrics.LocalizationUpdates.WithLabelValues("clear").Inc()
			log.Info("Обратная ссылка на перевод снята",
				zap.Int64("id", ref.ID),
				zap.String("lang", a.Language),
			)
		}
	}
	return nil
}

func (s *articleService) sectionVeto(m models.ContentModel) events.Handler[*models.Section] {
	return func(ctx context.Context, sec *models.Section) error {
		a, err := s.content.First(ctx, repository.ContentQuery{
			Model:             m.Name,
			SectionID:         &sec.ID,
			AnyStatus:         true,
			IgnorePublishTime: true,
		})
		if err != nil || a == nil {
			return err
		}
		return &models.ForbidDeletionError{
			Message:     s.i18n.T(sec.Language, "article@section_used_by_entity", sec.Title, m.Name, a.Title),
			EntityModel: m.Name,
			EntityID:    a.ID,
		}
	}
}

func (s *articleService) tagVeto(m models.ContentModel) events.Handler[*models.Tag] {
	return func(ctx context.Context, t *models.Tag) error {
		a, err := s.content.First(ctx, repository.ContentQuery{
			Model:             m.Name,
			TagID:             &t.ID,
			AnyStatus:         true,
			IgnorePublishTime: true,
		})
		if err != nil || a == nil {
			return err
		}
		return &models.ForbidDeletionError{
			Message:     s.i18n.T(t.Language, "article@tag_used_by_entity", t.Title, m.Name, a.Title),
			EntityModel: m.Name,
			EntityID:    a.ID,
		}
	}
}

// OnContentView обновляет счётчик комментариев статьи по её алиасу и
// возвращает его. Быстрое сохранение требует прав на изменение, поэтому
// выполняется от имени системы.
func (s *articleService) OnContentView(ctx context.Context, a *models.Article) (int, error) {
	m, err := s.models.Get(a.Model)
	if err != nil {
		return 0, err
	}
	if !m.Has(models.FieldCommentsCount) || a.RouteAlias == nil {
		return a.CommentsCount, nil
	}

	err = auth.RunAsSystem(ctx, func(ctx context.Context) error {
		n, err := s.comments.CountThread(ctx, a.RouteAlias.Alias)
		if err != nil {
			return err
		}
		a.CommentsCount = n
		return s.saveCounters(ctx, a)
	})
	if errors.Is(err, ErrNoCommentDriver) {
		return a.CommentsCount, nil
	}
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка обновления счётчика комментариев", zap.Int64("id", a.ID), zap.Error(err))
		return 0, err
	}
	return a.CommentsCount, nil
}

// saveCounters - быстрое сохранение счётчиков без хуков и переиндексации.
func (s *articleService) saveCounters(ctx context.Context, a *models.Article) error {
	if !auth.FromContext(ctx).HasPermission(auth.PermModify(a.Model)) {
		return models.ErrForbidden
	}
	return s.content.UpdateCounters(ctx, a.ID, a.ViewsCount, a.CommentsCount)
}
