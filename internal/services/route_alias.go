package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"
	"cmsarticle/internal/utils/helpers"

	"go.uber.org/zap"
)

// ContentViewPath - цель алиаса: внутренний адрес просмотра сущности.
func ContentViewPath(model string, id int64) string {
	return fmt.Sprintf("/content/view/%s/%d", model, id)
}

// AlterRouteAliasString возвращает строку алиаса для статьи.
// Явно заданный алиас возвращается как есть; иначе алиас строится из раздела
// (или имени модели) и заголовка. Пустой заголовок - ошибка конфигурации.
func AlterRouteAliasString(m models.ContentModel, a *models.Article, explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit, nil
	}
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return "", models.ErrEmptyTitle
	}
	if m.Has(models.FieldSection) && a.Section != nil {
		return a.Section.Alias + "/" + title, nil
	}
	return m.Name + "/" + title, nil
}

type RouteAliasService struct {
	repo repository.RouteAliasRepo
}

func NewRouteAliasService(repo repository.RouteAliasRepo) *RouteAliasService {
	return &RouteAliasService{repo: repo}
}

func (s *RouteAliasService) Get(ctx context.Context, id int64) (*models.RouteAlias, error) {
	return s.repo.GetByID(ctx, id)
}

// Unique нормализует алиас и добавляет суффикс -1, -2, ... пока он занят.
func (s *RouteAliasService) Unique(ctx context.Context, alias string) (string, error) {
	base := helpers.SlugifyPath(alias)
	candidate := base
	for i := 1; ; i++ {
		exists, err := s.repo.Exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// Ensure создаёт алиас для сохранённой статьи, если его ещё нет, и
// переименовывает существующий, если передан другой явный алиас.
// Возвращает true, если у статьи появилась новая ссылка на алиас.
func (s *RouteAliasService) Ensure(ctx context.Context, m models.ContentModel, a *models.Article, explicit string) (bool, error) {
	log := logger.WithCtx(ctx)

	if a.RouteAlias == nil && a.RouteAliasID != nil {
		ra, err := s.repo.GetByID(ctx, *a.RouteAliasID)
		switch {
		case err == nil:
			a.RouteAlias = ra
		case !errors.Is(err, models.ErrNotFound):
			return false, err
		}
	}

	if a.RouteAlias == nil {
		str, err := AlterRouteAliasString(m, a, explicit)
		if err != nil {
			return false, err
		}
		alias, err := s.Unique(ctx, str)
		if err != nil {
			return false, err
		}
		ra := &models.RouteAlias{Language: a.Language, Alias: alias, Target: ContentViewPath(a.Model, a.ID)}
		if err := s.repo.Create(ctx, ra); err != nil {
			log.Error("Сервис: ошибка создания алиаса", zap.String("alias", alias), zap.Error(err))
			return false, err
		}
		a.RouteAlias = ra
		a.RouteAliasID = &ra.ID
		log.Info("Сервис: алиас создан", zap.Int64("article_id", a.ID), zap.String("alias", alias))
		return true, nil
	}

	if explicit = strings.TrimSpace(explicit); explicit == "" || helpers.SlugifyPath(explicit) == a.RouteAlias.Alias {
		return false, nil
	}
	alias, err := s.Unique(ctx, explicit)
	if err != nil {
		return false, err
	}
	if err := s.repo.Rename(ctx, a.RouteAlias.ID, alias); err != nil {
		log.Error("Сервис: ошибка переименования алиаса", zap.Int64("alias_id", a.RouteAlias.ID), zap.Error(err))
		return false, err
	}
	log.Info("Сервис: алиас переименован",
		zap.Int64("article_id", a.ID),
		zap.String("from", a.RouteAlias.Alias),
		zap.String("to", alias),
	)
	a.RouteAlias.Alias = alias
	return false, nil
}

func (s *RouteAliasService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.WithCtx(ctx).Error("Сервис: ошибка удаления алиаса", zap.Int64("alias_id", id), zap.Error(err))
		return err
	}
	return nil
}
