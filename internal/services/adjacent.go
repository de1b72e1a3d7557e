package services

import (
	"context"

	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"
	"cmsarticle/internal/repository"

	"go.uber.org/zap"
)

// GetPreviousEntity - ближайшая более ранняя по publish_time статья той же модели.
// q задаёт дополнительные условия выборки (язык, раздел, статус...).
func (s *articleService) GetPreviousEntity(ctx context.Context, a *models.Article, sameAuthor bool, q repository.ContentQuery) (*models.Article, error) {
	return s.adjacent(ctx, a, sameAuthor, q, true)
}

// GetNextEntity - ближайшая более поздняя по publish_time статья той же модели.
func (s *articleService) GetNextEntity(ctx context.Context, a *models.Article, sameAuthor bool, q repository.ContentQuery) (*models.Article, error) {
	return s.adjacent(ctx, a, sameAuthor, q, false)
}

func (s *articleService) adjacent(ctx context.Context, a *models.Article, sameAuthor bool, q repository.ContentQuery, before bool) (*models.Article, error) {
	q.Model = a.Model
	q.ExcludeID = a.ID
	q.SortBy = "publish_time"

	pt := a.PublishTime
	if before {
		q.PublishedBefore = &pt
		q.SortDesc = true
	} else {
		q.PublishedAfter = &pt
		q.SortDesc = false
	}

	if sameAuthor {
		if a.AuthorID != nil {
			id := *a.AuthorID
			q.AuthorID = &id
		} else {
			q.NoAuthor = true
		}
	}

	found, err := s.content.First(ctx, q)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка поиска соседней статьи (repo)",
			zap.Int64("id", a.ID),
			zap.Bool("before", before),
			zap.Error(err),
		)
		return nil, err
	}
	if found != nil {
		s.resolve(ctx, found)
	}
	return found, nil
}
