package services

import (
	"context"
	"errors"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"

	"go.uber.org/zap"
)

// ErrNoCommentDriver - комментарии не подключены. Для удаления статьи это не ошибка.
var ErrNoCommentDriver = errors.New("no comment driver registered")

const PermCommentsDeleteThread = "comments@delete_thread"

// CommentDriver - хранилище веток комментариев. Ветка адресуется алиасом маршрута.
type CommentDriver interface {
	DeleteThread(ctx context.Context, threadUID string) error
	CountThread(ctx context.Context, threadUID string) (int, error)
}

type CommentService struct {
	driver CommentDriver
}

// NewCommentService принимает nil, если комментарии отключены.
func NewCommentService(driver CommentDriver) *CommentService {
	return &CommentService{driver: driver}
}

func (s *CommentService) Enabled() bool { return s != nil && s.driver != nil }

func (s *CommentService) DeleteThread(ctx context.Context, threadUID string) error {
	if !s.Enabled() {
		return ErrNoCommentDriver
	}
	if !auth.FromContext(ctx).HasPermission(PermCommentsDeleteThread) {
		return models.ErrForbidden
	}

	log := logger.WithCtx(ctx)
	if err := s.driver.DeleteThread(ctx, threadUID); err != nil {
		log.Error("Сервис: ошибка удаления ветки комментариев", zap.String("thread", threadUID), zap.Error(err))
		return err
	}
	log.Info("Сервис: ветка комментариев удалена", zap.String("thread", threadUID))
	return nil
}

func (s *CommentService) CountThread(ctx context.Context, threadUID string) (int, error) {
	if !s.Enabled() {
		return 0, ErrNoCommentDriver
	}
	return s.driver.CountThread(ctx, threadUID)
}
