package app

import (
	"context"
	"fmt"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/config"
	"cmsarticle/internal/db"
	"cmsarticle/internal/events"
	"cmsarticle/internal/handlers"
	"cmsarticle/internal/i18n"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/metrics"
	"cmsarticle/internal/repository"
	"cmsarticle/internal/routes"
	"cmsarticle/internal/services"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Container - сервисы, собранные по конфигу. Нужен и серверу, и генератору.
type Container struct {
	Pool     *pgxpool.Pool
	Articles services.ArticleService
	Sections *services.SectionService
	Tags     *services.TagService
	Perms    *auth.Registry
	Grants   auth.Grants
}

func (c *Container) Close() { c.Pool.Close() }

// NewContainer подключается к БД, применяет схему и регистрирует модели контента.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	setup, err := config.LoadModels(cfg.ModelsFile)
	if err != nil {
		return nil, err
	}
	tr, err := i18n.New(cfg.Languages, cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	pool, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.GetDSNSafe(), err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	if err := db.EnsureIndexes(ctx, pool, setup.Models); err != nil {
		pool.Close()
		return nil, err
	}

	// Репозитории
	contentRepo := repository.NewContentRepo(pool)
	sectionRepo := repository.NewSectionRepo(pool)
	tagRepo := repository.NewTagRepo(pool)
	aliasRepo := repository.NewRouteAliasRepo(pool)

	var driver services.CommentDriver
	if cfg.CommentsEnabled {
		driver = repository.NewCommentRepo(pool)
	}

	// Сервисы
	ev := events.NewRegistry()
	perms := auth.NewRegistry()
	if err := perms.Define(auth.PermSectionModify, "Modify sections", "taxonomy"); err != nil {
		pool.Close()
		return nil, err
	}
	if err := perms.Define(auth.PermTagModify, "Modify tags", "taxonomy"); err != nil {
		pool.Close()
		return nil, err
	}
	comments := services.NewCommentService(driver)
	if comments.Enabled() {
		if err := perms.Define(services.PermCommentsDeleteThread, "Delete comment threads", "comments"); err != nil {
			pool.Close()
			return nil, err
		}
	}

	sections := services.NewSectionService(sectionRepo, ev, cfg.Languages)
	tags := services.NewTagService(tagRepo, ev, cfg.Languages)
	articles := services.NewArticleService(services.ArticleDeps{
		Content:         contentRepo,
		Models:          services.NewModelRegistry(),
		Sections:        sections,
		Tags:            tags,
		Aliases:         services.NewRouteAliasService(aliasRepo),
		Comments:        comments,
		Perms:           perms,
		Events:          ev,
		I18n:            tr,
		Languages:       cfg.Languages,
		DefaultLanguage: cfg.DefaultLanguage,
	})
	for _, m := range setup.Models {
		if err := articles.RegisterModel(m); err != nil {
			pool.Close()
			return nil, fmt.Errorf("register model %s: %w", m.Name, err)
		}
	}

	return &Container{
		Pool:     pool,
		Articles: articles,
		Sections: sections,
		Tags:     tags,
		Perms:    perms,
		Grants:   auth.Grants(setup.Roles),
	}, nil
}

// App - HTTP-сервер со всеми зависимостями.
type App struct {
	*Container
	Router *mux.Router
	Cron   *cron.Cron
}

func InitApp(cfg *config.Config) (*App, error) {
	c, err := NewContainer(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// Хендлеры
	router := mux.NewRouter()
	articleH := handlers.NewArticleHandler(c.Articles)
	adminH := handlers.NewAdminHandler(c.Articles, c.Perms, router)
	taxonomyH := handlers.NewTaxonomyHandler(c.Sections, c.Tags, cfg.DefaultLanguage)

	// Маршруты
	routes.InitRoutes(router, cfg.JWTSecret, c.Grants, articleH, adminH, taxonomyH)

	sched, err := StartTagWeightReconciler(cfg.TagWeightSchedule, c.Articles)
	if err != nil {
		c.Close()
		return nil, err
	}

	return &App{Container: c, Router: router, Cron: sched}, nil
}

func (a *App) Close() {
	<-a.Cron.Stop().Done()
	a.Container.Close()
}

// StartTagWeightReconciler по расписанию сверяет веса тегов с числом ссылок на них.
func StartTagWeightReconciler(spec string, articles services.ArticleService) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		logger.Log.Info("Плановая сверка весов тегов")
		n, err := articles.RecalculateTagWeights(context.Background())
		if err != nil {
			logger.Log.Error("Плановая сверка весов тегов не удалась", zap.Error(err))
			return
		}
		logger.Log.Info("Плановая сверка весов тегов завершена", zap.Int("fixed", n))
	})
	if err != nil {
		return nil, fmt.Errorf("tag weight schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
