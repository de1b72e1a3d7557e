// Команда generate наполняет БД случайными статьями.
package main

import (
	"context"
	"flag"

	"cmsarticle/internal/app"
	"cmsarticle/internal/auth"
	"cmsarticle/internal/config"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"

	"go.uber.org/zap"
)

func main() {
	model := flag.String("model", "article", "модель контента")
	lang := flag.String("lang", "", "язык (по умолчанию основной)")
	n := flag.Int("n", 10, "число статей")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Ошибка загрузки конфига: " + err.Error())
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	if _, err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Некорректный конфиг", zap.Error(err))
	}

	ctx := context.Background()
	c, err := app.NewContainer(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации", zap.Error(err))
	}
	defer c.Close()

	var created []*models.Article
	err = auth.RunAsSystem(ctx, func(ctx context.Context) error {
		var err error
		created, err = c.Articles.Generate(ctx, *model, *lang, *n)
		return err
	})
	if err != nil {
		logger.Log.Fatal("Генерация прервана",
			zap.String("model", *model),
			zap.Int("created", len(created)),
			zap.Error(err),
		)
	}
	logger.Log.Info("Генерация завершена", zap.String("model", *model), zap.Int("created", len(created)))
}
