package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"

	"go.uber.org/zap"
)

const (
	generateTagsMax     = 5
	generateViewsMax    = 1000
	generateCommentsMax = 100
)

// onContentGenerate заполняет раздел, теги и счётчики сгенерированной статьи.
// Меняет только поля в памяти, сохраняет вызывающий.
func (s *articleService) onContentGenerate(ctx context.Context, a *models.Article) error {
	m, err := s.models.Get(a.Model)
	if err != nil {
		return err
	}

	if m.Has(models.FieldSection) {
		sections, err := s.sections.List(ctx, a.Language)
		if err != nil {
			return err
		}
		if len(sections) == 0 {
			return fmt.Errorf("%w for language %q", models.ErrNoSections, a.Language)
		}
		sec := sections[rand.Intn(len(sections))]
		a.SectionID = &sec.ID
		a.Section = sec
	}

	if m.Has(models.FieldTags) {
		tags, err := s.tags.Random(ctx, a.Language, generateTagsMax)
		if err != nil {
			return err
		}
		a.Tags = tags
		a.TagIDs = make([]int64, 0, len(tags))
		for _, t := range tags {
			a.TagIDs = append(a.TagIDs, t.ID)
		}
	}

	if m.Has(models.FieldViewsCount) {
		a.ViewsCount = rand.Intn(generateViewsMax)
	}
	if m.Has(models.FieldCommentsCount) {
		a.CommentsCount = rand.Intn(generateCommentsMax)
	}
	return nil
}

// Generate создаёт n статей со случайным содержимым. Любая ошибка прерывает генерацию.
func (s *articleService) Generate(ctx context.Context, model, lang string, n int) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Генерация статей", zap.String("model", model), zap.String("lang", lang), zap.Int("count", n))

	m, err := s.models.Get(model)
	if err != nil {
		return nil, err
	}
	p := auth.FromContext(ctx)
	if !p.HasPermission(auth.PermModify(model)) {
		return nil, models.ErrForbidden
	}
	if lang == "" {
		lang = s.lang
	}
	if !hasLanguage(s.languages, lang) {
		ve := models.NewValidationError()
		ve.Add("language", "язык не поддерживается")
		return nil, ve
	}

	out := make([]*models.Article, 0, n)
	for i := 0; i < n; i++ {
		a := s.dispense(m, p)
		a.Language = lang
		fillLorem(a, m)

		if err := s.events.ContentGenerate.Fire(ctx, a); err != nil {
			log.Error("Ошибка генерации статьи", zap.Int("index", i), zap.Error(err))
			return out, err
		}
		if err := s.save(ctx, m, a, ""); err != nil {
			log.Error("Ошибка сохранения сгенерированной статьи", zap.Int("index", i), zap.Error(err))
			return out, err
		}
		out = append(out, a)
	}

	log.Info("Статьи сгенерированы", zap.String("model", model), zap.Int("count", len(out)))
	return out, nil
}

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod
	tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam quis nostrud exercitation
	ullamco laboris nisi aliquip ex ea commodo consequat duis aute irure in reprehenderit voluptate
	velit esse cillum fugiat nulla pariatur excepteur sint occaecat cupidatat non proident sunt culpa`)

func loremSentence(minWords, maxWords int) string {
	n := minWords + rand.Intn(maxWords-minWords+1)
	words := make([]string, n)
	for i := range words {
		words[i] = loremWords[rand.Intn(len(loremWords))]
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}

func fillLorem(a *models.Article, m models.ContentModel) {
	a.Title = loremSentence(3, 7)
	a.Description = loremSentence(8, 16) + "."

	var b strings.Builder
	for i := 0; i < 3+rand.Intn(3); i++ {
		b.WriteString("<p>")
		for j := 0; j < 4; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(loremSentence(6, 14))
			b.WriteByte('.')
		}
		b.WriteString("</p>")
	}
	a.Body = b.String()

	if m.Has(models.FieldImages) {
		a.Images = []string{fmt.Sprintf("https://picsum.photos/seed/%d/1024/768", rand.Intn(1_000_000))}
	}
}
