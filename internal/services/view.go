package services

import (
	"context"
	"errors"
	"time"

	"cmsarticle/internal/i18n"
	"cmsarticle/internal/models"
)

const (
	prettyDateLayout     = "02.01.2006"
	prettyDateTimeLayout = "02.01.2006 15:04"
)

// ToView - JSON-представление статьи с разрешёнными ссылками на переводы.
func (s *articleService) ToView(ctx context.Context, a *models.Article, lang string) (*models.ArticleView, error) {
	m, err := s.models.Get(a.Model)
	if err != nil {
		return nil, err
	}
	if lang == "" {
		lang = a.Language
	}

	v := s.baseView(m, a, lang)
	if !m.Has(models.FieldLocalization) || len(a.Localizations) == 0 {
		return v, nil
	}

	v.Localizations = map[string]*models.ArticleView{}
	for l, id := range a.Localizations {
		ref, err := s.content.GetByID(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !s.visible(ctx, ref) {
			continue
		}
		s.resolve(ctx, ref)
		v.Localizations[l] = s.baseView(m, ref, lang)
	}
	return v, nil
}

func (s *articleService) baseView(m models.ContentModel, a *models.Article, lang string) *models.ArticleView {
	v := &models.ArticleView{
		ID:          a.ID,
		Model:       a.Model,
		Language:    a.Language,
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		Status:      a.Status,
		URL:         ContentViewPath(a.Model, a.ID),
	}
	if a.RouteAlias != nil {
		v.URL = a.RouteAlias.Alias
	}
	if m.Has(models.FieldImages) {
		v.Images = a.Images
	}
	if m.Has(models.FieldStarred) {
		starred := a.Starred
		v.Starred = &starred
	}
	if m.Has(models.FieldSection) {
		v.Section = a.Section
	}
	if m.Has(models.FieldTags) {
		v.Tags = a.SortedTags()
	}
	if m.Has(models.FieldExtLinks) {
		v.ExtLinks = a.ExtLinks
	}
	if m.Has(models.FieldPublishTime) {
		v.PublishTime = PublishTimeView(s.i18n, lang, a.PublishTime, time.Now())
	}
	if m.Has(models.FieldViewsCount) {
		n := a.ViewsCount
		v.ViewsCount = &n
	}
	if m.Has(models.FieldCommentsCount) {
		n := a.CommentsCount
		v.CommentsCount = &n
	}
	return v
}

func PublishTimeView(tr *i18n.Translator, lang string, t, now time.Time) *models.PublishTimeView {
	return &models.PublishTimeView{
		W3C:            t.UTC().Format(time.RFC3339),
		PrettyDate:     t.Format(prettyDateLayout),
		PrettyDateTime: t.Format(prettyDateTimeLayout),
		Ago:            Ago(tr, lang, now.Sub(t)),
	}
}

// Ago - "5 мин. назад" и т.п. Будущее время считается "только что".
func Ago(tr *i18n.Translator, lang string, d time.Duration) string {
	switch {
	case d < time.Minute:
		return tr.T(lang, "article@ago_just_now")
	case d < time.Hour:
		return tr.T(lang, "article@ago_minutes", int(d/time.Minute))
	case d < 24*time.Hour:
		return tr.T(lang, "article@ago_hours", int(d/time.Hour))
	default:
		return tr.T(lang, "article@ago_days", int(d/(24*time.Hour)))
	}
}
