package repository

import (
	"fmt"
	"strings"
	"time"

	"cmsarticle/internal/models"
)

// ContentQuery - условия выборки контента. Нулевые значения не ограничивают выборку,
// кроме статуса и времени публикации: по умолчанию только опубликованное и уже наступившее.
type ContentQuery struct {
	Model    string
	Language string

	Statuses          []string
	AnyStatus         bool
	IgnorePublishTime bool

	AuthorID  *int64
	NoAuthor  bool
	SectionID *int64
	TagID     *int64
	ExcludeID int64

	PublishedAfter  *time.Time
	PublishedBefore *time.Time

	// Статьи, у которых localizations[LocalizationLang] = LocalizationOf
	LocalizationLang string
	LocalizationOf   int64

	Search string

	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

var sortColumns = map[string]string{
	"":               "publish_time",
	"publish_time":   "publish_time",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
	"views_count":    "views_count",
	"comments_count": "comments_count",
	"title":          "title",
	"id":             "id",
}

// buildWhere собирает WHERE и аргументы, нумерация плейсхолдеров начинается с 1.
func (q ContentQuery) buildWhere() (string, []any) {
	where := []string{}
	args := []any{}
	i := 1

	add := func(cond string, v any) {
		where = append(where, fmt.Sprintf(cond, i))
		args = append(args, v)
		i++
	}

	if q.Model != "" {
		add("model = $%d", q.Model)
	}
	if q.Language != "" {
		add("language = $%d", q.Language)
	}
	if !q.AnyStatus {
		statuses := q.Statuses
		if len(statuses) == 0 {
			statuses = []string{models.StatusPublished}
		}
		add("status = ANY($%d)", statuses)
	}
	if !q.IgnorePublishTime {
		where = append(where, "publish_time <= NOW()")
	}
	if q.AuthorID != nil {
		add("author_id = $%d", *q.AuthorID)
	}
	if q.NoAuthor {
		where = append(where, "author_id IS NULL")
	}
	if q.SectionID != nil {
		add("section_id = $%d", *q.SectionID)
	}
	if q.TagID != nil {
		add("$%d = ANY(tags)", *q.TagID)
	}
	if q.ExcludeID != 0 {
		add("id <> $%d", q.ExcludeID)
	}
	if q.PublishedAfter != nil {
		add("publish_time > $%d", *q.PublishedAfter)
	}
	if q.PublishedBefore != nil {
		add("publish_time < $%d", *q.PublishedBefore)
	}
	if q.LocalizationLang != "" {
		where = append(where, fmt.Sprintf("(localizations->>$%d)::bigint = $%d", i, i+1))
		args = append(args, q.LocalizationLang, q.LocalizationOf)
		i += 2
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		add("to_tsvector('simple', title || ' ' || description || ' ' || body) @@ plainto_tsquery('simple', $%d)", s)
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func (q ContentQuery) orderBy() string {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "publish_time"
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}
