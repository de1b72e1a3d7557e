package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cmsarticle/internal/models"

	"github.com/jackc/pgx/v5"
)

type ContentRepo interface {
	Create(ctx context.Context, a *models.Article) error
	Update(ctx context.Context, a *models.Article) error
	// UpdateCounters - быстрое сохранение только счётчиков, без хуков
	UpdateCounters(ctx context.Context, id int64, views, comments int) error
	SetRouteAlias(ctx context.Context, id int64, aliasID *int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Find(ctx context.Context, q ContentQuery) ([]*models.Article, error)
	First(ctx context.Context, q ContentQuery) (*models.Article, error)
	Count(ctx context.Context, q ContentQuery) (int, error)
}

type contentRepo struct{ db DBTX }

func NewContentRepo(db DBTX) ContentRepo { return &contentRepo{db: db} }

const contentColumns = `id, model, language, author_id, title, description, body, images, status,
	section_id, tags, starred, publish_time, views_count, comments_count, ext_links,
	localizations, route_alias_id, created_at, updated_at`

type jsonFields struct {
	images, extLinks, localizations []byte
}

func marshalJSONFields(a *models.Article) jsonFields {
	images, _ := json.Marshal(nonNilStrings(a.Images))
	extLinks, _ := json.Marshal(nonNilStrings(a.ExtLinks))
	locs := a.Localizations
	if locs == nil {
		locs = map[string]int64{}
	}
	localizations, _ := json.Marshal(locs)
	return jsonFields{images: images, extLinks: extLinks, localizations: localizations}
}

func (r *contentRepo) Create(ctx context.Context, a *models.Article) error {
	j := marshalJSONFields(a)
	const q = `
		INSERT INTO content (model, language, author_id, title, description, body, images, status,
			section_id, tags, starred, publish_time, views_count, comments_count, ext_links, localizations)
		VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8,$9,$10,$11,$12,$13,$14,$15::jsonb,$16::jsonb)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, q,
		a.Model, a.Language, a.AuthorID, a.Title, a.Description, a.Body, j.images, a.Status,
		a.SectionID, nonNilIDs(a.TagIDs), a.Starred, a.PublishTime, a.ViewsCount, a.CommentsCount,
		j.extLinks, j.localizations,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *contentRepo) Update(ctx context.Context, a *models.Article) error {
	j := marshalJSONFields(a)
	const q = `
		UPDATE content
		SET language=$1, author_id=$2, title=$3, description=$4, body=$5, images=$6::jsonb, status=$7,
		    section_id=$8, tags=$9, starred=$10, publish_time=$11, views_count=$12, comments_count=$13,
		    ext_links=$14::jsonb, localizations=$15::jsonb, route_alias_id=$16, updated_at=NOW()
		WHERE id=$17
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, q,
		a.Language, a.AuthorID, a.Title, a.Description, a.Body, j.images, a.Status,
		a.SectionID, nonNilIDs(a.TagIDs), a.Starred, a.PublishTime, a.ViewsCount, a.CommentsCount,
		j.extLinks, j.localizations, a.RouteAliasID, a.ID,
	).Scan(&a.UpdatedAt)
	return notFound(err)
}

func (r *contentRepo) UpdateCounters(ctx context.Context, id int64, views, comments int) error {
	return affected(r.db.Exec(ctx,
		`UPDATE content SET views_count=$1, comments_count=$2 WHERE id=$3`, views, comments, id))
}

func (r *contentRepo) SetRouteAlias(ctx context.Context, id int64, aliasID *int64) error {
	return affected(r.db.Exec(ctx, `UPDATE content SET route_alias_id=$1 WHERE id=$2`, aliasID, id))
}

func (r *contentRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM content WHERE id=$1`, id))
}

func (r *contentRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contentColumns+` FROM content WHERE id=$1`, id)
	a, err := scanArticle(row)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *contentRepo) Find(ctx context.Context, q ContentQuery) ([]*models.Article, error) {
	where, args := q.buildWhere()
	sql := `SELECT ` + contentColumns + ` FROM content` + where + q.orderBy()
	if q.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, q.Limit)
	}
	if q.Offset > 0 {
		sql += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, q.Offset)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *contentRepo) First(ctx context.Context, q ContentQuery) (*models.Article, error) {
	q.Limit = 1
	q.Offset = 0
	list, err := r.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *contentRepo) Count(ctx context.Context, q ContentQuery) (int, error) {
	where, args := q.buildWhere()
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM content`+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func scanArticle(row pgx.Row) (*models.Article, error) {
	var (
		a                               models.Article
		imagesRaw, extLinksRaw, locsRaw []byte
	)
	if err := row.Scan(
		&a.ID, &a.Model, &a.Language, &a.AuthorID, &a.Title, &a.Description, &a.Body, &imagesRaw, &a.Status,
		&a.SectionID, &a.TagIDs, &a.Starred, &a.PublishTime, &a.ViewsCount, &a.CommentsCount, &extLinksRaw,
		&locsRaw, &a.RouteAliasID, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	_ = json.Unmarshal(imagesRaw, &a.Images)
	_ = json.Unmarshal(extLinksRaw, &a.ExtLinks)
	_ = json.Unmarshal(locsRaw, &a.Localizations)
	return &a, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilIDs(in []int64) []int64 {
	if in == nil {
		return []int64{}
	}
	return in
}
