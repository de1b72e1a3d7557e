package repository

import (
	"context"

	"cmsarticle/internal/models"
)

// ----- Sections -----

type SectionRepo interface {
	Create(ctx context.Context, s *models.Section) error
	GetByID(ctx context.Context, id int64) (*models.Section, error)
	ListByLanguage(ctx context.Context, lang string) ([]*models.Section, error)
	AliasExists(ctx context.Context, lang, alias string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type sectionRepo struct{ db DBTX }

func NewSectionRepo(db DBTX) SectionRepo { return &sectionRepo{db: db} }

func (r *sectionRepo) Create(ctx context.Context, s *models.Section) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO sections (language, title, alias, sort_order) VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at, updated_at`,
		s.Language, s.Title, s.Alias, s.Order,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *sectionRepo) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	var s models.Section
	err := r.db.QueryRow(ctx,
		`SELECT id, language, title, alias, sort_order, created_at, updated_at FROM sections WHERE id=$1`, id,
	).Scan(&s.ID, &s.Language, &s.Title, &s.Alias, &s.Order, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *sectionRepo) ListByLanguage(ctx context.Context, lang string) ([]*models.Section, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, language, title, alias, sort_order, created_at, updated_at
		 FROM sections WHERE language=$1 ORDER BY sort_order, id`, lang)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Language, &s.Title, &s.Alias, &s.Order, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Для разделов - уникальность alias в рамках языка
func (r *sectionRepo) AliasExists(ctx context.Context, lang, alias string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sections WHERE language=$1 AND alias=$2)`, lang, alias).Scan(&exists)
	return exists, err
}

func (r *sectionRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM sections WHERE id=$1`, id))
}

// ----- Tags -----

type TagRepo interface {
	Create(ctx context.Context, t *models.Tag) error
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Tag, error)
	ListByLanguage(ctx context.Context, lang string, limit int) ([]*models.Tag, error)
	ListAll(ctx context.Context) ([]*models.Tag, error)
	Random(ctx context.Context, lang string, n int) ([]*models.Tag, error)
	AliasExists(ctx context.Context, lang, alias string) (bool, error)
	UpdateWeight(ctx context.Context, id int64, weight int) error
	Delete(ctx context.Context, id int64) error
}

type tagRepo struct{ db DBTX }

func NewTagRepo(db DBTX) TagRepo { return &tagRepo{db: db} }

const tagColumns = `id, language, title, alias, weight, created_at, updated_at`

func (r *tagRepo) Create(ctx context.Context, t *models.Tag) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tags (language, title, alias, weight) VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at, updated_at`,
		t.Language, t.Title, t.Alias, t.Weight,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *tagRepo) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var t models.Tag
	err := r.db.QueryRow(ctx, `SELECT `+tagColumns+` FROM tags WHERE id=$1`, id).
		Scan(&t.ID, &t.Language, &t.Title, &t.Alias, &t.Weight, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// GetByIDs сохраняет порядок ids; отсутствующие теги пропускаются.
func (r *tagRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	list, err := r.list(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Tag, len(list))
	for _, t := range list {
		byID[t.ID] = t
	}
	out := make([]*models.Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *tagRepo) ListByLanguage(ctx context.Context, lang string, limit int) ([]*models.Tag, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.list(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE language=$1 ORDER BY weight DESC, title LIMIT $2`, lang, limit)
}

func (r *tagRepo) ListAll(ctx context.Context) ([]*models.Tag, error) {
	return r.list(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY id`)
}

func (r *tagRepo) Random(ctx context.Context, lang string, n int) ([]*models.Tag, error) {
	return r.list(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE language=$1 ORDER BY random() LIMIT $2`, lang, n)
}

func (r *tagRepo) AliasExists(ctx context.Context, lang, alias string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tags WHERE language=$1 AND alias=$2)`, lang, alias).Scan(&exists)
	return exists, err
}

func (r *tagRepo) UpdateWeight(ctx context.Context, id int64, weight int) error {
	return affected(r.db.Exec(ctx, `UPDATE tags SET weight=$1, updated_at=NOW() WHERE id=$2`, weight, id))
}

func (r *tagRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM tags WHERE id=$1`, id))
}

func (r *tagRepo) list(ctx context.Context, q string, args ...any) ([]*models.Tag, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Language, &t.Title, &t.Alias, &t.Weight, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
