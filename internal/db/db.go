package db

import (
	"context"
	"fmt"

	"cmsarticle/internal/config"
	"cmsarticle/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresConnection(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := cfg.GetDSN()
	pool, err := pgxpool.New(context.Background(), dsn)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return pool, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate создаёт таблицы, если их ещё нет.
func Migrate(ctx context.Context, conn execer) error {
	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// indexedFields - поля, по которым строятся индексы (по возрастанию) для каждой модели.
var indexedFields = []struct {
	field  models.FieldSet
	column string
}{
	{models.FieldPublishTime, "publish_time"},
	{models.FieldSection, "section_id"},
	{models.FieldStarred, "starred"},
	{models.FieldViewsCount, "views_count"},
	{models.FieldCommentsCount, "comments_count"},
}

// IndexStatements - частичные индексы по полям модели (WHERE model = ...).
func IndexStatements(m models.ContentModel) []string {
	var out []string
	for _, f := range indexedFields {
		if !m.Has(f.field) {
			continue
		}
		out = append(out, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_content_%s_%s ON content (%s ASC) WHERE model = '%s'",
			m.Name, f.column, f.column, m.Name,
		))
	}
	if m.Has(models.FieldTags) {
		out = append(out, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_content_%s_tags ON content USING GIN (tags) WHERE model = '%s'",
			m.Name, m.Name,
		))
	}
	if m.FullText {
		out = append(out, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_content_%s_fts ON content USING GIN "+
				"(to_tsvector('simple', title || ' ' || description || ' ' || body)) WHERE model = '%s'",
			m.Name, m.Name,
		))
	}
	return out
}

// EnsureIndexes строит индексы для всех моделей. Имена моделей проверены при загрузке конфига.
func EnsureIndexes(ctx context.Context, conn execer, ms []models.ContentModel) error {
	for _, m := range ms {
		if !models.ValidModelName(m.Name) {
			return fmt.Errorf("invalid model name %q", m.Name)
		}
		for _, stmt := range IndexStatements(m) {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("model %s: %w", m.Name, err)
			}
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS sections (
    id         BIGSERIAL PRIMARY KEY,
    language   TEXT NOT NULL,
    title      TEXT NOT NULL,
    alias      TEXT NOT NULL,
    sort_order INT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (language, alias)
);

CREATE TABLE IF NOT EXISTS tags (
    id         BIGSERIAL PRIMARY KEY,
    language   TEXT NOT NULL,
    title      TEXT NOT NULL,
    alias      TEXT NOT NULL,
    weight     INT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (language, alias)
);

CREATE TABLE IF NOT EXISTS route_aliases (
    id         BIGSERIAL PRIMARY KEY,
    language   TEXT NOT NULL,
    alias      TEXT NOT NULL UNIQUE,
    target     TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS content (
    id             BIGSERIAL PRIMARY KEY,
    model          TEXT NOT NULL,
    language       TEXT NOT NULL,
    author_id      BIGINT,
    title          TEXT NOT NULL,
    description    TEXT NOT NULL DEFAULT '',
    body           TEXT NOT NULL DEFAULT '',
    images         JSONB NOT NULL DEFAULT '[]',
    status         TEXT NOT NULL DEFAULT 'published',
    section_id     BIGINT REFERENCES sections(id),
    tags           BIGINT[] NOT NULL DEFAULT '{}',
    starred        BOOLEAN NOT NULL DEFAULT FALSE,
    publish_time   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    views_count    INT NOT NULL DEFAULT 0,
    comments_count INT NOT NULL DEFAULT 0,
    ext_links      JSONB NOT NULL DEFAULT '[]',
    localizations  JSONB NOT NULL DEFAULT '{}',
    route_alias_id BIGINT REFERENCES route_aliases(id) ON DELETE SET NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_content_model_language ON content (model, language);

CREATE TABLE IF NOT EXISTS comments (
    id         BIGSERIAL PRIMARY KEY,
    thread_uid TEXT NOT NULL,
    author_id  BIGINT,
    body       TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'published',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_comments_thread ON comments (thread_uid);
`
