package repository

import (
	"context"

	"cmsarticle/internal/models"
)

type RouteAliasRepo interface {
	Create(ctx context.Context, ra *models.RouteAlias) error
	GetByID(ctx context.Context, id int64) (*models.RouteAlias, error)
	Exists(ctx context.Context, alias string) (bool, error)
	Rename(ctx context.Context, id int64, alias string) error
	Delete(ctx context.Context, id int64) error
}

type routeAliasRepo struct{ db DBTX }

func NewRouteAliasRepo(db DBTX) RouteAliasRepo { return &routeAliasRepo{db: db} }

func (r *routeAliasRepo) Create(ctx context.Context, ra *models.RouteAlias) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO route_aliases (language, alias, target) VALUES ($1,$2,$3) RETURNING id, created_at`,
		ra.Language, ra.Alias, ra.Target,
	).Scan(&ra.ID, &ra.CreatedAt)
}

func (r *routeAliasRepo) GetByID(ctx context.Context, id int64) (*models.RouteAlias, error) {
	var ra models.RouteAlias
	err := r.db.QueryRow(ctx,
		`SELECT id, language, alias, target, created_at FROM route_aliases WHERE id=$1`, id,
	).Scan(&ra.ID, &ra.Language, &ra.Alias, &ra.Target, &ra.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &ra, nil
}

func (r *routeAliasRepo) Exists(ctx context.Context, alias string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM route_aliases WHERE alias=$1)`, alias).Scan(&exists)
	return exists, err
}

func (r *routeAliasRepo) Rename(ctx context.Context, id int64, alias string) error {
	return affected(r.db.Exec(ctx, `UPDATE route_aliases SET alias=$1 WHERE id=$2`, alias, id))
}

func (r *routeAliasRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM route_aliases WHERE id=$1`, id))
}
