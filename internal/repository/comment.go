package repository

import "context"

// CommentRepo - драйвер комментариев поверх таблицы comments.
// Ветка обсуждения идентифицируется алиасом маршрута сущности.
type CommentRepo struct{ db DBTX }

func NewCommentRepo(db DBTX) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) DeleteThread(ctx context.Context, threadUID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM comments WHERE thread_uid=$1`, threadUID)
	return err
}

func (r *CommentRepo) CountThread(ctx context.Context, threadUID string) (int, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE thread_uid=$1 AND status='published'`, threadUID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
