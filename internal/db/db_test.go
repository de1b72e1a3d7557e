package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"cmsarticle/internal/models"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexStatements(t *testing.T) {
	page := models.ContentModel{Name: "page", Fields: models.FieldSection | models.FieldImages}
	assert.Equal(t, []string{
		"CREATE INDEX IF NOT EXISTS idx_content_page_section_id ON content (section_id ASC) WHERE model = 'page'",
	}, IndexStatements(page))

	stmts := IndexStatements(models.DefaultArticleModel())
	assert.Len(t, stmts, 7)
	assert.Contains(t, stmts[len(stmts)-2], "USING GIN (tags)")
	assert.Contains(t, stmts[len(stmts)-1], "to_tsvector('simple'")
}

func TestEnsureIndexes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("idx_content_page_section_id")).
		WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	page := models.ContentModel{Name: "page", Fields: models.FieldSection}
	require.NoError(t, EnsureIndexes(context.Background(), mock, []models.ContentModel{page}))
	assert.NoError(t, mock.ExpectationsWereMet())

	err = EnsureIndexes(context.Background(), mock, []models.ContentModel{{Name: "bad'; drop"}})
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sections").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	require.NoError(t, Migrate(context.Background(), mock))

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sections").
		WillReturnError(errors.New("permission denied"))
	err = Migrate(context.Background(), mock)
	assert.ErrorContains(t, err, "apply schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}
