package quotes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/client/repositories/sqlitetest"
	"github.com/pratish444/QuoteVault/internal/common"
)

func quote(id, category string, created int64) models.Quote {
	return models.Quote{
		ID:        id,
		Text:      "text " + id,
		Author:    "author " + id,
		Category:  category,
		CreatedAt: time.UnixMilli(created),
	}
}

func TestUpsertAll_InsertThenReplace(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	ctx := context.Background()

	q := quote("q1", "Love", 1000)
	q.Source = "book"
	require.NoError(t, r.UpsertAll(ctx, []models.Quote{q}))

	got, err := r.GetByID(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "book", got.Source)
	assert.True(t, q.CreatedAt.Equal(got.CreatedAt))

	q.Text = "changed"
	q.Source = ""
	require.NoError(t, r.UpsertAll(ctx, []models.Quote{q}))

	got, err = r.GetByID(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Text)
	assert.Equal(t, "", got.Source)
}

func TestUpsertAll_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	ctx := context.Background()

	batch := []models.Quote{quote("a", "Love", 1), quote("b", "Humor", 2)}
	require.NoError(t, r.UpsertAll(ctx, batch))
	first, err := r.Page(ctx, "", 10, 0)
	require.NoError(t, err)

	require.NoError(t, r.UpsertAll(ctx, batch))
	second, err := r.Page(ctx, "", 10, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	n, err := r.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUpsertAll_Empty(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	require.NoError(t, r.UpsertAll(context.Background(), nil))
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	_, err := r.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPage_NewestFirstWithCategoryFilter(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	ctx := context.Background()

	var batch []models.Quote
	for i := 0; i < 45; i++ {
		cat := "Love"
		if i%3 == 0 {
			cat = "Wisdom"
		}
		batch = append(batch, quote(fmt.Sprintf("q%02d", i), cat, int64(i*1000)))
	}
	require.NoError(t, r.UpsertAll(ctx, batch))

	page, err := r.Page(ctx, models.CategoryAll, 20, 0)
	require.NoError(t, err)
	require.Len(t, page, 20)
	assert.Equal(t, "q44", page[0].ID)
	for i := 1; i < len(page); i++ {
		assert.True(t, page[i-1].CreatedAt.After(page[i].CreatedAt))
	}

	last, err := r.Page(ctx, "", 20, 40)
	require.NoError(t, err)
	assert.Len(t, last, 5)

	wisdom, err := r.Page(ctx, "Wisdom", 100, 0)
	require.NoError(t, err)
	assert.Len(t, wisdom, 15)
	for _, q := range wisdom {
		assert.Equal(t, "Wisdom", q.Category)
	}

	n, err := r.Count(ctx, "Wisdom")
	require.NoError(t, err)
	assert.Equal(t, 15, n)
}

func TestPage_TiesBrokenByID(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	ctx := context.Background()

	require.NoError(t, r.UpsertAll(ctx, []models.Quote{quote("a", "Love", 5), quote("b", "Love", 5)}))
	page, err := r.Page(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].ID)
	assert.Equal(t, "a", page[1].ID)
}

func TestPage_NonPositiveLimit(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	page, err := r.Page(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestSearch_MatchesTextOrAuthor(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	ctx := context.Background()

	require.NoError(t, r.UpsertAll(ctx, []models.Quote{
		{ID: "1", Text: "Stay hungry", Author: "Jobs", Category: "Success", CreatedAt: time.UnixMilli(1)},
		{ID: "2", Text: "Be yourself", Author: "Oscar Wilde", Category: "Wisdom", CreatedAt: time.UnixMilli(2)},
		{ID: "3", Text: "100% effort", Author: "Anon", Category: "Humor", CreatedAt: time.UnixMilli(3)},
	}))

	got, err := r.Search(ctx, "hungry")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = r.Search(ctx, "wilde")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got, err = r.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	got, err = r.SearchByAuthor(ctx, "hungry")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.SearchByAuthor(ctx, "Jobs")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRandom(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	ctx := context.Background()

	_, err := r.Random(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.UpsertAll(ctx, []models.Quote{quote("only", "Love", 1)}))
	q, err := r.Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, "only", q.ID)
}

func TestCategories_DistinctSorted(t *testing.T) {
	r := NewSQLiteRepository(sqlitetest.Open(t))
	ctx := context.Background()

	cats, err := r.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	require.NoError(t, r.UpsertAll(ctx, []models.Quote{
		quote("1", "Wisdom", 1), quote("2", "Love", 2), quote("3", "Wisdom", 3),
	}))
	cats, err = r.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Love", "Wisdom"}, cats)
}

func TestGetByID_DBErrorWrapped(t *testing.T) {
	db := sqlitetest.Open(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.GetByID(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get quote k")
}
