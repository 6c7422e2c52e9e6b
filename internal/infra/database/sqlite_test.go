package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

func openTestSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, MigrateSQLite(context.Background(), db))
	return db
}

func TestSQLiteQuoteRoundTrip(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	q := sampleQuote()
	require.NoError(t, (&SQLiteQuoteRepository{DB: db}).Create(ctx, q))

	var vehicleMake sql.NullString
	var model sql.NullString
	var consent bool
	err := db.QueryRowContext(ctx,
		`SELECT vehicle_make, vehicle_model, consent FROM quotes WHERE id = ?`, q.ID,
	).Scan(&vehicleMake, &model, &consent)
	require.NoError(t, err)
	assert.Equal(t, "Honda", vehicleMake.String)
	assert.False(t, model.Valid, "empty optional fields are stored as NULL")
	assert.True(t, consent)

	assert.Error(t, (&SQLiteQuoteRepository{DB: db}).Create(ctx, q), "ids are unique")
}

func TestSQLiteContactCreate(t *testing.T) {
	db := openTestSQLite(t)
	m := &entity.ContactMessage{ID: "c-1", Name: "Jo", Email: "jo@example.com", Phone: "5551234567", Message: "Call me back please", ReceivedAt: receivedAt}

	require.NoError(t, (&SQLiteContactRepository{DB: db}).Create(context.Background(), m))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLitePosts(t *testing.T) {
	db := openTestSQLite(t)
	repo := &SQLitePostRepository{DB: db}
	ctx := context.Background()

	older := &entity.Post{PostMeta: entity.PostMeta{
		Slug: "bundle-and-save", Title: "Bundle and Save", PublishedDate: "2025-01-10",
		Author: "TGI Agency Team", Category: entity.CategoryCostSavings, Tags: []string{"bundling"},
	}, Body: "Bundle your policies."}
	newer := &entity.Post{PostMeta: entity.PostMeta{
		Slug: "raise-deductible", Title: "Raise Your Deductible", PublishedDate: "2025-05-02",
		Author: "TGI Agency Team", Category: entity.CategoryCostSavings,
	}, Body: "A higher deductible lowers premiums."}
	other := &entity.Post{PostMeta: entity.PostMeta{
		Slug: "bop-explained", Title: "BOP Explained", PublishedDate: "2025-03-01",
		Author: "TGI Agency Team", Category: entity.CategoryBusiness,
	}}
	for _, p := range []*entity.Post{older, newer, other} {
		require.NoError(t, repo.Save(ctx, p))
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "raise-deductible", all[0].Slug)

	savings, err := repo.List(ctx, entity.CategoryCostSavings)
	require.NoError(t, err)
	require.Len(t, savings, 2)
	assert.Equal(t, []string{}, savings[0].Tags)

	got, err := repo.FindBySlug(ctx, "bundle-and-save")
	require.NoError(t, err)
	assert.Equal(t, "Bundle your policies.", got.Body)
	assert.Equal(t, []string{"bundling"}, got.Tags)

	_, err = repo.FindBySlug(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrPostNotFound)
}
