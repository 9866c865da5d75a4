package tables

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/phonedeck/phonedeck-backend/pkg/db/models"
)

func setupTablesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS price_tables (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  exposure_start_date DATETIME NOT NULL,
  exposure_end_date DATETIME NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME,
  deletion_reason TEXT
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  table_id TEXT NOT NULL REFERENCES price_tables (id)
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newStoredTable(t *testing.T, repo *Repository, storeID uuid.UUID, name string) *models.PriceTable {
	t.Helper()
	start, _ := time.Parse("2006-01-02", "2026-03-01")
	end, _ := time.Parse("2006-01-02", "2026-03-31")
	table, err := repo.Create(context.Background(), &models.PriceTable{
		ID:                uuid.New(),
		StoreID:           storeID,
		Name:              name,
		ExposureStartDate: start,
		ExposureEndDate:   end,
		IsActive:          true,
	})
	require.NoError(t, err)
	return table
}

func TestRepositorySoftDeleteAndRestore(t *testing.T) {
	repo := NewRepository(setupTablesTestDB(t))
	ctx := context.Background()
	table := newStoredTable(t, repo, uuid.New(), "march")

	deletedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.SoftDelete(ctx, table.ID, "seasonal cleanup", deletedAt))

	loaded, err := repo.FindByID(ctx, table.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsActive)
	require.NotNil(t, loaded.DeletedAt)
	require.NotNil(t, loaded.DeletionReason)
	assert.Equal(t, "seasonal cleanup", *loaded.DeletionReason)

	require.NoError(t, repo.Restore(ctx, table.ID))

	restored, err := repo.FindByID(ctx, table.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
	assert.Nil(t, restored.DeletedAt)
	assert.Nil(t, restored.DeletionReason)
}

func TestRepositoryListByStoreIncludesDeleted(t *testing.T) {
	repo := NewRepository(setupTablesTestDB(t))
	ctx := context.Background()
	storeID := uuid.New()

	kept := newStoredTable(t, repo, storeID, "kept")
	removed := newStoredTable(t, repo, storeID, "removed")
	newStoredTable(t, repo, uuid.New(), "other-store")

	require.NoError(t, repo.SoftDelete(ctx, removed.ID, "", time.Now().UTC()))

	rows, err := repo.ListByStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ids := []uuid.UUID{rows[0].ID, rows[1].ID}
	assert.Contains(t, ids, kept.ID)
	assert.Contains(t, ids, removed.ID)
}

func TestRepositoryPurgeDeletedBefore(t *testing.T) {
	repo := NewRepository(setupTablesTestDB(t))
	ctx := context.Background()
	storeID := uuid.New()

	stale := newStoredTable(t, repo, storeID, "stale")
	fresh := newStoredTable(t, repo, storeID, "fresh")
	live := newStoredTable(t, repo, storeID, "live")

	now := time.Now().UTC()
	require.NoError(t, repo.SoftDelete(ctx, stale.ID, "", now.AddDate(-2, 0, 0)))
	require.NoError(t, repo.SoftDelete(ctx, fresh.ID, "", now.AddDate(0, 0, -10)))

	purged, err := repo.PurgeDeletedBefore(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.FindByID(ctx, stale.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, id := range []uuid.UUID{fresh.ID, live.ID} {
		_, err = repo.FindByID(ctx, id)
		assert.NoError(t, err)
	}
}

func TestRepositoryPurgeSkipsTablesWithProducts(t *testing.T) {
	db := setupTablesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	referenced := newStoredTable(t, repo, storeID, "referenced")
	empty := newStoredTable(t, repo, storeID, "empty")

	// A product restored after the table's cascade delete still points at it.
	require.NoError(t, db.Exec(
		"INSERT INTO products (id, table_id) VALUES (?, ?)",
		uuid.NewString(), referenced.ID.String(),
	).Error)

	now := time.Now().UTC()
	require.NoError(t, repo.SoftDelete(ctx, referenced.ID, "", now.AddDate(-2, 0, 0)))
	require.NoError(t, repo.SoftDelete(ctx, empty.ID, "", now.AddDate(-2, 0, 0)))

	purged, err := repo.PurgeDeletedBefore(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.FindByID(ctx, empty.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	kept, err := repo.FindByID(ctx, referenced.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept.DeletedAt)

	// Once the referencing row is gone the next run removes the table.
	require.NoError(t, db.Exec("DELETE FROM products WHERE table_id = ?", referenced.ID.String()).Error)
	purged, err = repo.PurgeDeletedBefore(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
