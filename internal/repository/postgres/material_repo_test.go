package postgres_test

import (
	"context"
	"testing"

	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/repository/postgres"
	"github.com/andref/albion-market/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialRepository_ReplaceForItem(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMaterialRepository(testDB.DB)
	ctx := context.Background()

	bag := testutil.NewItemBuilder().WithUniqueName("T4_BAG").Build(t, testDB.DB)
	leather := testutil.NewItemBuilder().WithUniqueName("T4_LEATHER").AsResource().Build(t, testDB.DB)
	cloth := testutil.NewItemBuilder().WithUniqueName("T4_CLOTH").AsResource().Build(t, testDB.DB)

	err := repo.ReplaceForItem(ctx, bag.ID, []*domain.ItemMaterial{
		{MaterialID: leather.ID, Amount: 16},
		{MaterialID: cloth.ID, Amount: 8},
	})
	require.NoError(t, err)

	edges, err := repo.GetForItem(ctx, bag.ID)
	require.NoError(t, err)
	assert.Len(t, edges, 2)

	// Re-processing replaces the edge set, it never merges with old edges.
	err = repo.ReplaceForItem(ctx, bag.ID, []*domain.ItemMaterial{
		{MaterialID: leather.ID, Amount: 24},
	})
	require.NoError(t, err)

	edges, err = repo.GetForItem(ctx, bag.ID)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, leather.ID, edges[0].MaterialID)
	assert.Equal(t, 24, edges[0].Amount)
	require.NotNil(t, edges[0].Material)
	assert.Equal(t, "T4_LEATHER", edges[0].Material.UniqueName)
}

func TestMaterialRepository_ReplaceWithEmptyClears(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMaterialRepository(testDB.DB)
	ctx := context.Background()

	bag := testutil.NewItemBuilder().WithUniqueName("T4_BAG").Build(t, testDB.DB)
	leather := testutil.NewItemBuilder().WithUniqueName("T4_LEATHER").AsResource().Build(t, testDB.DB)

	require.NoError(t, repo.ReplaceForItem(ctx, bag.ID, []*domain.ItemMaterial{
		{MaterialID: leather.ID, Amount: 16},
	}))
	require.NoError(t, repo.ReplaceForItem(ctx, bag.ID, nil))

	edges, err := repo.GetForItem(ctx, bag.ID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}
