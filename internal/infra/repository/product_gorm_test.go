package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/testutil"
)

func TestProductRepository_Upsert(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "Asia/Kolkata")
	ctx := context.Background()
	repo := NewProductGormRepository(db)

	_, err := repo.UpsertProducts(ctx, salon.ID, []models.Product{
		{Name: "Shampoo", HSNCode: "3305", Unit: "BTL", Stock: 4},
	}, true)
	require.NoError(t, err)

	_, err = repo.UpsertProducts(ctx, salon.ID, []models.Product{
		{Name: "Shampoo", HSNCode: "3305", Unit: "PCS", Stock: 99},
		{Name: "Wax", HSNCode: "3401", Unit: "JAR"},
	}, false)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	p, err := repo.FindByIdentity(ctx, salon.ID, "Shampoo", "3305")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "PCS", p.Unit)
	assert.Equal(t, 4.0, p.Stock)

	missing, err := repo.FindByIdentity(ctx, salon.ID, "Gel", "")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
