package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/usecase"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
)

func TestUpsert_CantidadNegativaRechazada(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewInventoryUseCase(store.Repos().Inventory)

	_, err := uc.Upsert(companyID, dto.UpsertInventoryRequest{
		ProductID:  uuid.New().String(),
		LocationID: uuid.New().String(),
		Quantity:   decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListInventory_FilasLlevanTotalDelProducto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewInventoryUseCase(store.Repos().Inventory)
	productID := uuid.New().String()
	bodega := uuid.New().String()
	tienda := uuid.New().String()

	_, err := uc.Upsert(companyID, dto.UpsertInventoryRequest{
		ProductID: productID, LocationID: bodega, Quantity: decimal.NewFromInt(7),
	})
	require.NoError(t, err)
	row, err := uc.Upsert(companyID, dto.UpsertInventoryRequest{
		ProductID: productID, LocationID: tienda, Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.True(t, row.ProductTotal.Equal(decimal.NewFromInt(10)), "la fila reporta la suma en todas las ubicaciones")

	rows, err := uc.List(companyID, dto.PageRequest{Limit: 20})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.ProductTotal.Equal(decimal.NewFromInt(10)))
	}

	porUbicacion, err := uc.ListByLocation(companyID, bodega)
	require.NoError(t, err)
	require.Len(t, porUbicacion, 1)
	assert.True(t, porUbicacion[0].Quantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, porUbicacion[0].ProductTotal.Equal(decimal.NewFromInt(10)))
}
