package adjustments_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/adjustments"
	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
)

const companyID = "11111111-1111-1111-1111-111111111111"
const userID = "22222222-2222-2222-2222-222222222222"

func newUseCase(store *memory.Store) *adjustments.UseCase {
	return adjustments.NewUseCase(memory.NewTxRunner(store), store.Repos().Adjustments)
}

func seedProduct(t *testing.T, store *memory.Store, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Cinta métrica 5m",
		Stock:     decimal.NewFromInt(stock),
		IsActive:  true,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func TestCreate_AplicaDeltaYRegistraMovimiento(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 10)

	adj, err := uc.Create(context.Background(), companyID, userID, dto.CreateAdjustmentRequest{
		ProductID:      p.ID,
		AdjustmentType: entity.AdjustmentTypeDamage,
		Quantity:       decimal.NewFromInt(-3),
		Reason:         "caja aplastada en bodega",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(adj.Reference, "ADJ-"), "referencia generada por defecto")

	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(7)))

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(3)), "el ledger guarda la magnitud")

	list, err := uc.List(companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 10)

	cases := []dto.CreateAdjustmentRequest{
		{ProductID: "", AdjustmentType: entity.AdjustmentTypeDamage, Quantity: decimal.NewFromInt(1)},
		{ProductID: p.ID, AdjustmentType: "regalo", Quantity: decimal.NewFromInt(1)},
		{ProductID: p.ID, AdjustmentType: entity.AdjustmentTypeDamage, Quantity: decimal.Zero},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), companyID, userID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)), "los rechazos no tocan el stock")
}

func TestCreate_ProductoInexistenteHaceRollback(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	_, err := uc.Create(context.Background(), companyID, userID, dto.CreateAdjustmentRequest{
		ProductID:      uuid.New().String(),
		AdjustmentType: entity.AdjustmentTypeWriteOff,
		Quantity:       decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	adjs, _ := store.Repos().Adjustments.List(companyID, 0, 0)
	assert.Empty(t, adjs, "no queda documento de ajuste")
}
