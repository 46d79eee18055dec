package transfers_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/transfers"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
)

const companyID = "11111111-1111-1111-1111-111111111111"
const userID = "22222222-2222-2222-2222-222222222222"
const bodegaID = "55555555-5555-5555-5555-555555555555"
const tiendaID = "66666666-6666-6666-6666-666666666666"

func newUseCase(store *memory.Store) *transfers.UseCase {
	return transfers.NewUseCase(memory.NewTxRunner(store), store.Repos().Transfers)
}

func seedProductWithInventory(t *testing.T, store *memory.Store, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Lija fina",
		Stock:     decimal.NewFromInt(stock),
		IsActive:  true,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	require.NoError(t, store.Repos().Inventory.Set(&entity.LocationInventory{
		CompanyID:  companyID,
		ProductID:  p.ID,
		LocationID: bodegaID,
		Quantity:   decimal.NewFromInt(stock),
	}))
	return p
}

func TestCreate_ValidacionesYConsecutivo(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProductWithInventory(t, store, 10)

	tr, err := uc.Create(companyID, userID, dto.CreateTransferRequest{
		ProductID:      p.ID,
		FromLocationID: bodegaID,
		ToLocationID:   tiendaID,
		Quantity:       decimal.NewFromInt(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "TRF-00001", tr.TransferNumber)
	assert.Equal(t, entity.TransferStatusPending, tr.Status)

	// mismo origen y destino
	_, err = uc.Create(companyID, userID, dto.CreateTransferRequest{
		ProductID:      p.ID,
		FromLocationID: bodegaID,
		ToLocationID:   bodegaID,
		Quantity:       decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cantidad no positiva
	_, err = uc.Create(companyID, userID, dto.CreateTransferRequest{
		ProductID:      p.ID,
		FromLocationID: bodegaID,
		ToLocationID:   tiendaID,
		Quantity:       decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplete_MueveProyeccionSinCambiarAgregado(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProductWithInventory(t, store, 10)

	tr, err := uc.Create(companyID, userID, dto.CreateTransferRequest{
		ProductID:      p.ID,
		FromLocationID: bodegaID,
		ToLocationID:   tiendaID,
		Quantity:       decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	got, err := uc.Complete(context.Background(), companyID, userID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)

	origen, _ := store.Repos().Inventory.Get(companyID, p.ID, bodegaID)
	destino, _ := store.Repos().Inventory.Get(companyID, p.ID, tiendaID)
	require.NotNil(t, origen)
	require.NotNil(t, destino)
	assert.True(t, origen.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, destino.Quantity.Equal(decimal.NewFromInt(4)))

	// conservación: la suma por ubicaciones y el agregado no cambian
	sum, _ := store.Repos().Inventory.SumByProduct(companyID, p.ID)
	assert.True(t, sum.Equal(decimal.NewFromInt(10)))
	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)))

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	require.Len(t, movs, 1, "exactamente un movimiento transfer")
	assert.Equal(t, entity.MovementTypeTransfer, movs[0].Type)
	assert.Equal(t, tr.TransferNumber, movs[0].Reference)
}

func TestComplete_DosVecesRechazado(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProductWithInventory(t, store, 10)

	tr, err := uc.Create(companyID, userID, dto.CreateTransferRequest{
		ProductID:      p.ID,
		FromLocationID: bodegaID,
		ToLocationID:   tiendaID,
		Quantity:       decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), companyID, userID, tr.ID)
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), companyID, userID, tr.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	origen, _ := store.Repos().Inventory.Get(companyID, p.ID, bodegaID)
	assert.True(t, origen.Quantity.Equal(decimal.NewFromInt(6)), "el segundo intento no vuelve a mover")
}

func TestComplete_OrigenSinFilaQuedaNegativo(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-sin-fila",
		Name:      "Brocha 2in",
		Stock:     decimal.NewFromInt(5),
		IsActive:  true,
	}
	require.NoError(t, store.Repos().Products.Create(p))

	tr, err := uc.Create(companyID, userID, dto.CreateTransferRequest{
		ProductID:      p.ID,
		FromLocationID: bodegaID,
		ToLocationID:   tiendaID,
		Quantity:       decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), companyID, userID, tr.ID)
	require.NoError(t, err)

	origen, _ := store.Repos().Inventory.Get(companyID, p.ID, bodegaID)
	require.NotNil(t, origen)
	assert.True(t, origen.Quantity.Equal(decimal.NewFromInt(-3)), "el upsert de delta crea la fila en negativo")
}
