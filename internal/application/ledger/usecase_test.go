package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
)

const companyID = "11111111-1111-1111-1111-111111111111"
const userID = "22222222-2222-2222-2222-222222222222"

func seedProduct(t *testing.T, store *memory.Store, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Tornillo 3/8",
		Stock:     decimal.NewFromInt(stock),
		Cost:      decimal.NewFromInt(10),
		Price:     decimal.NewFromInt(15),
		IsActive:  true,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func TestRegisterMovement_EntradaYSalida(t *testing.T) {
	store := memory.NewStore()
	svc := ledger.NewService(memory.NewTxRunner(store), store.Repos().Movements)
	p := seedProduct(t, store, 0)

	_, err := svc.RegisterMovement(context.Background(), companyID, userID, ledger.MovementInput{
		ProductID: p.ID,
		Type:      entity.MovementTypeIn,
		Quantity:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.RegisterMovement(context.Background(), companyID, userID, ledger.MovementInput{
		ProductID: p.ID,
		Type:      entity.MovementTypeOut,
		Quantity:  decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	got, err := store.Repos().Products.GetByID(companyID, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(7)), "stock = entradas - salidas, obtuvo %s", got.Stock)

	movs, err := svc.List(companyID, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	// más recientes primero
	assert.Equal(t, entity.MovementTypeOut, movs[0].Type)
}

func TestRegisterMovement_CantidadInvalida(t *testing.T) {
	store := memory.NewStore()
	svc := ledger.NewService(memory.NewTxRunner(store), store.Repos().Movements)
	p := seedProduct(t, store, 5)

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-4)} {
		_, err := svc.RegisterMovement(context.Background(), companyID, userID, ledger.MovementInput{
			ProductID: p.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	got, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(5)), "entradas rechazadas no deben tocar el stock")
}

func TestRegisterMovement_TipoNoManual(t *testing.T) {
	store := memory.NewStore()
	svc := ledger.NewService(memory.NewTxRunner(store), store.Repos().Movements)
	p := seedProduct(t, store, 5)

	// adjustment y transfer tienen sus propios flujos de documento
	for _, typ := range []string{entity.MovementTypeAdjustment, entity.MovementTypeTransfer} {
		_, err := svc.RegisterMovement(context.Background(), companyID, userID, ledger.MovementInput{
			ProductID: p.ID,
			Type:      typ,
			Quantity:  decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	store := memory.NewStore()
	svc := ledger.NewService(memory.NewTxRunner(store), store.Repos().Movements)

	_, err := svc.RegisterMovement(context.Background(), companyID, userID, ledger.MovementInput{
		ProductID: uuid.New().String(),
		Type:      entity.MovementTypeIn,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := svc.List(companyID, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs, "un registro fallido no debe dejar movimiento")
}

func TestRecord_AjusteNegativoPermiteStockNegativo(t *testing.T) {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	p := seedProduct(t, store, 2)

	err := tx.Run(context.Background(), func(r *ledger.Repos) error {
		_, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
			ProductID: p.ID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  decimal.NewFromInt(-5),
		})
		return err
	})
	require.NoError(t, err)

	got, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(-3)), "el ajuste aplica el delta con signo")

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(5)), "el movimiento persiste la magnitud")
}

func TestRecord_TransferNoCambiaAgregado(t *testing.T) {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	p := seedProduct(t, store, 9)

	err := tx.Run(context.Background(), func(r *ledger.Repos) error {
		_, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
			ProductID: p.ID,
			Type:      entity.MovementTypeTransfer,
			Quantity:  decimal.NewFromInt(4),
		})
		return err
	})
	require.NoError(t, err)

	got, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(9)), "un traslado no cambia el stock agregado")
}
