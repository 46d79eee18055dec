package sales_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/sales"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
)

const companyID = "11111111-1111-1111-1111-111111111111"
const userID = "22222222-2222-2222-2222-222222222222"
const customerID = "44444444-4444-4444-4444-444444444444"

func newUseCase(store *memory.Store) *sales.UseCase {
	return sales.NewUseCase(memory.NewTxRunner(store), store.Repos().SalesOrders)
}

func seedProduct(t *testing.T, store *memory.Store, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Pintura blanca 1gal",
		Stock:     decimal.NewFromInt(stock),
		Price:     decimal.NewFromInt(80),
		IsActive:  true,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func createOrder(t *testing.T, uc *sales.UseCase, productID string, qty int64) *dto.SalesOrderResponse {
	t.Helper()
	order, err := uc.Create(companyID, userID, dto.CreateSalesOrderRequest{
		CustomerID: customerID,
		Items: []dto.CreateOrderItemRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(80)},
		},
	})
	require.NoError(t, err)
	return order
}

func setStatus(t *testing.T, uc *sales.UseCase, id, status string) *dto.SalesOrderResponse {
	t.Helper()
	got, err := uc.UpdateStatus(context.Background(), companyID, userID, id, dto.UpdateStatusRequest{Status: status})
	require.NoError(t, err)
	return got
}

func TestCreate_ConsecutivoYTotales(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 100)

	order := createOrder(t, uc, p.ID, 5)
	assert.Equal(t, "SO-00001", order.OrderNumber)
	assert.Equal(t, entity.SOStatusDraft, order.Status)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(400)))
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(40)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(440)))
}

func TestProcessing_DescuentaStock(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 20)
	order := createOrder(t, uc, p.ID, 5)

	setStatus(t, uc, order.ID, entity.SOStatusConfirmed)
	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(20)), "confirmar no mueve stock")

	setStatus(t, uc, order.ID, entity.SOStatusProcessing)
	product, _ = store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(15)), "processing descuenta las líneas")

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOut, movs[0].Type)
	assert.Equal(t, order.OrderNumber, movs[0].Reference)
}

func TestCancelarDesdeProcessing_RestauraStock(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 20)
	order := createOrder(t, uc, p.ID, 5)
	setStatus(t, uc, order.ID, entity.SOStatusConfirmed)
	setStatus(t, uc, order.ID, entity.SOStatusProcessing)

	setStatus(t, uc, order.ID, entity.SOStatusCancelled)
	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(20)), "cancelar restaura lo descontado")

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	assert.Len(t, movs, 2, "queda el out y el in de reversa en el historial")
}

func TestCancelarDesdeConfirmed_NoMueveStock(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 20)
	order := createOrder(t, uc, p.ID, 5)
	setStatus(t, uc, order.ID, entity.SOStatusConfirmed)

	setStatus(t, uc, order.ID, entity.SOStatusCancelled)
	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	assert.Empty(t, movs, "cancelar antes de processing no toca el ledger")
}

func TestProcessing_PermiteSobreventa(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 3)
	order := createOrder(t, uc, p.ID, 5)
	setStatus(t, uc, order.ID, entity.SOStatusConfirmed)
	setStatus(t, uc, order.ID, entity.SOStatusProcessing)

	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(-2)), "el despacho no valida disponibilidad")
}

func TestTransicionInvalida_NoTocaLedger(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 20)
	order := createOrder(t, uc, p.ID, 5)

	// draft no puede saltar a processing
	_, err := uc.UpdateStatus(context.Background(), companyID, userID, order.ID, dto.UpdateStatusRequest{Status: entity.SOStatusProcessing})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(20)))
	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	assert.Empty(t, movs)
}

func TestShippedYDelivered_FijanFechas(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 20)
	order := createOrder(t, uc, p.ID, 5)
	setStatus(t, uc, order.ID, entity.SOStatusConfirmed)
	setStatus(t, uc, order.ID, entity.SOStatusProcessing)

	got := setStatus(t, uc, order.ID, entity.SOStatusShipped)
	require.NotNil(t, got.ShippingDate)

	got = setStatus(t, uc, order.ID, entity.SOStatusDelivered)
	assert.NotNil(t, got.ShippingDate, "la fecha de despacho se preserva")
	assert.NotNil(t, got.DeliveryDate)
}

func TestDelete_SoloDraftOCancelled(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 20)

	order := createOrder(t, uc, p.ID, 5)
	require.NoError(t, uc.Delete(companyID, order.ID))

	order = createOrder(t, uc, p.ID, 5)
	setStatus(t, uc, order.ID, entity.SOStatusConfirmed)
	assert.ErrorIs(t, uc.Delete(companyID, order.ID), domain.ErrConflict)
}
