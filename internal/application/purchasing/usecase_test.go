package purchasing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/purchasing"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
)

const companyID = "11111111-1111-1111-1111-111111111111"
const userID = "22222222-2222-2222-2222-222222222222"
const supplierID = "33333333-3333-3333-3333-333333333333"

func newUseCase(store *memory.Store) *purchasing.UseCase {
	return purchasing.NewUseCase(memory.NewTxRunner(store), store.Repos().PurchaseOrders)
}

func seedProduct(t *testing.T, store *memory.Store, stock, cost int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Cemento gris 50kg",
		Stock:     decimal.NewFromInt(stock),
		Cost:      decimal.NewFromInt(cost),
		IsActive:  true,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func createOrder(t *testing.T, uc *purchasing.UseCase, productID string, qty, price int64) *dto.PurchaseOrderResponse {
	t.Helper()
	order, err := uc.Create(companyID, userID, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items: []dto.CreateOrderItemRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price)},
		},
	})
	require.NoError(t, err)
	return order
}

// avanza la orden draft -> pending -> approved para poder recibir.
func approveOrder(t *testing.T, uc *purchasing.UseCase, id string) {
	t.Helper()
	for _, status := range []string{entity.POStatusPending, entity.POStatusApproved} {
		_, err := uc.UpdateStatus(companyID, userID, id, dto.UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}
}

func TestCreate_ConsecutivoYTotales(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)

	order := createOrder(t, uc, p.ID, 10, 100)
	assert.Equal(t, "PO-00001", order.OrderNumber)
	assert.Equal(t, entity.POStatusDraft, order.Status)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(100)), "IVA plano del 10 por ciento")
	assert.True(t, order.Total.Equal(decimal.NewFromInt(1100)))

	second := createOrder(t, uc, p.ID, 1, 1)
	assert.Equal(t, "PO-00002", second.OrderNumber)
}

func TestUpdateStatus_TransicionInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)
	order := createOrder(t, uc, p.ID, 10, 100)

	// draft no puede saltar directo a received
	_, err := uc.UpdateStatus(companyID, userID, order.ID, dto.UpdateStatusRequest{Status: entity.POStatusReceived})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// estado desconocido
	_, err = uc.UpdateStatus(companyID, userID, order.ID, dto.UpdateStatusRequest{Status: "archivado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_ApprovedGuardaAprobador(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)
	order := createOrder(t, uc, p.ID, 10, 100)

	approveOrder(t, uc, order.ID)
	got, err := uc.GetByID(companyID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusApproved, got.Status)
	assert.Equal(t, userID, got.ApprovedBy)
}

func TestReceive_ParcialYCompleto(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)
	order := createOrder(t, uc, p.ID, 10, 100)
	approveOrder(t, uc, order.ID)
	itemID := order.Items[0].ID

	// recepción parcial: 4 de 10
	got, err := uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, ReceivedQty: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartial, got.Status)
	assert.True(t, got.Items[0].ReceivedQty.Equal(decimal.NewFromInt(4)))

	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(4)), "la recepción entra al stock")
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(100)), "costo promedio con stock previo cero = precio de compra")

	// segundo delta de 6 completa las 10 unidades
	got, err = uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, ReceivedQty: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)
	assert.NotNil(t, got.ReceivedDate)

	product, _ = store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)))

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	require.Len(t, movs, 2, "un movimiento 'in' por cada delta recibido")
	assert.Equal(t, order.OrderNumber, movs[0].Reference)
}

func TestReceive_CostoPromedioPonderado(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	// 10 unidades a costo 10; se reciben 10 más a 20 -> promedio 15
	p := seedProduct(t, store, 10, 10)
	order := createOrder(t, uc, p.ID, 10, 20)
	approveOrder(t, uc, order.ID)

	_, err := uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: order.Items[0].ID, ReceivedQty: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(15)), "promedio ponderado, obtuvo %s", product.Cost)
}

func TestReceive_SobreRecepcionRechazaTodo(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p1 := seedProduct(t, store, 0, 0)
	p2 := seedProduct(t, store, 0, 0)
	order, err := uc.Create(companyID, userID, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items: []dto.CreateOrderItemRequest{
			{ProductID: p1.ID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10)},
			{ProductID: p2.ID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	approveOrder(t, uc, order.ID)

	// primera línea válida, segunda sobre-recibida: nada debe aplicarse
	_, err = uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: order.Items[0].ID, ReceivedQty: decimal.NewFromInt(5)},
			{ItemID: order.Items[1].ID, ReceivedQty: decimal.NewFromInt(6)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	got, _ := uc.GetByID(companyID, order.ID)
	assert.Equal(t, entity.POStatusApproved, got.Status, "la orden queda intacta")
	assert.True(t, got.Items[0].ReceivedQty.IsZero(), "rollback de la línea válida")

	product, _ := store.Repos().Products.GetByID(companyID, p1.ID)
	assert.True(t, product.Stock.IsZero(), "rollback del stock")

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	assert.Empty(t, movs, "rollback del ledger")
}

func TestReceive_DeltaRepetidoSeAcumula(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)
	order := createOrder(t, uc, p.ID, 10, 100)
	approveOrder(t, uc, order.ID)
	itemID := order.Items[0].ID

	// el mismo delta dos veces se cuenta dos veces: la operación no es idempotente
	for i := 0; i < 2; i++ {
		_, err := uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
			Items: []dto.ReceiveItemRequest{{ItemID: itemID, ReceivedQty: decimal.NewFromInt(4)}},
		})
		require.NoError(t, err)
	}

	got, err := uc.GetByID(companyID, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].ReceivedQty.Equal(decimal.NewFromInt(8)), "4+4 acumula 8")
	assert.Equal(t, entity.POStatusPartial, got.Status)

	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(8)))

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	assert.Len(t, movs, 2, "un movimiento 'in' por cada delta")
}

func TestReceive_DeltaInvalido(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)
	order := createOrder(t, uc, p.ID, 10, 100)
	approveOrder(t, uc, order.ID)
	itemID := order.Items[0].ID

	for _, qty := range []int64{0, -4} {
		_, err := uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
			Items: []dto.ReceiveItemRequest{{ItemID: itemID, ReceivedQty: decimal.NewFromInt(qty)}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	// un delta que deja el acumulado por encima de lo ordenado es sobre-recepción
	_, err := uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, ReceivedQty: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)
	_, err = uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, ReceivedQty: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	assert.Len(t, movs, 1, "solo el delta válido generó movimiento")
}

func TestReceive_EstadoNoRecibible(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)
	order := createOrder(t, uc, p.ID, 10, 100)

	_, err := uc.Receive(context.Background(), companyID, userID, order.ID, dto.ReceiveOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: order.Items[0].ID, ReceivedQty: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una orden draft no se puede recibir")
}

func TestDelete_SoloDraftOCancelled(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0, 0)

	order := createOrder(t, uc, p.ID, 10, 100)
	require.NoError(t, uc.Delete(companyID, order.ID))

	order = createOrder(t, uc, p.ID, 10, 100)
	approveOrder(t, uc, order.ID)
	assert.ErrorIs(t, uc.Delete(companyID, order.ID), domain.ErrConflict)
}
