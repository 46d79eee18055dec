package returns_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/returns"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
)

const companyID = "11111111-1111-1111-1111-111111111111"
const userID = "22222222-2222-2222-2222-222222222222"

func newUseCase(store *memory.Store) *returns.UseCase {
	return returns.NewUseCase(memory.NewTxRunner(store), store.Repos().Returns)
}

func seedProduct(t *testing.T, store *memory.Store, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Taladro percutor",
		Stock:     decimal.NewFromInt(stock),
		IsActive:  true,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func createReturn(t *testing.T, uc *returns.UseCase, productID string, qty int64) *dto.ReturnResponse {
	t.Helper()
	ret, err := uc.Create(companyID, userID, dto.CreateReturnRequest{
		Reason: "producto defectuoso",
		Items: []dto.CreateReturnItemRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(50), Condition: "damaged"},
		},
	})
	require.NoError(t, err)
	return ret
}

func setStatus(t *testing.T, uc *returns.UseCase, id, status string) *dto.ReturnResponse {
	t.Helper()
	got, err := uc.UpdateStatus(context.Background(), companyID, userID, id, dto.UpdateStatusRequest{Status: status})
	require.NoError(t, err)
	return got
}

func TestCreate_ConsecutivoYMontoReembolso(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 0)

	ret := createReturn(t, uc, p.ID, 2)
	assert.Equal(t, "RET-00001", ret.ReturnNumber)
	assert.Equal(t, entity.ReturnStatusPending, ret.Status)
	assert.True(t, ret.RefundAmount.Equal(decimal.NewFromInt(100)))
}

func TestReceived_ReingresaStockUnaSolaVez(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 10)
	ret := createReturn(t, uc, p.ID, 2)

	setStatus(t, uc, ret.ID, entity.ReturnStatusApproved)
	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)), "aprobar no mueve stock")

	got := setStatus(t, uc, ret.ID, entity.ReturnStatusReceived)
	assert.NotNil(t, got.ProcessedAt)
	product, _ = store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(12)), "received reingresa las líneas")

	// received -> received no es transición legal: no hay doble reingreso
	_, err := uc.UpdateStatus(context.Background(), companyID, userID, ret.ID, dto.UpdateStatusRequest{Status: entity.ReturnStatusReceived})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	setStatus(t, uc, ret.ID, entity.ReturnStatusRefunded)
	product, _ = store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(12)), "refunded no vuelve a mover stock")

	movs, _ := store.Repos().Movements.List(companyID, repository.MovementFilter{})
	assert.Len(t, movs, 1, "exactamente un reingreso por línea")
	assert.Equal(t, ret.ReturnNumber, movs[0].Reference)
}

func TestRejected_NoMueveStock(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 10)
	ret := createReturn(t, uc, p.ID, 2)

	setStatus(t, uc, ret.ID, entity.ReturnStatusRejected)
	product, _ := store.Repos().Products.GetByID(companyID, p.ID)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)))

	// rejected es terminal
	_, err := uc.UpdateStatus(context.Background(), companyID, userID, ret.ID, dto.UpdateStatusRequest{Status: entity.ReturnStatusApproved})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDelete_SoloPendingORejected(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	p := seedProduct(t, store, 10)

	ret := createReturn(t, uc, p.ID, 2)
	require.NoError(t, uc.Delete(companyID, ret.ID))

	ret = createReturn(t, uc, p.ID, 2)
	setStatus(t, uc, ret.ID, entity.ReturnStatusApproved)
	assert.ErrorIs(t, uc.Delete(companyID, ret.ID), domain.ErrConflict)
}
