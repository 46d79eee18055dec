package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/lifecycle"
)

func TestPurchaseOrder_CaminoFeliz(t *testing.T) {
	tr := lifecycle.PurchaseOrder
	assert.True(t, tr.Can(entity.POStatusDraft, entity.POStatusPending))
	assert.True(t, tr.Can(entity.POStatusPending, entity.POStatusApproved))
	assert.True(t, tr.Can(entity.POStatusApproved, entity.POStatusOrdered))
	assert.True(t, tr.Can(entity.POStatusOrdered, entity.POStatusPartial))
	assert.True(t, tr.Can(entity.POStatusOrdered, entity.POStatusReceived))
	assert.True(t, tr.Can(entity.POStatusPartial, entity.POStatusReceived))
}

func TestPurchaseOrder_CancelableDesdeNoTerminales(t *testing.T) {
	tr := lifecycle.PurchaseOrder
	for _, from := range []string{
		entity.POStatusDraft, entity.POStatusPending,
		entity.POStatusApproved, entity.POStatusOrdered, entity.POStatusPartial,
	} {
		assert.True(t, tr.Can(from, entity.POStatusCancelled), "debe poder cancelarse desde %s", from)
	}
	assert.False(t, tr.Can(entity.POStatusReceived, entity.POStatusCancelled),
		"received es terminal, no debe cancelarse")
	assert.False(t, tr.Can(entity.POStatusCancelled, entity.POStatusDraft))
}

func TestPurchaseOrder_NoSaltaEstados(t *testing.T) {
	tr := lifecycle.PurchaseOrder
	assert.False(t, tr.Can(entity.POStatusDraft, entity.POStatusOrdered))
	assert.False(t, tr.Can(entity.POStatusDraft, entity.POStatusReceived))
	assert.False(t, tr.Can(entity.POStatusReceived, entity.POStatusOrdered), "no hay retroceso")
}

func TestSalesOrder_Transiciones(t *testing.T) {
	tr := lifecycle.SalesOrder
	assert.True(t, tr.Can(entity.SOStatusDraft, entity.SOStatusConfirmed))
	assert.True(t, tr.Can(entity.SOStatusConfirmed, entity.SOStatusProcessing))
	assert.True(t, tr.Can(entity.SOStatusProcessing, entity.SOStatusShipped))
	assert.True(t, tr.Can(entity.SOStatusShipped, entity.SOStatusDelivered))

	// cancelación: legal desde draft/confirmed/processing, no desde shipped
	assert.True(t, tr.Can(entity.SOStatusDraft, entity.SOStatusCancelled))
	assert.True(t, tr.Can(entity.SOStatusConfirmed, entity.SOStatusCancelled))
	assert.True(t, tr.Can(entity.SOStatusProcessing, entity.SOStatusCancelled))
	assert.False(t, tr.Can(entity.SOStatusShipped, entity.SOStatusCancelled))
	assert.False(t, tr.Can(entity.SOStatusDelivered, entity.SOStatusCancelled))
}

func TestReturn_Transiciones(t *testing.T) {
	tr := lifecycle.Return
	assert.True(t, tr.Can(entity.ReturnStatusPending, entity.ReturnStatusApproved))
	assert.True(t, tr.Can(entity.ReturnStatusPending, entity.ReturnStatusRejected))
	assert.True(t, tr.Can(entity.ReturnStatusApproved, entity.ReturnStatusReceived))
	assert.True(t, tr.Can(entity.ReturnStatusReceived, entity.ReturnStatusRefunded))

	assert.False(t, tr.Can(entity.ReturnStatusApproved, entity.ReturnStatusRejected),
		"rejected solo es alcanzable desde pending")
	assert.False(t, tr.Can(entity.ReturnStatusRefunded, entity.ReturnStatusPending))
}

func TestStockTransfer_Transiciones(t *testing.T) {
	tr := lifecycle.StockTransfer
	assert.True(t, tr.Can(entity.TransferStatusPending, entity.TransferStatusCompleted))
	assert.False(t, tr.Can(entity.TransferStatusCompleted, entity.TransferStatusPending))
	assert.True(t, tr.Terminal(entity.TransferStatusCompleted))
}

func TestCycleCount_Transiciones(t *testing.T) {
	tr := lifecycle.CycleCount
	assert.True(t, tr.Can(entity.CycleCountStatusPlanned, entity.CycleCountStatusInProgress))
	assert.True(t, tr.Can(entity.CycleCountStatusPlanned, entity.CycleCountStatusCompleted))
	assert.True(t, tr.Can(entity.CycleCountStatusInProgress, entity.CycleCountStatusCompleted))
	assert.True(t, tr.Terminal(entity.CycleCountStatusCompleted))
}

func TestKnown_DetectaEstadosDesconocidos(t *testing.T) {
	assert.True(t, lifecycle.SalesOrder.Known(entity.SOStatusDelivered))
	assert.True(t, lifecycle.Return.Known(entity.ReturnStatusRejected))
	assert.False(t, lifecycle.SalesOrder.Known("archived"))
	assert.False(t, lifecycle.PurchaseOrder.Known(""))
}
