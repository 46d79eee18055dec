// Package lifecycle centraliza las máquinas de estado de los documentos.
// Cada tipo de documento tiene una tabla estado actual -> estados siguientes
// permitidos; toda transición se valida aquí antes de cualquier mutación.
package lifecycle

import (
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// Transitions tabla de transiciones legales de un tipo de documento.
type Transitions map[string][]string

// PurchaseOrder: draft → pending → approved → ordered → {partial, received};
// cancelled alcanzable desde cualquier estado no terminal. partial/received
// normalmente los fija el flujo de recepción, pero son transiciones legales.
var PurchaseOrder = Transitions{
	entity.POStatusDraft:    {entity.POStatusPending, entity.POStatusCancelled},
	entity.POStatusPending:  {entity.POStatusApproved, entity.POStatusCancelled},
	entity.POStatusApproved: {entity.POStatusOrdered, entity.POStatusCancelled},
	entity.POStatusOrdered:  {entity.POStatusPartial, entity.POStatusReceived, entity.POStatusCancelled},
	entity.POStatusPartial:  {entity.POStatusReceived, entity.POStatusCancelled},
	// received y cancelled son terminales
}

// SalesOrder: draft → confirmed → processing → shipped → delivered;
// cancelled alcanzable desde draft, confirmed y processing.
var SalesOrder = Transitions{
	entity.SOStatusDraft:      {entity.SOStatusConfirmed, entity.SOStatusCancelled},
	entity.SOStatusConfirmed:  {entity.SOStatusProcessing, entity.SOStatusCancelled},
	entity.SOStatusProcessing: {entity.SOStatusShipped, entity.SOStatusCancelled},
	entity.SOStatusShipped:    {entity.SOStatusDelivered},
}

// Return: pending → approved → received → refunded; rejected desde pending.
var Return = Transitions{
	entity.ReturnStatusPending:  {entity.ReturnStatusApproved, entity.ReturnStatusRejected},
	entity.ReturnStatusApproved: {entity.ReturnStatusReceived},
	entity.ReturnStatusReceived: {entity.ReturnStatusRefunded},
}

// StockTransfer: pending → completed.
var StockTransfer = Transitions{
	entity.TransferStatusPending: {entity.TransferStatusCompleted},
}

// CycleCount: planned → in_progress → completed. El cierre directo desde
// planned también es legal (conteo sin varianzas registradas).
var CycleCount = Transitions{
	entity.CycleCountStatusPlanned:    {entity.CycleCountStatusInProgress, entity.CycleCountStatusCompleted},
	entity.CycleCountStatusInProgress: {entity.CycleCountStatusCompleted},
}

// Can indica si la transición from -> to está permitida en la tabla.
func (t Transitions) Can(from, to string) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal indica si un estado no tiene transiciones de salida (documento inmutable).
func (t Transitions) Terminal(status string) bool {
	return len(t[status]) == 0
}

// Known indica si el estado aparece en la tabla como origen o destino.
func (t Transitions) Known(status string) bool {
	if _, ok := t[status]; ok {
		return true
	}
	for _, next := range t {
		for _, s := range next {
			if s == status {
				return true
			}
		}
	}
	return false
}
