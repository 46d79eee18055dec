// Package purchasing implementa el ciclo de vida de órdenes de compra:
// creación, transiciones de estado y recepción de mercancía contra el ledger.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/costing"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/lifecycle"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// taxRate IVA plano aplicado a toda orden de compra.
var taxRate = decimal.NewFromFloat(0.10)

// UseCase casos de uso de órdenes de compra.
type UseCase struct {
	tx     ledger.TxRunner
	orders repository.PurchaseOrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ledger.TxRunner, orders repository.PurchaseOrderRepository) *UseCase {
	return &UseCase{tx: tx, orders: orders}
}

// Create crea una orden de compra en estado draft con consecutivo PO-#####.
func (uc *UseCase) Create(companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	orderID := uuid.New().String()
	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, entity.PurchaseOrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			ReceivedQty: decimal.Zero,
			UnitPrice:   it.UnitPrice,
			Total:       lineTotal,
		})
	}
	seq, err := uc.orders.Count(companyID)
	if err != nil {
		return nil, err
	}
	tax := subtotal.Mul(taxRate)
	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:           orderID,
		CompanyID:    companyID,
		OrderNumber:  fmt.Sprintf("PO-%05d", seq+1),
		SupplierID:   in.SupplierID,
		Status:       entity.POStatusDraft,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        subtotal.Add(tax),
		Notes:        in.Notes,
		ExpectedDate: in.ExpectedDate,
		CreatedBy:    userID,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *UseCase) GetByID(companyID, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orders.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseOrderResponse(order), nil
}

// List lista órdenes de la empresa, opcionalmente filtradas por estado.
func (uc *UseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.PurchaseOrderResponse, error) {
	list, err := uc.orders.List(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus aplica una transición de la tabla de la orden de compra.
// Pasar a partial/received por esta vía es legal pero no mueve stock: eso
// solo lo hace Receive.
func (uc *UseCase) UpdateStatus(companyID, userID, id string, in dto.UpdateStatusRequest) (*dto.PurchaseOrderResponse, error) {
	if !lifecycle.PurchaseOrder.Known(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !lifecycle.PurchaseOrder.Can(order.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, in.Status)
	}
	approvedBy := order.ApprovedBy
	if in.Status == entity.POStatusApproved {
		approvedBy = userID
	}
	var receivedDate *time.Time
	if in.Status == entity.POStatusReceived {
		now := time.Now()
		receivedDate = &now
	}
	if err := uc.orders.UpdateStatus(companyID, id, in.Status, approvedBy, receivedDate); err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, id)
}

// Receive registra cantidades recibidas contra las líneas de la orden, dentro
// de una sola transacción: ledger "in" por cada línea, costo promedio
// ponderado y recálculo del estado. ReceivedQty es el delta de esta llamada y
// se suma al acumulado de la línea; un delta <= 0 o que deje el acumulado por
// encima de Quantity rechaza toda la operación. Reenviar el mismo delta lo
// vuelve a aplicar: la operación no es idempotente.
func (uc *UseCase) Receive(ctx context.Context, companyID, userID, id string, in dto.ReceiveOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	err := uc.tx.Run(ctx, func(r *ledger.Repos) error {
		order, err := r.PurchaseOrders.GetByID(companyID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		switch order.Status {
		case entity.POStatusApproved, entity.POStatusOrdered, entity.POStatusPartial:
		default:
			return fmt.Errorf("%w: no se puede recibir en estado %s", domain.ErrInvalidTransition, order.Status)
		}

		lines := make(map[string]*entity.PurchaseOrderItem, len(order.Items))
		for i := range order.Items {
			lines[order.Items[i].ID] = &order.Items[i]
		}
		for _, req := range in.Items {
			line, ok := lines[req.ItemID]
			if !ok {
				return domain.ErrNotFound
			}
			if !req.ReceivedQty.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			delta := req.ReceivedQty
			newTotal := line.ReceivedQty.Add(delta)
			if newTotal.GreaterThan(line.Quantity) {
				return fmt.Errorf("%w: línea %s", domain.ErrOverReceipt, line.ID)
			}
			product, err := r.Products.GetByID(companyID, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if _, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
				ProductID: line.ProductID,
				Type:      entity.MovementTypeIn,
				Quantity:  delta,
				Reference: order.OrderNumber,
				Notes:     "recepción orden de compra",
			}); err != nil {
				return err
			}
			newCost := costing.WeightedAverage(product.Stock, product.Cost, delta, line.UnitPrice)
			if err := r.Products.UpdateCost(companyID, line.ProductID, newCost); err != nil {
				return err
			}
			if err := r.PurchaseOrders.UpdateItemReceived(line.ID, newTotal); err != nil {
				return err
			}
			line.ReceivedQty = newTotal
		}

		status, receivedDate := recomputeStatus(order)
		if status != order.Status {
			if err := r.PurchaseOrders.UpdateStatus(companyID, id, status, order.ApprovedBy, receivedDate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, id)
}

// Delete elimina una orden; solo en draft o cancelled.
func (uc *UseCase) Delete(companyID, id string) error {
	order, err := uc.orders.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.POStatusDraft && order.Status != entity.POStatusCancelled {
		return domain.ErrConflict
	}
	return uc.orders.Delete(companyID, id)
}

// recomputeStatus deriva el estado desde el avance de recepción: received si
// todas las líneas están completas, partial si alguna tiene avance.
func recomputeStatus(order *entity.PurchaseOrder) (string, *time.Time) {
	all := true
	any := false
	for _, it := range order.Items {
		if it.ReceivedQty.GreaterThan(decimal.Zero) {
			any = true
		}
		if it.ReceivedQty.LessThan(it.Quantity) {
			all = false
		}
	}
	if all {
		now := time.Now()
		return entity.POStatusReceived, &now
	}
	if any {
		return entity.POStatusPartial, nil
	}
	return order.Status, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			ReceivedQty: it.ReceivedQty,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		Status:       o.Status,
		Subtotal:     o.Subtotal,
		Tax:          o.Tax,
		Total:        o.Total,
		ExpectedDate: o.ExpectedDate,
		ReceivedDate: o.ReceivedDate,
		ApprovedBy:   o.ApprovedBy,
		Notes:        o.Notes,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
