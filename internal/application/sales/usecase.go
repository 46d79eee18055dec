// Package sales implementa el ciclo de vida de órdenes de venta. El
// descuento de stock es todo-o-nada al primer paso a processing; cancelar
// desde processing lo restaura por la misma vía del ledger.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/lifecycle"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

var taxRate = decimal.NewFromFloat(0.10)

// UseCase casos de uso de órdenes de venta.
type UseCase struct {
	tx     ledger.TxRunner
	orders repository.SalesOrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ledger.TxRunner, orders repository.SalesOrderRepository) *UseCase {
	return &UseCase{tx: tx, orders: orders}
}

// Create crea una orden de venta en estado draft con consecutivo SO-#####.
func (uc *UseCase) Create(companyID, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	orderID := uuid.New().String()
	items := make([]entity.SalesOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, entity.SalesOrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  decimal.Zero,
			Total:     lineTotal,
		})
	}
	seq, err := uc.orders.Count(companyID)
	if err != nil {
		return nil, err
	}
	tax := subtotal.Mul(taxRate)
	now := time.Now()
	order := &entity.SalesOrder{
		ID:          orderID,
		CompanyID:   companyID,
		OrderNumber: fmt.Sprintf("SO-%05d", seq+1),
		CustomerID:  in.CustomerID,
		Status:      entity.SOStatusDraft,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal.Add(tax),
		Notes:       in.Notes,
		CreatedBy:   userID,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}
	return toSalesOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *UseCase) GetByID(companyID, id string) (*dto.SalesOrderResponse, error) {
	order, err := uc.orders.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toSalesOrderResponse(order), nil
}

// List lista órdenes de la empresa, opcionalmente filtradas por estado.
func (uc *UseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.SalesOrderResponse, error) {
	list, err := uc.orders.List(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toSalesOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus aplica una transición de la tabla de la orden de venta.
// confirmed -> processing descuenta stock (ledger "out" por línea);
// processing -> cancelled lo restaura (ledger "in"). El descuento no valida
// disponibilidad: el stock puede quedar negativo y se reporta como faltante.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, userID, id string, in dto.UpdateStatusRequest) (*dto.SalesOrderResponse, error) {
	if !lifecycle.SalesOrder.Known(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	err := uc.tx.Run(ctx, func(r *ledger.Repos) error {
		order, err := r.SalesOrders.GetByID(companyID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !lifecycle.SalesOrder.Can(order.Status, in.Status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, in.Status)
		}

		switch {
		case in.Status == entity.SOStatusProcessing && order.Status == entity.SOStatusConfirmed:
			if err := moveAll(r, companyID, userID, order, entity.MovementTypeOut, "despacho orden de venta"); err != nil {
				return err
			}
		case in.Status == entity.SOStatusCancelled && order.Status == entity.SOStatusProcessing:
			if err := moveAll(r, companyID, userID, order, entity.MovementTypeIn, "cancelación orden de venta"); err != nil {
				return err
			}
		}

		var shippingDate, deliveryDate *time.Time
		shippingDate = order.ShippingDate
		deliveryDate = order.DeliveryDate
		now := time.Now()
		if in.Status == entity.SOStatusShipped {
			shippingDate = &now
		}
		if in.Status == entity.SOStatusDelivered {
			deliveryDate = &now
		}
		return r.SalesOrders.UpdateStatus(companyID, id, in.Status, shippingDate, deliveryDate)
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
	if order.Status != entity.SOStatusDraft && order.Status != entity.SOStatusCancelled {
		return domain.ErrConflict
	}
	return uc.orders.Delete(companyID, id)
}

// moveAll registra un movimiento por cada línea de la orden.
func moveAll(r *ledger.Repos, companyID, userID string, order *entity.SalesOrder, movType, notes string) error {
	for _, it := range order.Items {
		if _, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
			ProductID: it.ProductID,
			Type:      movType,
			Quantity:  it.Quantity,
			Reference: order.OrderNumber,
			Notes:     notes,
		}); err != nil {
			return err
		}
	}
	return nil
}

func toSalesOrderResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	items := make([]dto.SalesOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.SalesOrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.SalesOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		Status:       o.Status,
		Subtotal:     o.Subtotal,
		Tax:          o.Tax,
		Total:        o.Total,
		ShippingDate: o.ShippingDate,
		DeliveryDate: o.DeliveryDate,
		Notes:        o.Notes,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
