// Package returns implementa devoluciones de clientes. El reingreso de stock
// ocurre exactamente una vez, al pasar a received.
package returns

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

// UseCase casos de uso de devoluciones.
type UseCase struct {
	tx      ledger.TxRunner
	returns repository.ReturnRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ledger.TxRunner, returns repository.ReturnRepository) *UseCase {
	return &UseCase{tx: tx, returns: returns}
}

// Create crea una devolución en estado pending con consecutivo RET-#####.
func (uc *UseCase) Create(companyID, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	retID := uuid.New().String()
	items := make([]entity.ReturnItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(it.Quantity.Mul(it.UnitPrice))
		items = append(items, entity.ReturnItem{
			ID:        uuid.New().String(),
			ReturnID:  retID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Condition: it.Condition,
			Reason:    it.Reason,
		})
	}
	seq, err := uc.returns.Count(companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ret := &entity.Return{
		ID:           retID,
		CompanyID:    companyID,
		ReturnNumber: fmt.Sprintf("RET-%05d", seq+1),
		CustomerID:   in.CustomerID,
		SalesOrderID: in.SalesOrderID,
		Status:       entity.ReturnStatusPending,
		Reason:       in.Reason,
		Notes:        in.Notes,
		Subtotal:     subtotal,
		RefundAmount: subtotal,
		CreatedBy:    userID,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.returns.Create(ret); err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// GetByID obtiene una devolución con sus líneas.
func (uc *UseCase) GetByID(companyID, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returns.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	return toReturnResponse(ret), nil
}

// List lista devoluciones de la empresa, opcionalmente filtradas por estado.
func (uc *UseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.ReturnResponse, error) {
	list, err := uc.returns.List(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReturnResponse(r))
	}
	return out, nil
}

// UpdateStatus aplica una transición de la tabla de devoluciones. El paso a
// received reingresa el stock de todas las líneas vía ledger; el candado es
// la propia tabla (received solo es alcanzable desde approved), así que el
// reingreso no puede ejecutarse dos veces.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, userID, id string, in dto.UpdateStatusRequest) (*dto.ReturnResponse, error) {
	if !lifecycle.Return.Known(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	err := uc.tx.Run(ctx, func(r *ledger.Repos) error {
		ret, err := r.Returns.GetByID(companyID, id)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if !lifecycle.Return.Can(ret.Status, in.Status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, ret.Status, in.Status)
		}

		if in.Status == entity.ReturnStatusReceived && ret.Status != entity.ReturnStatusReceived {
			for _, it := range ret.Items {
				if _, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
					ProductID: it.ProductID,
					Type:      entity.MovementTypeIn,
					Quantity:  it.Quantity,
					Reference: ret.ReturnNumber,
					Notes:     "reingreso por devolución",
				}); err != nil {
					return err
				}
			}
		}

		var processedAt *time.Time
		processedAt = ret.ProcessedAt
		if in.Status == entity.ReturnStatusReceived || in.Status == entity.ReturnStatusRefunded {
			now := time.Now()
			processedAt = &now
		}
		return r.Returns.UpdateStatus(companyID, id, in.Status, processedAt)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, id)
}

// Delete elimina una devolución; solo en pending o rejected.
func (uc *UseCase) Delete(companyID, id string) error {
	ret, err := uc.returns.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if ret == nil {
		return domain.ErrNotFound
	}
	if ret.Status != entity.ReturnStatusPending && ret.Status != entity.ReturnStatusRejected {
		return domain.ErrConflict
	}
	return uc.returns.Delete(companyID, id)
}

func toReturnResponse(r *entity.Return) *dto.ReturnResponse {
	items := make([]dto.ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReturnItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Condition: it.Condition,
			Reason:    it.Reason,
		})
	}
	return &dto.ReturnResponse{
		ID:           r.ID,
		ReturnNumber: r.ReturnNumber,
		SalesOrderID: r.SalesOrderID,
		CustomerID:   r.CustomerID,
		Status:       r.Status,
		Reason:       r.Reason,
		Notes:        r.Notes,
		RefundAmount: r.RefundAmount,
		ProcessedAt:  r.ProcessedAt,
		Items:        items,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
