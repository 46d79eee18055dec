// Package adjustments implementa ajustes puntuales de stock: sin máquina de
// estados, el delta con signo se aplica de inmediato por el camino del ledger.
package adjustments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// UseCase casos de uso de ajustes de stock.
type UseCase struct {
	tx          ledger.TxRunner
	adjustments repository.StockAdjustmentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ledger.TxRunner, adjustments repository.StockAdjustmentRepository) *UseCase {
	return &UseCase{tx: tx, adjustments: adjustments}
}

// Create aplica un ajuste: registro del documento, movimiento "adjustment" en
// el ledger y delta sobre Product.Stock, todo en una transacción. Si no viene
// referencia se genera ADJ-<id>.
func (uc *UseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.ProductID == "" || !entity.ValidAdjustmentType(in.AdjustmentType) || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	adj := &entity.StockAdjustment{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		ProductID:      in.ProductID,
		AdjustmentType: in.AdjustmentType,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Reference:      in.Reference,
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
	}
	if adj.Reference == "" {
		adj.Reference = fmt.Sprintf("ADJ-%s", adj.ID)
	}
	err := uc.tx.Run(ctx, func(r *ledger.Repos) error {
		if _, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
			ProductID: in.ProductID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  in.Quantity,
			Reference: adj.Reference,
			Notes:     in.Reason,
		}); err != nil {
			return err
		}
		return r.Adjustments.Create(adj)
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// List lista ajustes de la empresa, más recientes primero.
func (uc *UseCase) List(companyID string, page dto.PageRequest) ([]*dto.AdjustmentResponse, error) {
	list, err := uc.adjustments.List(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdjustmentResponse(a))
	}
	return out, nil
}

func toAdjustmentResponse(a *entity.StockAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		AdjustmentType: a.AdjustmentType,
		Quantity:       a.Quantity,
		Reason:         a.Reason,
		Reference:      a.Reference,
		CreatedAt:      a.CreatedAt,
	}
}
