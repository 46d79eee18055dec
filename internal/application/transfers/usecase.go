// Package transfers implementa traslados de stock entre ubicaciones. Un
// traslado completado mueve la proyección por ubicación y deja exactamente un
// movimiento "transfer" en el ledger; Product.Stock no cambia.
package transfers

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

// UseCase casos de uso de traslados.
type UseCase struct {
	tx        ledger.TxRunner
	transfers repository.StockTransferRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ledger.TxRunner, transfers repository.StockTransferRepository) *UseCase {
	return &UseCase{tx: tx, transfers: transfers}
}

// Create crea un traslado en estado pending con consecutivo TRF-#####.
// No mueve nada: el movimiento ocurre al completar.
func (uc *UseCase) Create(companyID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	seq, err := uc.transfers.Count(companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.StockTransfer{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		TransferNumber: fmt.Sprintf("TRF-%05d", seq+1),
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Status:         entity.TransferStatusPending,
		Notes:          in.Notes,
		RequestedBy:    userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.transfers.Create(t); err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// GetByID obtiene un traslado.
func (uc *UseCase) GetByID(companyID, id string) (*dto.TransferResponse, error) {
	t, err := uc.transfers.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(t), nil
}

// List lista traslados de la empresa, opcionalmente filtrados por estado.
func (uc *UseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.TransferResponse, error) {
	list, err := uc.transfers.List(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	return out, nil
}

// Complete ejecuta el traslado en una sola transacción: resta en origen y
// suma en destino con upserts de delta, y registra el movimiento "transfer".
// El origen puede quedar negativo si su fila no estaba poblada.
func (uc *UseCase) Complete(ctx context.Context, companyID, userID, id string) (*dto.TransferResponse, error) {
	err := uc.tx.Run(ctx, func(r *ledger.Repos) error {
		t, err := r.Transfers.GetByID(companyID, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !lifecycle.StockTransfer.Can(t.Status, entity.TransferStatusCompleted) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, t.Status, entity.TransferStatusCompleted)
		}
		if err := r.Inventory.AddQuantity(companyID, t.ProductID, t.FromLocationID, t.Quantity.Neg()); err != nil {
			return err
		}
		if err := r.Inventory.AddQuantity(companyID, t.ProductID, t.ToLocationID, t.Quantity); err != nil {
			return err
		}
		if _, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
			ProductID: t.ProductID,
			Type:      entity.MovementTypeTransfer,
			Quantity:  t.Quantity,
			Reference: t.TransferNumber,
			Notes:     "traslado entre ubicaciones",
		}); err != nil {
			return err
		}
		now := time.Now()
		return r.Transfers.UpdateStatus(companyID, id, entity.TransferStatusCompleted, &now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, id)
}

func toTransferResponse(t *entity.StockTransfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		ProductID:      t.ProductID,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Quantity:       t.Quantity,
		Status:         t.Status,
		Notes:          t.Notes,
		CompletedAt:    t.CompletedAt,
		CreatedAt:      t.CreatedAt,
	}
}
