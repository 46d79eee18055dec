// Package cyclecount implementa conteos físicos por ubicación: snapshot de
// cantidades de sistema al crear, captura de conteos y cierre que convierte
// cada varianza en un ajuste por el camino del ledger.
package cyclecount

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/lifecycle"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// UseCase casos de uso de conteos cíclicos.
type UseCase struct {
	tx        ledger.TxRunner
	counts    repository.CycleCountRepository
	inventory repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ledger.TxRunner, counts repository.CycleCountRepository, inventory repository.InventoryRepository) *UseCase {
	return &UseCase{tx: tx, counts: counts, inventory: inventory}
}

// Create crea un conteo en estado planned con consecutivo CC-##### y toma el
// snapshot de SystemQty desde la proyección de la ubicación. El snapshot no
// bloquea: movimientos posteriores no lo actualizan.
func (uc *UseCase) Create(companyID, userID string, in dto.CreateCycleCountRequest) (*dto.CycleCountResponse, error) {
	if in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.inventory.ListByLocation(companyID, in.LocationID)
	if err != nil {
		return nil, err
	}
	seq, err := uc.counts.Count(companyID)
	if err != nil {
		return nil, err
	}
	countID := uuid.New().String()
	items := make([]entity.CycleCountItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entity.CycleCountItem{
			ID:        uuid.New().String(),
			CountID:   countID,
			ProductID: row.ProductID,
			SystemQty: row.Quantity,
		})
	}
	now := time.Now()
	count := &entity.CycleCount{
		ID:          countID,
		CompanyID:   companyID,
		CountNumber: fmt.Sprintf("CC-%05d", seq+1),
		LocationID:  in.LocationID,
		Status:      entity.CycleCountStatusPlanned,
		Notes:       in.Notes,
		CreatedBy:   userID,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.counts.Create(count); err != nil {
		return nil, err
	}
	return toCycleCountResponse(count), nil
}

// GetByID obtiene un conteo con sus líneas.
func (uc *UseCase) GetByID(companyID, id string) (*dto.CycleCountResponse, error) {
	count, err := uc.counts.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	return toCycleCountResponse(count), nil
}

// List lista conteos de la empresa, opcionalmente filtrados por estado.
func (uc *UseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.CycleCountResponse, error) {
	list, err := uc.counts.List(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CycleCountResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCycleCountResponse(c))
	}
	return out, nil
}

// SubmitItems registra cantidades contadas. Cada línea recibe CountedQty y su
// Variance = CountedQty - SystemQty; un reconteo sobrescribe el anterior. Al
// primer envío el conteo pasa de planned a in_progress.
func (uc *UseCase) SubmitItems(companyID, id string, in dto.SubmitCountItemsRequest) (*dto.CycleCountResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	count, err := uc.counts.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if count.Status == entity.CycleCountStatusCompleted {
		return nil, fmt.Errorf("%w: conteo en estado %s", domain.ErrInvalidTransition, count.Status)
	}
	lines := make(map[string]*entity.CycleCountItem, len(count.Items))
	for i := range count.Items {
		lines[count.Items[i].ID] = &count.Items[i]
	}
	now := time.Now()
	for _, req := range in.Items {
		line, ok := lines[req.ItemID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if req.CountedQty.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		variance := req.CountedQty.Sub(line.SystemQty)
		if err := uc.counts.UpdateItemCount(line.ID, req.CountedQty, variance, now); err != nil {
			return nil, err
		}
	}
	if count.Status == entity.CycleCountStatusPlanned {
		if err := uc.counts.UpdateStatus(companyID, id, entity.CycleCountStatusInProgress, nil); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(companyID, id)
}

// Complete cierra el conteo en una sola transacción: cada línea contada con
// varianza no nula genera un ajuste "correction" vía ledger y corrige la fila
// de inventario de la ubicación con el mismo delta. Las líneas sin conteo no
// se tocan. El estado final es terminal.
func (uc *UseCase) Complete(ctx context.Context, companyID, userID, id string) (*dto.CycleCountResponse, error) {
	err := uc.tx.Run(ctx, func(r *ledger.Repos) error {
		count, err := r.CycleCounts.GetByID(companyID, id)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if !lifecycle.CycleCount.Can(count.Status, entity.CycleCountStatusCompleted) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, count.Status, entity.CycleCountStatusCompleted)
		}
		for _, it := range count.Items {
			if it.CountedQty == nil || it.Variance == nil || it.Variance.IsZero() {
				continue
			}
			adj := &entity.StockAdjustment{
				ID:             uuid.New().String(),
				CompanyID:      companyID,
				ProductID:      it.ProductID,
				AdjustmentType: entity.AdjustmentTypeCorrection,
				Quantity:       *it.Variance,
				Reason:         "varianza de conteo físico",
				Reference:      count.CountNumber,
				CreatedBy:      userID,
				CreatedAt:      time.Now(),
			}
			if err := r.Adjustments.Create(adj); err != nil {
				return err
			}
			if _, err := ledger.Record(r, companyID, userID, ledger.MovementInput{
				ProductID: it.ProductID,
				Type:      entity.MovementTypeAdjustment,
				Quantity:  *it.Variance,
				Reference: count.CountNumber,
				Notes:     "varianza de conteo físico",
			}); err != nil {
				return err
			}
			if err := r.Inventory.AddQuantity(companyID, it.ProductID, count.LocationID, *it.Variance); err != nil {
				return err
			}
		}
		now := time.Now()
		return r.CycleCounts.UpdateStatus(companyID, id, entity.CycleCountStatusCompleted, &now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, id)
}

// Delete elimina un conteo; solo en planned.
func (uc *UseCase) Delete(companyID, id string) error {
	count, err := uc.counts.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if count == nil {
		return domain.ErrNotFound
	}
	if count.Status != entity.CycleCountStatusPlanned {
		return domain.ErrConflict
	}
	return uc.counts.Delete(companyID, id)
}

func toCycleCountResponse(c *entity.CycleCount) *dto.CycleCountResponse {
	items := make([]dto.CycleCountItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CycleCountItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			SystemQty:  it.SystemQty,
			CountedQty: it.CountedQty,
			Variance:   it.Variance,
			CountedAt:  it.CountedAt,
		})
	}
	return &dto.CycleCountResponse{
		ID:          c.ID,
		CountNumber: c.CountNumber,
		LocationID:  c.LocationID,
		Status:      c.Status,
		Notes:       c.Notes,
		CompletedAt: c.CompletedAt,
		Items:       items,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
