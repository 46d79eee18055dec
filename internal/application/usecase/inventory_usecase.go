package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// InventoryUseCase lectura y asignación inicial de la proyección por
// ubicación. Los traslados y conteos tienen sus propios flujos; este caso de
// uso solo cubre la siembra de una fila y los listados.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Upsert fija la cantidad absoluta de un producto en una ubicación
// (asignación inicial o corrección manual de la proyección; no toca el ledger
// ni Product.Stock).
func (uc *InventoryUseCase) Upsert(companyID string, in dto.UpsertInventoryRequest) (*dto.InventoryRowResponse, error) {
	if in.ProductID == "" || in.LocationID == "" || in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	inv := &entity.LocationInventory{
		CompanyID:  companyID,
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		UpdatedAt:  time.Now(),
	}
	if err := uc.repo.Set(inv); err != nil {
		return nil, err
	}
	rows, err := uc.toRows([]*entity.LocationInventory{inv})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

// List lista la proyección completa de la empresa.
func (uc *InventoryUseCase) List(companyID string, page dto.PageRequest) ([]*dto.InventoryRowResponse, error) {
	list, err := uc.repo.List(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toRows(list)
}

// ListByLocation lista la proyección de una ubicación.
func (uc *InventoryUseCase) ListByLocation(companyID, locationID string) ([]*dto.InventoryRowResponse, error) {
	list, err := uc.repo.ListByLocation(companyID, locationID)
	if err != nil {
		return nil, err
	}
	return uc.toRows(list)
}

// toRows anota cada fila con la suma del producto en todas las ubicaciones,
// resolviendo cada producto una sola vez.
func (uc *InventoryUseCase) toRows(list []*entity.LocationInventory) ([]*dto.InventoryRowResponse, error) {
	totals := make(map[string]decimal.Decimal, len(list))
	out := make([]*dto.InventoryRowResponse, 0, len(list))
	for _, inv := range list {
		total, ok := totals[inv.ProductID]
		if !ok {
			var err error
			total, err = uc.repo.SumByProduct(inv.CompanyID, inv.ProductID)
			if err != nil {
				return nil, err
			}
			totals[inv.ProductID] = total
		}
		out = append(out, &dto.InventoryRowResponse{
			ProductID:    inv.ProductID,
			LocationID:   inv.LocationID,
			Quantity:     inv.Quantity,
			ProductTotal: total,
			UpdatedAt:    inv.UpdatedAt,
		})
	}
	return out, nil
}
