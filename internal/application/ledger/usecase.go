package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// MovementInput entrada para registrar un movimiento en el ledger.
// Quantity es la magnitud (> 0) para in/out/transfer; para adjustment es el
// delta con signo del caller, que se normaliza a (tipo, |valor|) antes de
// persistir.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	Reference string
	Notes     string
}

// Record es el único punto de mutación de cantidades del sistema: agrega un
// StockMovement inmutable y actualiza Product.Stock con un incremento atómico
// en el store (in: +q, out: -q, adjustment: delta con signo, transfer: sin
// efecto sobre el agregado). Debe invocarse con repositorios atados a la
// transacción de la operación que lo origina.
func Record(r *Repos, companyID, userID string, in MovementInput) (*entity.StockMovement, error) {
	if in.ProductID == "" || !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}

	var stockDelta decimal.Decimal
	switch in.Type {
	case entity.MovementTypeIn:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		stockDelta = in.Quantity
	case entity.MovementTypeOut:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		stockDelta = in.Quantity.Neg()
	case entity.MovementTypeTransfer:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		// un traslado reubica stock entre ubicaciones; el agregado no cambia
		stockDelta = decimal.Zero
	case entity.MovementTypeAdjustment:
		if in.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		stockDelta = in.Quantity
	}

	if stockDelta.IsZero() {
		// sin delta de agregado: validar existencia del producto explícitamente
		product, err := r.Products.GetByID(companyID, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	} else {
		// incremento atómico; retorna ErrNotFound si el producto no existe en la empresa
		if err := r.Products.AdjustStock(companyID, in.ProductID, stockDelta); err != nil {
			return nil, err
		}
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity.Abs(),
		Reference: in.Reference,
		Notes:     in.Notes,
		CreatedAt: time.Now(),
		CreatedBy: userID,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Service expone el ledger a callers HTTP: registro directo de entradas y
// salidas manuales, y lectura del historial.
type Service struct {
	tx        TxRunner
	movements repository.StockMovementRepository
}

// NewService construye el servicio del ledger.
func NewService(tx TxRunner, movements repository.StockMovementRepository) *Service {
	return &Service{tx: tx, movements: movements}
}

// RegisterMovement registra un movimiento manual (solo in/out: ajustes y
// traslados tienen sus propios flujos de documento).
func (s *Service) RegisterMovement(ctx context.Context, companyID, userID string, in MovementInput) (*entity.StockMovement, error) {
	if in.Type != entity.MovementTypeIn && in.Type != entity.MovementTypeOut {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.StockMovement
	err := s.tx.Run(ctx, func(r *Repos) error {
		m, err := Record(r, companyID, userID, in)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// List devuelve el historial de movimientos, más recientes primero.
func (s *Service) List(companyID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 100
	}
	return s.movements.List(companyID, f)
}
