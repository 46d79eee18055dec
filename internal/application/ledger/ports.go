package ledger

import (
	"context"

	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD. Toda operación de
// ciclo de vida que toque varios registros (recepción, proceso de venta,
// traslado, cierre de conteo) recibe este conjunto y ejecuta todo-o-nada.
type Repos struct {
	Movements      repository.StockMovementRepository
	Products       repository.ProductRepository
	Inventory      repository.InventoryRepository
	PurchaseOrders repository.PurchaseOrderRepository
	SalesOrders    repository.SalesOrderRepository
	Returns        repository.ReturnRepository
	Transfers      repository.StockTransferRepository
	CycleCounts    repository.CycleCountRepository
	Adjustments    repository.StockAdjustmentRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Commit si fn retorna nil; Rollback en caso contrario, sin
// dejar visible ninguna mutación parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *Repos) error) error
}
