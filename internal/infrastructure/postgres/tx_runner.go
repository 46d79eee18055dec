package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con todos
// los repositorios del ciclo de vida atados a la misma tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un error de fn descarta todo: ninguna mutación parcial
// queda visible.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *ledger.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &ledger.Repos{
		Movements:      NewStockMovementRepository(tx),
		Products:       NewProductRepository(tx),
		Inventory:      NewInventoryRepository(tx),
		PurchaseOrders: NewPurchaseOrderRepository(tx),
		SalesOrders:    NewSalesOrderRepository(tx),
		Returns:        NewReturnRepository(tx),
		Transfers:      NewStockTransferRepository(tx),
		CycleCounts:    NewCycleCountRepository(tx),
		Adjustments:    NewStockAdjustmentRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
