package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var _ ports.BeanTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBean inicia una transacción, ejecuta fn con repos de Bean y RoastDate atados a la tx
// y hace Commit o Rollback (alta de un bean con su primera fecha de tueste).
func (r *TxRunner) RunBean(ctx context.Context, fn func(
	beanRepo repository.BeanRepository,
	roastDateRepo repository.RoastDateRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBeanRepository(tx), NewRoastDateRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit transaction", fmt.Errorf("bean: %w", err))
	}
	return nil
}
