package memory

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var _ ports.BeanTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
// Mientras dura la transacción el Store queda bloqueado para el resto de operaciones.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunBean ejecuta fn con repos de Bean y RoastDate atados a la transacción.
func (r *TxRunner) RunBean(ctx context.Context, fn func(
	beanRepo repository.BeanRepository,
	roastDateRepo repository.RoastDateRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := &Store{state: r.s.state.clone(), fault: r.s.fault}
	if err := fn(tx.Beans(), tx.RoastDates()); err != nil {
		return err
	}
	r.s.state = tx.state
	return nil
}
