package ports

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

// BeanTxRunner ejecuta fn dentro de una transacción con repos de Bean y RoastDate atados a ella.
// Se usa para crear un bean junto con su fecha de tueste inicial.
type BeanTxRunner interface {
	RunBean(ctx context.Context, fn func(
		beanRepo repository.BeanRepository,
		roastDateRepo repository.RoastDateRepository,
	) error) error
}
