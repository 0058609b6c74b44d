package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jhoicas/Brewlog-api/internal/domain"
)

// RetryPolicy reintentos con backoff exponencial para operaciones idempotentes
// (list, get, update, delete). Solo se reintenta domain.ErrStoreUnavailable;
// NotFound, ValidationFailed y el resto se devuelven en el primer intento.
// Los create nunca pasan por aquí. MaxElapsed = 0 desactiva los reintentos.
type RetryPolicy struct {
	MaxElapsed      time.Duration
	InitialInterval time.Duration
}

// NoRetry política sin reintentos.
var NoRetry = RetryPolicy{}

func retry[T any](ctx context.Context, p RetryPolicy, op func() (T, error)) (T, error) {
	if p.MaxElapsed <= 0 {
		return op()
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = p.MaxElapsed
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	return backoff.RetryWithData(func() (T, error) {
		v, err := op()
		if err != nil && !errors.Is(err, domain.ErrStoreUnavailable) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithContext(b, ctx))
}

func retryErr(ctx context.Context, p RetryPolicy, op func() error) error {
	_, err := retry(ctx, p, func() (struct{}, error) { return struct{}{}, op() })
	return err
}
