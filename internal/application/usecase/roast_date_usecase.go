package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

// RoastDateUseCase fechas de tueste de un bean. Toda operación verifica primero que el bean
// sea del usuario y que la fecha pertenezca a ese bean.
type RoastDateUseCase struct {
	beans      repository.BeanRepository
	roastDates repository.RoastDateRepository
	retry      RetryPolicy
	now        func() time.Time
}

// NewRoastDateUseCase construye el caso de uso.
func NewRoastDateUseCase(beans repository.BeanRepository, roastDates repository.RoastDateRepository, retry RetryPolicy) *RoastDateUseCase {
	return &RoastDateUseCase{beans: beans, roastDates: roastDates, retry: retry, now: time.Now}
}

// List fechas del bean, más recientes primero.
func (uc *RoastDateUseCase) List(ctx context.Context, id session.Identity, beanID string) ([]dto.RoastDateResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	if err := uc.ownedBean(ctx, userID, beanID); err != nil {
		return nil, err
	}
	list, err := retry(ctx, uc.retry, func() ([]entity.RoastDate, error) {
		return uc.roastDates.ListByBean(ctx, userID, beanID)
	})
	if err != nil {
		return nil, err
	}
	return mapList(list, toRoastDateResponse), nil
}

// Create agrega una fecha de tueste al bean.
func (uc *RoastDateUseCase) Create(ctx context.Context, id session.Identity, beanID string, in dto.RoastDateRequest) (*dto.RoastDateResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	date, err := entity.ParseCalendarDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date", domain.ErrValidation)
	}
	if err := uc.ownedBean(ctx, userID, beanID); err != nil {
		return nil, err
	}
	rd := &entity.RoastDate{
		ID:        uuid.New().String(),
		UserID:    userID,
		BeanID:    beanID,
		Date:      date,
		CreatedAt: uc.now(),
	}
	if err := uc.roastDates.Create(ctx, rd); err != nil {
		return nil, err
	}
	out := toRoastDateResponse(*rd)
	return &out, nil
}

// Update corrige la fecha. Los brews que ya la usaron conservan su copia.
func (uc *RoastDateUseCase) Update(ctx context.Context, id session.Identity, beanID, roastDateID string, in dto.RoastDateRequest) (*dto.RoastDateResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	date, err := entity.ParseCalendarDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date", domain.ErrValidation)
	}
	rd, err := uc.load(ctx, userID, beanID, roastDateID)
	if err != nil {
		return nil, err
	}
	rd.Date = date
	if err := retryErr(ctx, uc.retry, func() error { return uc.roastDates.Update(ctx, rd) }); err != nil {
		return nil, err
	}
	out := toRoastDateResponse(*rd)
	return &out, nil
}

// Delete quita la fecha del bean.
func (uc *RoastDateUseCase) Delete(ctx context.Context, id session.Identity, beanID, roastDateID string) error {
	userID, err := id.Require()
	if err != nil {
		return err
	}
	if _, err := uc.load(ctx, userID, beanID, roastDateID); err != nil {
		return err
	}
	return retryErr(ctx, uc.retry, func() error { return uc.roastDates.Delete(ctx, userID, roastDateID) })
}

func (uc *RoastDateUseCase) load(ctx context.Context, userID, beanID, roastDateID string) (*entity.RoastDate, error) {
	rd, err := retry(ctx, uc.retry, func() (*entity.RoastDate, error) {
		return uc.roastDates.GetByID(ctx, userID, roastDateID)
	})
	if err != nil {
		return nil, err
	}
	if rd == nil || rd.BeanID != beanID {
		return nil, domain.ErrNotFound
	}
	return rd, nil
}

func (uc *RoastDateUseCase) ownedBean(ctx context.Context, userID, beanID string) error {
	bean, err := retry(ctx, uc.retry, func() (*entity.Bean, error) {
		return uc.beans.GetByID(ctx, userID, beanID)
	})
	if err != nil {
		return err
	}
	if bean == nil {
		return domain.ErrNotFound
	}
	return nil
}
