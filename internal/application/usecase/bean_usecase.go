package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

// BeanUseCase casos de uso CRUD para beans. Las fechas de tueste se gestionan con RoastDateUseCase,
// salvo la fecha inicial, que se crea en la misma transacción que el bean.
type BeanUseCase struct {
	beans      repository.BeanRepository
	roasteries repository.RoasteryRepository
	tx         ports.BeanTxRunner
	retry      RetryPolicy
	now        func() time.Time
}

// NewBeanUseCase construye el caso de uso.
func NewBeanUseCase(beans repository.BeanRepository, roasteries repository.RoasteryRepository, tx ports.BeanTxRunner, retry RetryPolicy) *BeanUseCase {
	return &BeanUseCase{beans: beans, roasteries: roasteries, tx: tx, retry: retry, now: time.Now}
}

// List beans del usuario, más recientes primero.
func (uc *BeanUseCase) List(ctx context.Context, id session.Identity) ([]*dto.BeanResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	list, err := retry(ctx, uc.retry, func() ([]*entity.Bean, error) {
		return uc.beans.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return mapList(list, func(b *entity.Bean) *dto.BeanResponse { return toBeanResponse(b, now) }), nil
}

// Get obtiene un bean del usuario.
func (uc *BeanUseCase) Get(ctx context.Context, id session.Identity, beanID string) (*dto.BeanResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	bean, err := uc.load(ctx, userID, beanID)
	if err != nil {
		return nil, err
	}
	return toBeanResponse(bean, uc.now()), nil
}

// Create crea un bean y, si viene roast_date, su primera fecha de tueste.
func (uc *BeanUseCase) Create(ctx context.Context, id session.Identity, in dto.CreateBeanRequest) (*dto.BeanResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	roasteryID, err := uc.ownedRoastery(ctx, userID, in.RoasteryID)
	if err != nil {
		return nil, err
	}
	var initial *time.Time
	if in.RoastDate != nil && *in.RoastDate != "" {
		d, err := entity.ParseCalendarDate(*in.RoastDate)
		if err != nil {
			return nil, fmt.Errorf("%w: roast_date", domain.ErrValidation)
		}
		initial = &d
	}

	now := uc.now()
	bean := &entity.Bean{
		ID:         uuid.New().String(),
		UserID:     userID,
		RoasteryID: roasteryID,
		Name:       strings.TrimSpace(in.Name),
		Country:    normalizeOrigin(in.Country),
		Region:     normalizeOrigin(in.Region),
		Farm:       strings.TrimSpace(in.Farm),
		Altitude:   strings.TrimSpace(in.Altitude),
		RoastType:  in.RoastType,
		RoastDates: []entity.RoastDate{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.tx.RunBean(ctx, func(beans repository.BeanRepository, roastDates repository.RoastDateRepository) error {
		if err := beans.Create(ctx, bean); err != nil {
			return err
		}
		if initial == nil {
			return nil
		}
		rd := entity.RoastDate{
			ID:        uuid.New().String(),
			UserID:    userID,
			BeanID:    bean.ID,
			Date:      *initial,
			CreatedAt: now,
		}
		if err := roastDates.Create(ctx, &rd); err != nil {
			return err
		}
		bean.RoastDates = append(bean.RoastDates, rd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBeanResponse(bean, now), nil
}

// Update aplica los campos presentes en in.
func (uc *BeanUseCase) Update(ctx context.Context, id session.Identity, beanID string, in dto.UpdateBeanRequest) (*dto.BeanResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	bean, err := uc.load(ctx, userID, beanID)
	if err != nil {
		return nil, err
	}
	if in.RoasteryID != nil {
		bean.RoasteryID, err = uc.ownedRoastery(ctx, userID, in.RoasteryID)
		if err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		bean.Name = strings.TrimSpace(*in.Name)
	}
	if in.Country != nil {
		bean.Country = normalizeOrigin(*in.Country)
	}
	if in.Region != nil {
		bean.Region = normalizeOrigin(*in.Region)
	}
	if in.Farm != nil {
		bean.Farm = strings.TrimSpace(*in.Farm)
	}
	if in.Altitude != nil {
		bean.Altitude = strings.TrimSpace(*in.Altitude)
	}
	if in.RoastType != nil {
		bean.RoastType = *in.RoastType
	}
	now := uc.now()
	bean.UpdatedAt = now
	if err := retryErr(ctx, uc.retry, func() error { return uc.beans.Update(ctx, bean) }); err != nil {
		return nil, err
	}
	return toBeanResponse(bean, now), nil
}

// Delete elimina el bean y sus fechas de tueste. Los brews conservan su copia de la fecha.
func (uc *BeanUseCase) Delete(ctx context.Context, id session.Identity, beanID string) error {
	userID, err := id.Require()
	if err != nil {
		return err
	}
	return retryErr(ctx, uc.retry, func() error { return uc.beans.Delete(ctx, userID, beanID) })
}

func (uc *BeanUseCase) load(ctx context.Context, userID, beanID string) (*entity.Bean, error) {
	bean, err := retry(ctx, uc.retry, func() (*entity.Bean, error) {
		return uc.beans.GetByID(ctx, userID, beanID)
	})
	if err != nil {
		return nil, err
	}
	if bean == nil {
		return nil, domain.ErrNotFound
	}
	return bean, nil
}

// ownedRoastery verifica que el tostador referenciado sea del usuario. nil o "" = sin tostador.
func (uc *BeanUseCase) ownedRoastery(ctx context.Context, userID string, roasteryID *string) (*string, error) {
	if roasteryID == nil || *roasteryID == "" {
		return nil, nil
	}
	r, err := retry(ctx, uc.retry, func() (*entity.Roastery, error) {
		return uc.roasteries.GetByID(ctx, userID, *roasteryID)
	})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	id := r.ID
	return &id, nil
}

// normalizeOrigin "ethiopia " -> "Ethiopia". Conserva mayúsculas existentes ("USA").
func normalizeOrigin(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(strings.TrimSpace(s))
}
