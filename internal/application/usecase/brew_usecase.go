package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

// BrewRepos repositorios que usa BrewUseCase.
type BrewRepos struct {
	Brews    repository.BrewRepository
	Beans    repository.BeanRepository
	Grinders repository.GrinderRepository
	Brewers  repository.BrewerRepository
}

// BrewUseCase registro de brews: valida la pertenencia de bean, fecha de tueste, molino y brewer,
// congela la fecha de tueste elegida y, si se pide, adjunta el análisis del LLM.
type BrewUseCase struct {
	repos       BrewRepos
	analysis    *AnalysisUseCase
	renderer    ports.BrewCardRenderer
	attachments attachmentFlow
	retry       RetryPolicy
	log         zerolog.Logger
	now         func() time.Time
}

// NewBrewUseCase construye el caso de uso.
func NewBrewUseCase(repos BrewRepos, analysis *AnalysisUseCase, renderer ports.BrewCardRenderer, store ports.AttachmentStore, retry RetryPolicy, log zerolog.Logger) *BrewUseCase {
	return &BrewUseCase{
		repos:       repos,
		analysis:    analysis,
		renderer:    renderer,
		attachments: attachmentFlow{store: store, log: log},
		retry:       retry,
		log:         log,
		now:         time.Now,
	}
}

// List brews del usuario ordenados por fecha de preparación, más recientes primero.
func (uc *BrewUseCase) List(ctx context.Context, id session.Identity) ([]*dto.BrewResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	list, err := retry(ctx, uc.retry, func() ([]*entity.Brew, error) {
		return uc.repos.Brews.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return mapList(list, toBrewResponse), nil
}

// Get obtiene un brew del usuario con sus relaciones.
func (uc *BrewUseCase) Get(ctx context.Context, id session.Identity, brewID string) (*dto.BrewResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	b, err := uc.load(ctx, userID, brewID)
	if err != nil {
		return nil, err
	}
	return toBrewResponse(b), nil
}

// Create registra un brew. Sin roast_date_id se usa la fecha de tueste del bean más cercana a hoy.
// Con analyze = true un fallo del análisis solo se registra en el log: el brew se guarda igual.
func (uc *BrewUseCase) Create(ctx context.Context, id session.Identity, in dto.CreateBrewRequest) (*dto.BrewResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	brewedAt, err := entity.ParseCalendarDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date", domain.ErrValidation)
	}
	if in.Dose == nil || in.Yield == nil || in.BrewTime == nil {
		return nil, fmt.Errorf("%w: dose, yield y brew_time son obligatorios", domain.ErrValidation)
	}
	bean, err := uc.ownedBean(ctx, userID, in.BeanID)
	if err != nil {
		return nil, err
	}
	grinder, err := uc.ownedGrinder(ctx, userID, in.GrinderID)
	if err != nil {
		return nil, err
	}
	brewer, err := uc.ownedBrewer(ctx, userID, in.BrewerID)
	if err != nil {
		return nil, err
	}
	roast, err := pickRoastDate(bean, in.RoastDateID, uc.now())
	if err != nil {
		return nil, err
	}

	imageURL, err := uc.attachments.upload(ctx, ports.FolderBrewImages, userID, in.Image)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	brew := &entity.Brew{
		ID:              uuid.New().String(),
		UserID:          userID,
		BeanID:          &bean.ID,
		GrinderID:       &grinder.ID,
		BrewerID:        &brewer.ID,
		BrewedAt:        brewedAt,
		GrindSize:       strings.TrimSpace(in.GrindSize),
		BrewTimeSeconds: *in.BrewTime,
		Dose:            decimal.NewFromFloat(*in.Dose),
		Yield:           decimal.NewFromFloat(*in.Yield),
		Notes:           strings.TrimSpace(in.Notes),
		ImageURL:        imageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
		Bean:            bean,
		Grinder:         grinder,
		Brewer:          brewer,
	}
	setRoast(brew, roast)
	if err := uc.repos.Brews.Create(ctx, brew); err != nil {
		uc.attachments.release(ctx, imageURL)
		return nil, err
	}

	if in.Analyze {
		uc.attachAnalysis(ctx, brew)
	}
	return toBrewResponse(brew), nil
}

// Update aplica los campos presentes. Si cambia el bean sin roast_date_id, la fecha congelada
// pasa a ser la más cercana del nuevo bean.
func (uc *BrewUseCase) Update(ctx context.Context, id session.Identity, brewID string, in dto.UpdateBrewRequest) (*dto.BrewResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	brew, err := uc.load(ctx, userID, brewID)
	if err != nil {
		return nil, err
	}
	if in.Date != nil {
		d, err := entity.ParseCalendarDate(*in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date", domain.ErrValidation)
		}
		brew.BrewedAt = d
	}
	beanChanged := in.BeanID != nil && (brew.BeanID == nil || *brew.BeanID != *in.BeanID)
	if beanChanged {
		bean, err := uc.ownedBean(ctx, userID, *in.BeanID)
		if err != nil {
			return nil, err
		}
		brew.Bean, brew.BeanID = bean, &bean.ID
	}
	if beanChanged || in.RoastDateID != nil {
		if brew.Bean == nil {
			return nil, domain.ErrNotFound
		}
		roast, err := pickRoastDate(brew.Bean, in.RoastDateID, uc.now())
		if err != nil {
			return nil, err
		}
		setRoast(brew, roast)
	}
	if in.GrinderID != nil {
		g, err := uc.ownedGrinder(ctx, userID, *in.GrinderID)
		if err != nil {
			return nil, err
		}
		brew.Grinder, brew.GrinderID = g, &g.ID
	}
	if in.BrewerID != nil {
		b, err := uc.ownedBrewer(ctx, userID, *in.BrewerID)
		if err != nil {
			return nil, err
		}
		brew.Brewer, brew.BrewerID = b, &b.ID
	}
	if in.Dose != nil {
		brew.Dose = decimal.NewFromFloat(*in.Dose)
	}
	if in.Yield != nil {
		brew.Yield = decimal.NewFromFloat(*in.Yield)
	}
	if in.BrewTime != nil {
		brew.BrewTimeSeconds = *in.BrewTime
	}
	if in.GrindSize != nil {
		brew.GrindSize = strings.TrimSpace(*in.GrindSize)
	}
	if in.Notes != nil {
		brew.Notes = strings.TrimSpace(*in.Notes)
	}

	next, uploaded, stale, err := uc.attachments.resolve(ctx, ports.FolderBrewImages, userID, brew.ImageURL, in.Image, in.RemoveImage)
	if err != nil {
		return nil, err
	}
	brew.ImageURL = next
	brew.UpdatedAt = uc.now()
	if err := retryErr(ctx, uc.retry, func() error { return uc.repos.Brews.Update(ctx, brew) }); err != nil {
		uc.attachments.release(ctx, uploaded)
		return nil, err
	}
	uc.attachments.release(ctx, stale)
	return toBrewResponse(brew), nil
}

// Delete elimina el brew y después su imagen.
func (uc *BrewUseCase) Delete(ctx context.Context, id session.Identity, brewID string) error {
	userID, err := id.Require()
	if err != nil {
		return err
	}
	brew, err := uc.load(ctx, userID, brewID)
	if err != nil {
		return err
	}
	if err := retryErr(ctx, uc.retry, func() error { return uc.repos.Brews.Delete(ctx, userID, brewID) }); err != nil {
		return err
	}
	uc.attachments.release(ctx, brew.ImageURL)
	return nil
}

// Analyze pide (o repite) el análisis del brew y guarda el texto. Aquí el fallo sí se devuelve.
func (uc *BrewUseCase) Analyze(ctx context.Context, id session.Identity, brewID string) (*dto.BrewAnalysisResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	brew, err := uc.load(ctx, userID, brewID)
	if err != nil {
		return nil, err
	}
	text, err := uc.analysis.Analyze(ctx, brew)
	if err != nil {
		return nil, err
	}
	if err := uc.saveSuggestions(ctx, brew, text); err != nil {
		return nil, err
	}
	return &dto.BrewAnalysisResponse{BrewID: brew.ID, AISuggestions: text}, nil
}

// Card genera la ficha PDF del brew.
func (uc *BrewUseCase) Card(ctx context.Context, id session.Identity, brewID string) ([]byte, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	brew, err := uc.load(ctx, userID, brewID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderBrewCard(brew)
}

func (uc *BrewUseCase) attachAnalysis(ctx context.Context, brew *entity.Brew) {
	text, err := uc.analysis.Analyze(ctx, brew)
	if err != nil {
		uc.log.Warn().Err(err).Str("brew_id", brew.ID).Msg("análisis no disponible; el brew se guardó sin sugerencias")
		return
	}
	if err := uc.saveSuggestions(ctx, brew, text); err != nil {
		uc.log.Warn().Err(err).Str("brew_id", brew.ID).Msg("no se pudieron guardar las sugerencias")
	}
}

// saveSuggestions persiste solo el texto del análisis. El resto de la fila puede haber cambiado
// mientras se esperaba al LLM y no se reescribe.
func (uc *BrewUseCase) saveSuggestions(ctx context.Context, brew *entity.Brew, text string) error {
	at := uc.now()
	err := retryErr(ctx, uc.retry, func() error {
		return uc.repos.Brews.SetAISuggestions(ctx, brew.UserID, brew.ID, text, at)
	})
	if err != nil {
		return err
	}
	brew.AISuggestions = text
	brew.UpdatedAt = at
	return nil
}

func (uc *BrewUseCase) load(ctx context.Context, userID, brewID string) (*entity.Brew, error) {
	b, err := retry(ctx, uc.retry, func() (*entity.Brew, error) {
		return uc.repos.Brews.GetByID(ctx, userID, brewID)
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (uc *BrewUseCase) ownedBean(ctx context.Context, userID, beanID string) (*entity.Bean, error) {
	b, err := retry(ctx, uc.retry, func() (*entity.Bean, error) {
		return uc.repos.Beans.GetByID(ctx, userID, beanID)
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (uc *BrewUseCase) ownedGrinder(ctx context.Context, userID, grinderID string) (*entity.Grinder, error) {
	g, err := retry(ctx, uc.retry, func() (*entity.Grinder, error) {
		return uc.repos.Grinders.GetByID(ctx, userID, grinderID)
	})
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (uc *BrewUseCase) ownedBrewer(ctx context.Context, userID, brewerID string) (*entity.Brewer, error) {
	b, err := retry(ctx, uc.retry, func() (*entity.Brewer, error) {
		return uc.repos.Brewers.GetByID(ctx, userID, brewerID)
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// pickRoastDate devuelve la fecha elegida (que debe ser del bean) o, sin elección, la más cercana a now.
// nil si el bean no tiene fechas.
func pickRoastDate(bean *entity.Bean, roastDateID *string, now time.Time) (*entity.RoastDate, error) {
	if roastDateID == nil || *roastDateID == "" {
		return bean.ClosestRoast(now), nil
	}
	for i := range bean.RoastDates {
		if bean.RoastDates[i].ID == *roastDateID {
			rd := bean.RoastDates[i]
			return &rd, nil
		}
	}
	return nil, domain.ErrNotFound
}

// setRoast guarda la referencia débil y la copia congelada de la fecha.
func setRoast(brew *entity.Brew, rd *entity.RoastDate) {
	if rd == nil {
		brew.RoastDateID, brew.RoastDate = nil, nil
		return
	}
	id, date := rd.ID, rd.Date
	brew.RoastDateID, brew.RoastDate = &id, &date
}
