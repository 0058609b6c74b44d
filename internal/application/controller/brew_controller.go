package controller

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Brewlog-api/internal/application/cache"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/usecase"
	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

func idOfBrew(b *dto.BrewResponse) string { return b.ID }

// BrewController formularios de brews y datos del formulario de nuevo brew.
type BrewController struct {
	core     *Core
	brews    *usecase.BrewUseCase
	beans    *usecase.BeanUseCase
	grinders *usecase.GrinderUseCase
	brewers  *usecase.BrewerUseCase
	now      func() time.Time
}

// NewBrewController construye el controlador.
func NewBrewController(core *Core, brews *usecase.BrewUseCase, beans *usecase.BeanUseCase, grinders *usecase.GrinderUseCase, brewers *usecase.BrewerUseCase) *BrewController {
	return &BrewController{core: core, brews: brews, beans: beans, grinders: grinders, brewers: brewers, now: time.Now}
}

func (c *BrewController) List(ctx context.Context, id session.Identity) ([]*dto.BrewResponse, error) {
	return fetch(ctx, c.core, id, cache.CollectionBrews, c.brews.List)
}

func (c *BrewController) Get(ctx context.Context, id session.Identity, brewID string) (*dto.BrewResponse, error) {
	return c.brews.Get(ctx, id, brewID)
}

// Create registra el brew y lo antepone a la colección en caché.
func (c *BrewController) Create(ctx context.Context, id session.Identity, in dto.CreateBrewRequest) (*dto.BrewResponse, error) {
	return submit(ctx, c.core, id, FormBrewCreate, "", &in,
		func(ctx context.Context) (*dto.BrewResponse, error) { return c.brews.Create(ctx, id, in) },
		func(b *dto.BrewResponse) { cache.Prepend(c.core.cache, key(id, cache.CollectionBrews), b, idOfBrew) },
	)
}

// Update edita el brew. La posición en la lista puede cambiar con la fecha: se invalida.
func (c *BrewController) Update(ctx context.Context, id session.Identity, brewID string, in dto.UpdateBrewRequest) (*dto.BrewResponse, error) {
	return submit(ctx, c.core, id, FormBrewUpdate, brewID, &in,
		func(ctx context.Context) (*dto.BrewResponse, error) { return c.brews.Update(ctx, id, brewID, in) },
		func(*dto.BrewResponse) { c.core.invalidate(id, cache.CollectionBrews) },
	)
}

func (c *BrewController) Delete(ctx context.Context, id session.Identity, brewID string) error {
	_, err := submit(ctx, c.core, id, FormBrewDelete, brewID, nil,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, c.brews.Delete(ctx, id, brewID) },
		func(struct{}) { cache.RemoveByID(c.core.cache, key(id, cache.CollectionBrews), brewID, idOfBrew) },
	)
	return err
}

// Analyze pide el análisis y actualiza las sugerencias del brew en la colección cacheada.
func (c *BrewController) Analyze(ctx context.Context, id session.Identity, brewID string) (*dto.BrewAnalysisResponse, error) {
	return submit(ctx, c.core, id, FormBrewAnalyze, brewID, nil,
		func(ctx context.Context) (*dto.BrewAnalysisResponse, error) { return c.brews.Analyze(ctx, id, brewID) },
		func(res *dto.BrewAnalysisResponse) {
			cache.SetQueryData(c.core.cache, key(id, cache.CollectionBrews), func(old []*dto.BrewResponse) []*dto.BrewResponse {
				out := make([]*dto.BrewResponse, len(old))
				for i, b := range old {
					if b.ID == res.BrewID {
						cp := *b
						cp.AISuggestions = res.AISuggestions
						b = &cp
					}
					out[i] = b
				}
				return out
			})
		},
	)
}

// Card ficha PDF del brew.
func (c *BrewController) Card(ctx context.Context, id session.Identity, brewID string) ([]byte, error) {
	return c.brews.Card(ctx, id, brewID)
}

// NewBrewDefaults carga en paralelo cafés, molinos y brewers y preselecciona el café pedido
// (o el más reciente) con su fecha de tueste más cercana a hoy.
func (c *BrewController) NewBrewDefaults(ctx context.Context, id session.Identity, beanID string) (*dto.NewBrewDefaults, error) {
	if _, err := id.Require(); err != nil {
		return nil, err
	}
	var (
		beans    []*dto.BeanResponse
		grinders []*dto.GrinderResponse
		brewers  []*dto.BrewerResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		beans, err = fetch(gctx, c.core, id, cache.CollectionBeans, c.beans.List)
		return err
	})
	g.Go(func() (err error) {
		grinders, err = fetch(gctx, c.core, id, cache.CollectionGrinders, c.grinders.List)
		return err
	})
	g.Go(func() (err error) {
		brewers, err = fetch(gctx, c.core, id, cache.CollectionBrewers, c.brewers.List)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := c.now()
	out := &dto.NewBrewDefaults{
		Beans:    beans,
		Grinders: grinders,
		Brewers:  brewers,
		Date:     entity.CalendarDate(now).Format(entity.DateLayout),
	}
	bean := selectBean(beans, beanID)
	if bean == nil {
		return out, nil
	}
	out.BeanID = bean.ID
	if rd, ok := brewing.Closest(bean.RoastDates, roastDateOf, now); ok {
		out.RoastDateID = rd.ID
		out.RoastDate = rd.Date
	}
	return out, nil
}

func selectBean(beans []*dto.BeanResponse, beanID string) *dto.BeanResponse {
	if beanID == "" {
		if len(beans) > 0 {
			return beans[0]
		}
		return nil
	}
	for _, b := range beans {
		if b.ID == beanID {
			return b
		}
	}
	return nil
}

func roastDateOf(rd dto.RoastDateResponse) time.Time {
	t, _ := entity.ParseCalendarDate(rd.Date)
	return t
}

// SetClock reemplaza el reloj (tests).
func (c *BrewController) SetClock(now func() time.Time) { c.now = now }
