package controller

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/application/cache"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/usecase"
)

func idOfRoastery(r *dto.RoasteryResponse) string { return r.ID }
func idOfGrinder(g *dto.GrinderResponse) string   { return g.ID }
func idOfBrewer(b *dto.BrewerResponse) string     { return b.ID }

// RoasteryController formularios de tostadores.
type RoasteryController struct {
	core *Core
	uc   *usecase.RoasteryUseCase
}

// NewRoasteryController construye el controlador.
func NewRoasteryController(core *Core, uc *usecase.RoasteryUseCase) *RoasteryController {
	return &RoasteryController{core: core, uc: uc}
}

func (c *RoasteryController) List(ctx context.Context, id session.Identity) ([]*dto.RoasteryResponse, error) {
	return fetch(ctx, c.core, id, cache.CollectionRoasteries, c.uc.List)
}

func (c *RoasteryController) Get(ctx context.Context, id session.Identity, roasteryID string) (*dto.RoasteryResponse, error) {
	return c.uc.Get(ctx, id, roasteryID)
}

func (c *RoasteryController) Create(ctx context.Context, id session.Identity, in dto.CreateRoasteryRequest) (*dto.RoasteryResponse, error) {
	return submit(ctx, c.core, id, FormRoasteryCreate, "", &in,
		func(ctx context.Context) (*dto.RoasteryResponse, error) { return c.uc.Create(ctx, id, in) },
		func(r *dto.RoasteryResponse) {
			cache.Prepend(c.core.cache, key(id, cache.CollectionRoasteries), r, idOfRoastery)
		},
	)
}

func (c *RoasteryController) Update(ctx context.Context, id session.Identity, roasteryID string, in dto.UpdateRoasteryRequest) (*dto.RoasteryResponse, error) {
	return submit(ctx, c.core, id, FormRoasteryUpdate, roasteryID, &in,
		func(ctx context.Context) (*dto.RoasteryResponse, error) { return c.uc.Update(ctx, id, roasteryID, in) },
		func(*dto.RoasteryResponse) { c.core.invalidate(id, cache.CollectionRoasteries) },
	)
}

// Delete quita el tostador; los cafés que lo referenciaban quedan sin tostador.
func (c *RoasteryController) Delete(ctx context.Context, id session.Identity, roasteryID string) error {
	_, err := submit(ctx, c.core, id, FormRoasteryDelete, roasteryID, nil,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, c.uc.Delete(ctx, id, roasteryID) },
		func(struct{}) {
			cache.RemoveByID(c.core.cache, key(id, cache.CollectionRoasteries), roasteryID, idOfRoastery)
			c.core.invalidate(id, cache.CollectionBeans)
		},
	)
	return err
}

// GrinderController formularios de molinos.
type GrinderController struct {
	core *Core
	uc   *usecase.GrinderUseCase
}

// NewGrinderController construye el controlador.
func NewGrinderController(core *Core, uc *usecase.GrinderUseCase) *GrinderController {
	return &GrinderController{core: core, uc: uc}
}

func (c *GrinderController) List(ctx context.Context, id session.Identity) ([]*dto.GrinderResponse, error) {
	return fetch(ctx, c.core, id, cache.CollectionGrinders, c.uc.List)
}

func (c *GrinderController) Get(ctx context.Context, id session.Identity, grinderID string) (*dto.GrinderResponse, error) {
	return c.uc.Get(ctx, id, grinderID)
}

func (c *GrinderController) Create(ctx context.Context, id session.Identity, in dto.CreateGrinderRequest) (*dto.GrinderResponse, error) {
	return submit(ctx, c.core, id, FormGrinderCreate, "", &in,
		func(ctx context.Context) (*dto.GrinderResponse, error) { return c.uc.Create(ctx, id, in) },
		func(g *dto.GrinderResponse) {
			cache.Prepend(c.core.cache, key(id, cache.CollectionGrinders), g, idOfGrinder)
		},
	)
}

func (c *GrinderController) Update(ctx context.Context, id session.Identity, grinderID string, in dto.UpdateGrinderRequest) (*dto.GrinderResponse, error) {
	return submit(ctx, c.core, id, FormGrinderUpdate, grinderID, &in,
		func(ctx context.Context) (*dto.GrinderResponse, error) { return c.uc.Update(ctx, id, grinderID, in) },
		func(*dto.GrinderResponse) { c.core.invalidate(id, cache.CollectionGrinders, cache.CollectionBrews) },
	)
}

func (c *GrinderController) Delete(ctx context.Context, id session.Identity, grinderID string) error {
	_, err := submit(ctx, c.core, id, FormGrinderDelete, grinderID, nil,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, c.uc.Delete(ctx, id, grinderID) },
		func(struct{}) {
			cache.RemoveByID(c.core.cache, key(id, cache.CollectionGrinders), grinderID, idOfGrinder)
			c.core.invalidate(id, cache.CollectionBrews)
		},
	)
	return err
}

// BrewerController formularios de métodos de preparación.
type BrewerController struct {
	core *Core
	uc   *usecase.BrewerUseCase
}

// NewBrewerController construye el controlador.
func NewBrewerController(core *Core, uc *usecase.BrewerUseCase) *BrewerController {
	return &BrewerController{core: core, uc: uc}
}

func (c *BrewerController) List(ctx context.Context, id session.Identity) ([]*dto.BrewerResponse, error) {
	return fetch(ctx, c.core, id, cache.CollectionBrewers, c.uc.List)
}

func (c *BrewerController) Get(ctx context.Context, id session.Identity, brewerID string) (*dto.BrewerResponse, error) {
	return c.uc.Get(ctx, id, brewerID)
}

func (c *BrewerController) Create(ctx context.Context, id session.Identity, in dto.CreateBrewerRequest) (*dto.BrewerResponse, error) {
	return submit(ctx, c.core, id, FormBrewerCreate, "", &in,
		func(ctx context.Context) (*dto.BrewerResponse, error) { return c.uc.Create(ctx, id, in) },
		func(b *dto.BrewerResponse) {
			cache.Prepend(c.core.cache, key(id, cache.CollectionBrewers), b, idOfBrewer)
		},
	)
}

func (c *BrewerController) Update(ctx context.Context, id session.Identity, brewerID string, in dto.UpdateBrewerRequest) (*dto.BrewerResponse, error) {
	return submit(ctx, c.core, id, FormBrewerUpdate, brewerID, &in,
		func(ctx context.Context) (*dto.BrewerResponse, error) { return c.uc.Update(ctx, id, brewerID, in) },
		func(*dto.BrewerResponse) { c.core.invalidate(id, cache.CollectionBrewers, cache.CollectionBrews) },
	)
}

func (c *BrewerController) Delete(ctx context.Context, id session.Identity, brewerID string) error {
	_, err := submit(ctx, c.core, id, FormBrewerDelete, brewerID, nil,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, c.uc.Delete(ctx, id, brewerID) },
		func(struct{}) {
			cache.RemoveByID(c.core.cache, key(id, cache.CollectionBrewers), brewerID, idOfBrewer)
			c.core.invalidate(id, cache.CollectionBrews)
		},
	)
	return err
}
