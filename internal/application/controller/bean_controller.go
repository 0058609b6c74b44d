package controller

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/application/cache"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/usecase"
)

func idOfBean(b *dto.BeanResponse) string { return b.ID }

// BeanController formularios de cafés y de sus fechas de tueste.
type BeanController struct {
	core   *Core
	beans  *usecase.BeanUseCase
	roasts *usecase.RoastDateUseCase
}

// NewBeanController construye el controlador.
func NewBeanController(core *Core, beans *usecase.BeanUseCase, roasts *usecase.RoastDateUseCase) *BeanController {
	return &BeanController{core: core, beans: beans, roasts: roasts}
}

// List colección de cafés del usuario (vía caché).
func (c *BeanController) List(ctx context.Context, id session.Identity) ([]*dto.BeanResponse, error) {
	return fetch(ctx, c.core, id, cache.CollectionBeans, c.beans.List)
}

// Get detalle de un café.
func (c *BeanController) Get(ctx context.Context, id session.Identity, beanID string) (*dto.BeanResponse, error) {
	return c.beans.Get(ctx, id, beanID)
}

// Create crea el café y lo antepone a la colección en caché.
func (c *BeanController) Create(ctx context.Context, id session.Identity, in dto.CreateBeanRequest) (*dto.BeanResponse, error) {
	return submit(ctx, c.core, id, FormBeanCreate, "", &in,
		func(ctx context.Context) (*dto.BeanResponse, error) { return c.beans.Create(ctx, id, in) },
		func(b *dto.BeanResponse) { cache.Prepend(c.core.cache, key(id, cache.CollectionBeans), b, idOfBean) },
	)
}

// Update edita el café. Las preparaciones muestran su nombre, así que ambas colecciones se invalidan.
func (c *BeanController) Update(ctx context.Context, id session.Identity, beanID string, in dto.UpdateBeanRequest) (*dto.BeanResponse, error) {
	return submit(ctx, c.core, id, FormBeanUpdate, beanID, &in,
		func(ctx context.Context) (*dto.BeanResponse, error) { return c.beans.Update(ctx, id, beanID, in) },
		func(*dto.BeanResponse) { c.core.invalidate(id, cache.CollectionBeans, cache.CollectionBrews) },
	)
}

// Delete elimina el café y lo quita de la colección; las preparaciones que lo referenciaban cambian.
func (c *BeanController) Delete(ctx context.Context, id session.Identity, beanID string) error {
	_, err := submit(ctx, c.core, id, FormBeanDelete, beanID, nil,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, c.beans.Delete(ctx, id, beanID) },
		func(struct{}) {
			cache.RemoveByID(c.core.cache, key(id, cache.CollectionBeans), beanID, idOfBean)
			c.core.invalidate(id, cache.CollectionBrews)
		},
	)
	return err
}

// ListRoastDates fechas de tueste del café, más reciente primero.
func (c *BeanController) ListRoastDates(ctx context.Context, id session.Identity, beanID string) ([]dto.RoastDateResponse, error) {
	return c.roasts.List(ctx, id, beanID)
}

// AddRoastDate agrega una fecha de tueste. La fecha más cercana del café puede cambiar.
func (c *BeanController) AddRoastDate(ctx context.Context, id session.Identity, beanID string, in dto.RoastDateRequest) (*dto.RoastDateResponse, error) {
	return submit(ctx, c.core, id, FormRoastDateCreate, beanID, &in,
		func(ctx context.Context) (*dto.RoastDateResponse, error) { return c.roasts.Create(ctx, id, beanID, in) },
		func(*dto.RoastDateResponse) { c.core.invalidate(id, cache.CollectionBeans) },
	)
}

// UpdateRoastDate corrige una fecha de tueste.
func (c *BeanController) UpdateRoastDate(ctx context.Context, id session.Identity, beanID, roastDateID string, in dto.RoastDateRequest) (*dto.RoastDateResponse, error) {
	return submit(ctx, c.core, id, FormRoastDateUpdate, roastDateID, &in,
		func(ctx context.Context) (*dto.RoastDateResponse, error) {
			return c.roasts.Update(ctx, id, beanID, roastDateID, in)
		},
		func(*dto.RoastDateResponse) { c.core.invalidate(id, cache.CollectionBeans, cache.CollectionBrews) },
	)
}

// RemoveRoastDate elimina una fecha de tueste. Las preparaciones conservan la fecha copiada.
func (c *BeanController) RemoveRoastDate(ctx context.Context, id session.Identity, beanID, roastDateID string) error {
	_, err := submit(ctx, c.core, id, FormRoastDateDelete, roastDateID, nil,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.roasts.Delete(ctx, id, beanID, roastDateID)
		},
		func(struct{}) { c.core.invalidate(id, cache.CollectionBeans, cache.CollectionBrews) },
	)
	return err
}
