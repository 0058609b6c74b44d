// Package controller implementa los controladores de formularios/mutaciones: validan la entrada,
// impiden un segundo envío del mismo formulario mientras hay uno en curso, ejecutan la escritura,
// aplican el contrato de caché y conservan la última entrada fallida como borrador.
package controller

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Brewlog-api/internal/application/cache"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
	"github.com/jhoicas/Brewlog-api/internal/domain"
)

// Nombres de formulario. Los borradores se indexan por (usuario, formulario); el guard de envío
// además por instancia del envío (ver submissionInstance).
const (
	FormBeanCreate      = "bean.create"
	FormBeanUpdate      = "bean.update"
	FormBeanDelete      = "bean.delete"
	FormRoastDateCreate = "roast_date.create"
	FormRoastDateUpdate = "roast_date.update"
	FormRoastDateDelete = "roast_date.delete"
	FormRoasteryCreate  = "roastery.create"
	FormRoasteryUpdate  = "roastery.update"
	FormRoasteryDelete  = "roastery.delete"
	FormGrinderCreate   = "grinder.create"
	FormGrinderUpdate   = "grinder.update"
	FormGrinderDelete   = "grinder.delete"
	FormBrewerCreate    = "brewer.create"
	FormBrewerUpdate    = "brewer.update"
	FormBrewerDelete    = "brewer.delete"
	FormBrewCreate      = "brew.create"
	FormBrewUpdate      = "brew.update"
	FormBrewDelete      = "brew.delete"
	FormBrewAnalyze     = "brew.analyze"
	FormProfileUpdate   = "profile.update"
)

var forms = map[string]struct{}{
	FormBeanCreate: {}, FormBeanUpdate: {}, FormBeanDelete: {},
	FormRoastDateCreate: {}, FormRoastDateUpdate: {}, FormRoastDateDelete: {},
	FormRoasteryCreate: {}, FormRoasteryUpdate: {}, FormRoasteryDelete: {},
	FormGrinderCreate: {}, FormGrinderUpdate: {}, FormGrinderDelete: {},
	FormBrewerCreate: {}, FormBrewerUpdate: {}, FormBrewerDelete: {},
	FormBrewCreate: {}, FormBrewUpdate: {}, FormBrewDelete: {}, FormBrewAnalyze: {},
	FormProfileUpdate: {},
}

// IsForm indica si name es un formulario conocido.
func IsForm(name string) bool {
	_, ok := forms[name]
	return ok
}

// Core estado compartido por todos los controladores.
type Core struct {
	cache     *cache.QueryClient
	validator *validation.Validator
	log       zerolog.Logger

	mu       sync.Mutex
	inFlight map[flightKey]struct{}
	drafts   map[formKey]any
}

type formKey struct {
	userID string
	form   string
}

type flightKey struct {
	formKey
	instance string
}

type submissionKeyCtx struct{}

// WithSubmissionKey asocia a ctx la clave de envío que manda el cliente (cabecera Idempotency-Key).
// Dos envíos del mismo formulario con la misma clave no corren a la vez; con claves distintas son
// independientes aunque los datos coincidan.
func WithSubmissionKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, submissionKeyCtx{}, key)
}

// submissionInstance identifica un envío: el registro destino más la clave del cliente o, sin clave,
// una huella de los datos. Así solo se rechaza el reenvío idéntico (doble click, reintento del
// navegador) y dos altas distintas del mismo usuario avanzan en paralelo.
func submissionInstance(ctx context.Context, target string, in any) string {
	if k, ok := ctx.Value(submissionKeyCtx{}).(string); ok {
		return target + "|key:" + k
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return target
	}
	return target + "|" + uuid.NewSHA1(uuid.NameSpaceOID, raw).String()
}

// NewCore construye el estado compartido. El cache se suscribe a los cambios de sesión:
// al cerrar sesión se descartan las colecciones y borradores del usuario.
func NewCore(qc *cache.QueryClient, v *validation.Validator, notifier *session.Notifier, log zerolog.Logger) *Core {
	c := &Core{
		cache:     qc,
		validator: v,
		log:       log,
		inFlight:  make(map[flightKey]struct{}),
		drafts:    make(map[formKey]any),
	}
	if notifier != nil {
		notifier.OnAuthChange(c.onAuthChange)
	}
	return c
}

// Cache devuelve el QueryClient compartido.
func (c *Core) Cache() *cache.QueryClient { return c.cache }

func (c *Core) onAuthChange(ev session.Event) {
	if ev.Kind != session.SignedOut {
		return
	}
	n := c.cache.RemoveUser(ev.Identity.UserID)
	c.mu.Lock()
	for k := range c.drafts {
		if k.userID == ev.Identity.UserID {
			delete(c.drafts, k)
		}
	}
	c.mu.Unlock()
	c.log.Debug().Str("user_id", ev.Identity.UserID).Int("collections", n).Msg("sesión cerrada: caché descartada")
}

// InFlight indica si el formulario tiene algún envío en curso (el botón "Guardar" deshabilitado).
func (c *Core) InFlight(id session.Identity, form string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.inFlight {
		if k.formKey == (formKey{id.UserID, form}) {
			return true
		}
	}
	return false
}

// Draft última entrada que falló en el formulario, si la hay.
func (c *Core) Draft(id session.Identity, form string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drafts[formKey{id.UserID, form}]
	return d, ok
}

func (c *Core) acquire(k flightKey) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[k]; busy {
		return nil, domain.ErrSubmissionInFlight
	}
	c.inFlight[k] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inFlight, k)
		c.mu.Unlock()
	}, nil
}

func (c *Core) saveDraft(k formKey, in any) {
	c.mu.Lock()
	c.drafts[k] = in
	c.mu.Unlock()
}

func (c *Core) clearDraft(k formKey) {
	c.mu.Lock()
	delete(c.drafts, k)
	c.mu.Unlock()
}

// submit ejecuta una mutación de formulario:
//  1. sin sesión -> ErrUnauthenticated; con el mismo envío ya en curso -> ErrSubmissionInFlight;
//  2. valida in (nil = sin campos que validar) y, si falla, no llama a write;
//  3. write corre desacoplado de la cancelación de ctx: una vez enviada, la escritura termina;
//  4. onSuccess aplica el contrato de caché aunque ctx se haya cancelado (la caché es compartida);
//  5. el borrador se guarda en fallo y se limpia en éxito, salvo que ctx ya se haya cancelado.
func submit[Out any](ctx context.Context, c *Core, id session.Identity, form, target string, in any, write func(context.Context) (Out, error), onSuccess func(Out)) (Out, error) {
	var zero Out
	userID, err := id.Require()
	if err != nil {
		return zero, err
	}
	k := formKey{userID, form}
	release, err := c.acquire(flightKey{k, submissionInstance(ctx, target, in)})
	if err != nil {
		return zero, err
	}
	defer release()

	if in != nil {
		if err := c.validator.Validate(in); err != nil {
			c.saveDraft(k, in)
			return zero, err
		}
	}

	out, err := write(context.WithoutCancel(ctx))
	if err != nil {
		if ctx.Err() == nil && in != nil {
			c.saveDraft(k, in)
		}
		return zero, err
	}
	if onSuccess != nil {
		onSuccess(out)
	}
	if ctx.Err() == nil {
		c.clearDraft(k)
	}
	return out, nil
}

func key(id session.Identity, collection string) cache.Key {
	return cache.CollectionKey(id.UserID, collection)
}

// fetch lectura de colección a través de la caché.
func fetch[T any](ctx context.Context, c *Core, id session.Identity, collection string, list func(context.Context, session.Identity) ([]T, error)) ([]T, error) {
	if _, err := id.Require(); err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, c.cache, key(id, collection), func(ctx context.Context) ([]T, error) {
		return list(ctx, id)
	})
}

func (c *Core) invalidate(id session.Identity, collections ...string) {
	for _, col := range collections {
		c.cache.Invalidate(key(id, col))
	}
}
