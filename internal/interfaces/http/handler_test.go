package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/application/auth"
	"github.com/jhoicas/Brewlog-api/internal/application/cache"
	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/usecase"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/memory"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Brewlog-api/internal/interfaces/http"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// newAPI arma la API completa sobre el store en memoria, sin proveedor de IA.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	return newAPIWith(t, memory.NewStore(), zerolog.Nop())
}

// newAPIWith igual que newAPI con el store y el logger HTTP del test.
func newAPIWith(t *testing.T, st *memory.Store, httpLog zerolog.Logger) *fiber.App {
	t.Helper()
	files := storage.NewMemoryStore(1 << 20)
	log := zerolog.Nop()
	qc := cache.New(cache.DefaultConfig())
	t.Cleanup(qc.Wait)
	notifier := session.NewNotifier()
	v := validation.New()
	core := controller.NewCore(qc, v, notifier, log)
	denylist := auth.NewDenylist()

	beanUC := usecase.NewBeanUseCase(st.Beans(), st.Roasteries(), memory.NewTxRunner(st), usecase.NoRetry)
	roastUC := usecase.NewRoastDateUseCase(st.Beans(), st.RoastDates(), usecase.NoRetry)
	roasteryUC := usecase.NewRoasteryUseCase(st.Roasteries(), files, usecase.NoRetry, log)
	grinderUC := usecase.NewGrinderUseCase(st.Grinders(), usecase.NoRetry)
	brewerUC := usecase.NewBrewerUseCase(st.Brewers(), files, usecase.NoRetry, log)
	brewUC := usecase.NewBrewUseCase(usecase.BrewRepos{
		Brews:    st.Brews(),
		Beans:    st.Beans(),
		Grinders: st.Grinders(),
		Brewers:  st.Brewers(),
	}, usecase.NewAnalysisUseCase(nil, time.Second, 0), pdf.NewBrewCardGenerator(), files, usecase.NoRetry, log)
	userUC := usecase.NewUserUseCase(st.Users(), files, usecase.NoRetry, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(st.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, notifier, denylist),
		Denylist:   denylist,
		Validator:  v,
		Core:       core,
		Beans:      controller.NewBeanController(core, beanUC, roastUC),
		Roasteries: controller.NewRoasteryController(core, roasteryUC),
		Grinders:   controller.NewGrinderController(core, grinderUC),
		Brewers:    controller.NewBrewerController(core, brewerUC),
		Brews:      controller.NewBrewController(core, brewUC, beanUC, grinderUC, brewerUC),
		Profile:    controller.NewProfileController(core, userUC),
		JWTSecret:  testJWTSecret,
		Logger:     httpLog,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	return callWith(t, app, method, path, token, body, nil)
}

func callWith(t *testing.T, app *fiber.App, method, path, token string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signUp registra y hace login; devuelve el token.
func signUp(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: email, Password: "supersecreta"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "supersecreta"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

func bean(name string) dto.CreateBeanRequest {
	rd := "2024-03-01"
	return dto.CreateBeanRequest{
		Name: name, Country: "colombia", Region: "huila", Farm: "El Paraíso",
		Altitude: "1800", RoastType: "medium", RoastDate: &rd,
	}
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

func TestAuth_RegistroDuplicado409(t *testing.T) {
	app := newAPI(t)
	signUp(t, app, "ana@brew.co")

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "ANA@brew.co", Password: "otraclave1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuth_CredencialesInvalidas401(t *testing.T) {
	app := newAPI(t)
	signUp(t, app, "ana@brew.co")

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@brew.co", Password: "incorrecta"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_LogoutRevocaElToken(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")

	resp := call(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/beans", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfile_Me(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")

	resp := call(t, app, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "ana@brew.co", me.Email)
}

func TestProfile_CambiarPassword(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")

	resp := call(t, app, http.MethodPut, "/api/me/password", token, dto.ChangePasswordRequest{CurrentPassword: "incorrecta", NewPassword: "nueva-clave-1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "current_password no es correcta", decode[dto.ErrorResponse](t, resp).Message)

	resp = call(t, app, http.MethodPut, "/api/me/password", token, dto.ChangePasswordRequest{CurrentPassword: "supersecreta", NewPassword: "supersecreta"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "new_password debe ser distinta de la actual", decode[dto.ErrorResponse](t, resp).Message)

	resp = call(t, app, http.MethodPut, "/api/me/password", token, dto.ChangePasswordRequest{CurrentPassword: "supersecreta", NewPassword: "nueva-clave-1"})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@brew.co", Password: "supersecreta"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@brew.co", Password: "nueva-clave-1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfile_CambiarPasswordSinToken401(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodPut, "/api/me/password", "", dto.ChangePasswordRequest{CurrentPassword: "supersecreta", NewPassword: "nueva-clave-1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ─── Beans ────────────────────────────────────────────────────────────────────

func TestBeans_CrearYListar(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")

	resp := call(t, app, http.MethodPost, "/api/beans", token, bean("Huila"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.BeanResponse](t, resp)
	assert.Equal(t, "Colombia", created.Country)
	require.Len(t, created.RoastDates, 1)

	resp = call(t, app, http.MethodGet, "/api/beans", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.BeanResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestBeans_ValidacionDevuelvePrimerError(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")

	in := bean("")
	resp := call(t, app, http.MethodPost, "/api/beans", token, in)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "name es obligatorio", body.Message)
	require.NotEmpty(t, body.Fields)

	resp = call(t, app, http.MethodGet, "/api/forms/"+controller.FormBeanCreate+"/draft", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	draft := decode[map[string]any](t, resp)
	assert.Equal(t, false, draft["in_flight"])
	assert.NotNil(t, draft["draft"])
}

func TestBeans_AjenoDevuelve404(t *testing.T) {
	app := newAPI(t)
	ana := signUp(t, app, "ana@brew.co")
	beto := signUp(t, app, "beto@brew.co")

	resp := call(t, app, http.MethodPost, "/api/beans", ana, bean("Huila"))
	created := decode[dto.BeanResponse](t, resp)

	resp = call(t, app, http.MethodGet, "/api/beans/"+created.ID, beto, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBeans_FechasDeTueste(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")
	created := decode[dto.BeanResponse](t, call(t, app, http.MethodPost, "/api/beans", token, bean("Huila")))

	resp := call(t, app, http.MethodPost, "/api/beans/"+created.ID+"/roast-dates", token, dto.RoastDateRequest{Date: "2024-03-08"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rd := decode[dto.RoastDateResponse](t, resp)

	resp = call(t, app, http.MethodPut, "/api/beans/"+created.ID+"/roast-dates/"+rd.ID, token, dto.RoastDateRequest{Date: "2024-03-09"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-03-09", decode[dto.RoastDateResponse](t, resp).Date)

	resp = call(t, app, http.MethodDelete, "/api/beans/"+created.ID+"/roast-dates/"+rd.ID, token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/beans/"+created.ID+"/roast-dates", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.RoastDateResponse](t, resp), 1)
}

// ─── Brews ────────────────────────────────────────────────────────────────────

func TestBrews_FlujoCompleto(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")
	b := decode[dto.BeanResponse](t, call(t, app, http.MethodPost, "/api/beans", token, bean("Huila")))
	g := decode[dto.GrinderResponse](t, call(t, app, http.MethodPost, "/api/grinders", token, dto.CreateGrinderRequest{Name: "Comandante", BurrSize: "39mm", BurrType: "conical"}))
	br := decode[dto.BrewerResponse](t, call(t, app, http.MethodPost, "/api/brewers", token, dto.CreateBrewerRequest{Name: "V60", Type: "pour-over", Material: "cerámica"}))

	resp := call(t, app, http.MethodGet, "/api/brews/new?bean_id="+b.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defaults := decode[dto.NewBrewDefaults](t, resp)
	assert.Equal(t, b.ID, defaults.BeanID)
	assert.Equal(t, "2024-03-01", defaults.RoastDate)

	dose, yield, secs := 15.0, 250.0, 180
	resp = call(t, app, http.MethodPost, "/api/brews", token, dto.CreateBrewRequest{
		BeanID: b.ID, GrinderID: g.ID, BrewerID: br.ID, Date: "2024-03-10",
		Dose: &dose, Yield: &yield, BrewTime: &secs,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	brew := decode[dto.BrewResponse](t, resp)
	assert.Equal(t, "1:16.7", brew.RatioLabel)

	resp = call(t, app, http.MethodGet, "/api/brews/"+brew.ID+"/card.pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = call(t, app, http.MethodPost, "/api/brews/"+brew.ID+"/analysis", token, nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "ANALYSIS_FAILED", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodDelete, "/api/brews/"+brew.ID, token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/brews", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.BrewResponse](t, resp))
}

func TestForms_Desconocido404(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")

	resp := call(t, app, http.MethodGet, "/api/forms/invoice.create/draft", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ─── Errores y cabeceras ──────────────────────────────────────────────────────

func TestErrorInterno_NoExponeLaCausa(t *testing.T) {
	st := memory.NewStore()
	var buf bytes.Buffer
	app := newAPIWith(t, st, zerolog.New(&buf))
	token := signUp(t, app, "ana@brew.co")

	st.SetFault(func(op string) error {
		if op == "grinders.list" {
			return errors.New("dial tcp 10.0.4.2:5432: connection refused")
		}
		return nil
	})
	resp := callWith(t, app, http.MethodGet, "/api/grinders", token, nil, map[string]string{apphttp.HeaderRequestID: "req-42"})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "req-42", resp.Header.Get(apphttp.HeaderRequestID))
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "10.0.4.2")
	assert.NotContains(t, body.Message, "connection refused")

	logged := buf.String()
	assert.Contains(t, logged, "connection refused")
	assert.Contains(t, logged, `"request_id":"req-42"`)
	assert.Contains(t, logged, `"path":"/api/grinders"`)
}

func TestRequestID_SeGeneraSiFalta(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@brew.co", Password: "supersecreta"})
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestIdempotencyKey_DemasiadoLarga400(t *testing.T) {
	app := newAPI(t)
	token := signUp(t, app, "ana@brew.co")

	resp := callWith(t, app, http.MethodPost, "/api/grinders", token,
		dto.CreateGrinderRequest{Name: "Comandante", BurrSize: "39mm", BurrType: "conical"},
		map[string]string{apphttp.HeaderIdempotencyKey: strings.Repeat("k", 200)})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_HEADER", decode[dto.ErrorResponse](t, resp).Code)

	resp = callWith(t, app, http.MethodPost, "/api/grinders", token,
		dto.CreateGrinderRequest{Name: "Comandante", BurrSize: "39mm", BurrType: "conical"},
		map[string]string{apphttp.HeaderIdempotencyKey: "form-1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
