package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Option configura un adaptador (URL base en tests, cliente HTTP propio).
type Option func(*client)

// WithBaseURL reemplaza la URL base de la API (httptest, proxies compatibles).
func WithBaseURL(url string) Option {
	return func(c *client) { c.baseURL = url }
}

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.http = hc }
}

type client struct {
	name    string
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func newClient(name, apiKey, model, baseURL string, opts []Option) client {
	c := client{
		name:    name,
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		// Timeout de red; el caso de uso impone además un context.WithTimeout más corto.
		http: &http.Client{Timeout: 25 * time.Second},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// apiError lo que cada proveedor sabe extraer de un cuerpo de error.
type apiError interface {
	message() string
}

// postJSON envía payload y decodifica una respuesta 200 en out. Para otros códigos intenta
// decodificar errOut y devuelve su mensaje.
func (c client) postJSON(ctx context.Context, url string, headers map[string]string, payload any, out any, errOut apiError) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("AI: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("AI: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(raw, errOut) == nil && errOut.message() != "" {
			return fmt.Errorf("AI: %s error %d: %s", c.name, resp.StatusCode, errOut.message())
		}
		return fmt.Errorf("AI: %s HTTP %d", c.name, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("AI: deserializar respuesta %s: %w", c.name, err)
	}
	return nil
}
