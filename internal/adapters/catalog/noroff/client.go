package noroff

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/platform/httpclient"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/catalog"
)

const (
	DefaultBaseURL = "https://v2.api.noroff.dev"
	APIKeyHeader   = "X-Noroff-API-Key"
)

type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	RPS     float64

	// Transport es opcional (tests).
	Transport http.RoundTripper
}

// Client habla con el catálogo de mascotas y el servicio de auth de Noroff.
// Implementa catalog.Catalog y auth.Authenticator.
type Client struct {
	http *httpclient.Client
	log  logger.Logger
}

var (
	_ catalog.Catalog    = (*Client)(nil)
	_ auth.Authenticator = (*Client)(nil)
	_ pets.Source        = (*Client)(nil)
)

func New(opts Options, log logger.Logger) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	headers := map[string]string{}
	if k := strings.TrimSpace(opts.APIKey); k != "" {
		headers[APIKeyHeader] = k
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   base,
		Timeout:   opts.Timeout,
		Transport: opts.Transport,
		RPS:       opts.RPS,
		Burst:     int(opts.RPS) + 1,
		Headers:   headers,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		http: hc,
		log:  logger.OrNop(log).With(logger.Fields{"component": "noroff_client"}),
	}, nil
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) ListPets(ctx context.Context) ([]pets.Pet, error) {
	var out envelope[[]pets.Pet]
	if err := c.do(ctx, http.MethodGet, "/pets", "", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []pets.Pet{}, nil
	}
	return out.Data, nil
}

func (c *Client) GetPet(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, catalog.ErrNotFound
	}

	var out envelope[pets.Pet]
	if err := c.do(ctx, http.MethodGet, petPath(id), "", nil, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return pets.Pet{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, id)
		}
		return pets.Pet{}, err
	}
	return out.Data, nil
}

func (c *Client) CreatePet(ctx context.Context, token string, in catalog.PetInput) (pets.Pet, error) {
	var out envelope[pets.Pet]
	if err := c.do(ctx, http.MethodPost, "/pets", token, in, &out); err != nil {
		return pets.Pet{}, err
	}
	return out.Data, nil
}

func (c *Client) UpdatePet(ctx context.Context, token, id string, in catalog.PetInput) (pets.Pet, error) {
	var out envelope[pets.Pet]
	if err := c.do(ctx, http.MethodPut, petPath(id), token, in, &out); err != nil {
		return pets.Pet{}, err
	}
	return out.Data, nil
}

// SetAdoptionStatus es el PUT parcial que dispara la aprobación de una solicitud.
func (c *Client) SetAdoptionStatus(ctx context.Context, token, id string, status pets.AdoptionStatus) (pets.Pet, error) {
	return c.UpdatePet(ctx, token, id, catalog.PetInput{AdoptionStatus: status})
}

func (c *Client) DeletePet(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, petPath(id), token, nil, nil)
}

func (c *Client) Login(ctx context.Context, in auth.Credentials) (auth.Profile, error) {
	var out envelope[auth.Profile]
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return auth.Profile{}, err
	}
	return out.Data, nil
}

func (c *Client) Register(ctx context.Context, in auth.RegisterInput) (auth.Profile, error) {
	var out envelope[auth.Profile]
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &out); err != nil {
		return auth.Profile{}, err
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}

	err := c.http.DoJSON(ctx, method, path, headers, in, out)
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		apiErr := parseAPIError(he)
		c.log.Warn("catalog request rejected", logger.Fields{
			"method": method,
			"path":   path,
			"status": he.StatusCode,
			"err":    apiErr.Error(),
		})
		return apiErr
	}

	c.log.Warn("catalog request failed", logger.Fields{"method": method, "path": path, "err": err})
	return fmt.Errorf("%w: %v", catalog.ErrUpstream, err)
}

func petPath(id string) string {
	return "/pets/" + url.PathEscape(id)
}

// FieldError es un elemento de {errors:[...]}.
type FieldError struct {
	Message string    `json:"message"`
	Path    ErrorPath `json:"path,omitempty"`
}

// ErrorPath acepta path como lista o como string suelto. Los elementos que no
// son string (índices) se guardan con su texto JSON.
type ErrorPath []string

func (p *ErrorPath) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*p = nil
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = ErrorPath{s}
		return nil
	case b[0] != '[':
		*p = ErrorPath{string(b)}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(ErrorPath, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		out = append(out, string(bytes.TrimSpace(r)))
	}
	*p = out
	return nil
}

// APIError es una respuesta no-2xx del servicio. Los mensajes se conservan
// tal cual para mostrarlos al usuario.
type APIError struct {
	Status   int
	Messages []FieldError
}

func (e *APIError) Error() string {
	msgs := e.Reasons()
	if len(msgs) == 0 {
		return fmt.Sprintf("catalog service: status %d", e.Status)
	}
	return strings.Join(msgs, "; ")
}

func (e *APIError) Unwrap() error { return catalog.ErrUpstream }

func (e *APIError) HTTPStatus() int { return e.Status }

func (e *APIError) Reasons() []string {
	out := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		if strings.TrimSpace(m.Message) != "" {
			out = append(out, m.Message)
		}
	}
	return out
}

func parseAPIError(he *httpclient.HTTPError) *APIError {
	out := &APIError{Status: he.StatusCode}

	var body struct {
		Errors []FieldError `json:"errors"`
	}
	if err := json.Unmarshal([]byte(he.Body), &body); err == nil {
		out.Messages = body.Errors
	}
	return out
}
