package registry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"health-records-access/internal/platform/httpclient"
	"health-records-access/internal/ports/identity"
)

var (
	ErrRegistryNotConfigured = errors.New("identity registry not configured")
	ErrRegistryUpstream      = errors.New("identity registry upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration
}

// Client habla con el registro off-chain de roles/perfiles.
// Contrato:
//   GET /v1/wallets/{wallet}/role      -> {"role": 0|1|2}
//   GET /v1/wallets/{wallet}/patient   -> PatientInfo
//   GET /v1/wallets/{wallet}/provider  -> ProviderInfo
// 404 = wallet no registrado.
type Client struct {
	http *httpclient.Client
}

var _ identity.Registry = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrRegistryNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		h := strings.TrimSpace(cfg.APIKeyHeader)
		if h == "" {
			h = "X-Api-Key"
		}
		hc.Headers[h] = key
	}

	return &Client{http: hc}, nil
}

func (c *Client) RoleOf(ctx context.Context, wallet string) (identity.Role, error) {
	var out struct {
		Role identity.Role `json:"role"`
	}
	if err := c.get(ctx, wallet, "role", &out); err != nil {
		return identity.RoleNone, err
	}
	return out.Role, nil
}

func (c *Client) PatientInfo(ctx context.Context, wallet string) (identity.PatientInfo, error) {
	var out identity.PatientInfo
	if err := c.get(ctx, wallet, "patient", &out); err != nil {
		return identity.PatientInfo{}, err
	}
	return out, nil
}

func (c *Client) ProviderInfo(ctx context.Context, wallet string) (identity.ProviderInfo, error) {
	var out identity.ProviderInfo
	if err := c.get(ctx, wallet, "provider", &out); err != nil {
		return identity.ProviderInfo{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, wallet, resource string, out any) error {
	if c == nil || c.http == nil {
		return ErrRegistryNotConfigured
	}
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return identity.ErrNotRegistered
	}

	path := fmt.Sprintf("/v1/wallets/%s/%s", url.PathEscape(wallet), resource)
	if err := c.http.GetJSON(ctx, path, out); err != nil {
		if httpclient.IsNotFound(err) {
			return identity.ErrNotRegistered
		}
		return fmt.Errorf("%w: %v", ErrRegistryUpstream, err)
	}
	return nil
}
