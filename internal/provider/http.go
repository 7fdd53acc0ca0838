package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

// HTTPProvider talks to a catalog gateway exposing
// GET {base}/{source}/{lot}?id={identifier}. Every call is bounded by
// PerItemTimeout so one hung lookup cannot stall a whole import batch.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

type HTTPProviderConfig struct {
	BaseURL        string
	PerItemTimeout time.Duration
}

func NewHTTPProvider(cfg HTTPProviderConfig) (*HTTPProvider, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("provider base url is required")
	}
	timeout := cfg.PerItemTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPProvider{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}, nil
}

func (p *HTTPProvider) Details(ctx context.Context, source model.MetadataSource, lot model.MetadataLot, identifier string) (*Details, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	endpoint := fmt.Sprintf("%s/%s/%s?id=%s", p.baseURL, url.PathEscape(string(source)), url.PathEscape(string(lot)), url.QueryEscape(identifier))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrResolution, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, appErr.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog returned status %d", appErr.ErrResolution, resp.StatusCode)
	}
	var details Details
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("%w: decode catalog response: %v", appErr.ErrResolution, err)
	}
	if details.Identifier == "" {
		details.Identifier = identifier
	}
	if details.Lot == "" {
		details.Lot = lot
	}
	return &details, nil
}
