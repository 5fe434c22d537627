package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/agenda/internal/models"
	"github.com/desertthunder/agenda/internal/shared"
)

// ViaCEPService implements [Lookup] against the ViaCEP web service.
type ViaCEPService struct {
	api *APIService
}

// NewViaCEPService creates a ViaCEP lookup on top of an [APIService].
// A nil api uses the public endpoint with the default HTTP client.
func NewViaCEPService(api *APIService) *ViaCEPService {
	if api == nil {
		api = NewAPIService(DefaultBaseURL, nil, APIOpts{})
	}
	return &ViaCEPService{api: api}
}

func (s *ViaCEPService) Name() string { return "ViaCEP" }

// Fetch performs the lookup request and returns the raw response without interpreting it.
func (s *ViaCEPService) Fetch(ctx context.Context, cep string) (*APIResponse, error) {
	resp, err := s.api.Get(ctx, lookupPath(cep))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return resp, nil
}

// Lookup resolves cep. Non-2xx statuses and bodies that aren't a location object are errors.
func (s *ViaCEPService) Lookup(ctx context.Context, cep string) (*models.Location, error) {
	resp, err := s.Fetch(ctx, cep)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: %w: status %d for cep %q", shared.ErrAPIRequest, shared.ErrServiceUnavailable, resp.StatusCode, cep)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d for cep %q", shared.ErrAPIRequest, resp.StatusCode, cep)
	}

	var loc models.Location
	if err := json.Unmarshal(resp.Body, &loc); err != nil {
		return nil, fmt.Errorf("%w: malformed response for cep %q: %v", shared.ErrAPIRequest, cep, err)
	}
	if !loc.NotFound() && loc.CEP == "" {
		return nil, fmt.Errorf("%w: response for cep %q has neither an address nor the erro flag", shared.ErrAPIRequest, cep)
	}

	return &loc, nil
}

func lookupPath(cep string) string {
	return "/" + url.PathEscape(strings.TrimSpace(cep)) + "/json/"
}
