// package services defines interface Lookup for resolving postal codes over HTTP
//
// ViaCEP
package services

import (
	"context"

	"github.com/desertthunder/agenda/internal/models"
)

// Lookup resolves postal codes into address fields.
type Lookup interface {
	// Lookup resolves cep with a single request.
	// A code the service does not know is returned as a location whose NotFound reports true, not as an error.
	Lookup(ctx context.Context, cep string) (*models.Location, error)

	// Name returns the name of the service (e.g., "ViaCEP")
	Name() string
}

var _ Lookup = (*ViaCEPService)(nil)
