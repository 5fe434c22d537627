// package models defines the data model for the address book
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/agenda/internal/shared"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NotFoundFlag is the lookup service's "erro" field.
//
// The service has answered both `true` and `"true"` for unknown codes, so both decode to true.
type NotFoundFlag bool

func (f *NotFoundFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = NotFoundFlag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid erro value %s", string(data))
	}
	*f = NotFoundFlag(strings.EqualFold(strings.TrimSpace(s), "true"))
	return nil
}

// Location holds the address fields resolved for a postal code.
type Location struct {
	CEP          string       `json:"cep" validate:"required"`
	Street       string       `json:"logradouro"`
	Complement   string       `json:"complemento"`
	Unit         string       `json:"unidade,omitempty"`
	Neighborhood string       `json:"bairro"`
	City         string       `json:"localidade"`
	State        string       `json:"uf"`
	StateName    string       `json:"estado,omitempty"`
	Region       string       `json:"regiao,omitempty"`
	IBGE         string       `json:"ibge"`
	GIA          string       `json:"gia"`
	DDD          string       `json:"ddd"`
	SIAFI        string       `json:"siafi"`
	Erro         NotFoundFlag `json:"erro,omitempty"`
}

// NotFound reports whether the lookup service did not recognize the postal code.
func (l Location) NotFound() bool {
	return bool(l.Erro)
}

// Address is a saved address book entry.
//
// ID and Username are fixed at creation; DisplayName is the only field edited afterwards.
type Address struct {
	ID          string `json:"id" validate:"required,uuid4"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Location
}

// NewAddress builds an address from the user's labels and a resolved location.
func NewAddress(id, username, displayName string, loc Location) Address {
	return Address{ID: id, Username: username, DisplayName: displayName, Location: loc}
}

// Validate checks the structural invariants of a record before it is persisted.
func (a Address) Validate() error {
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", shared.ErrInvalidRecord, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", shared.ErrInvalidRecord, err)
	}
	return nil
}

// AddressStore persists the address book.
//
// Each method is one atomic read-modify-write of the whole collection.
type AddressStore interface {
	List() ([]Address, error)                       // List returns every saved address, empty if nothing was ever stored
	Save(address Address) error                     // Save replaces the address with the same ID or appends it
	DeleteByID(id string) error                     // DeleteByID removes the address; missing IDs are a no-op
	UpdateDisplayName(id, displayName string) error // UpdateDisplayName changes only DisplayName; missing IDs are a no-op
}
