package vo

import (
	"strings"

	"github.com/jcmexdev/storefront/internal/core/fault"
)

// Address is the delivery address captured at checkout time.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// NewAddress validates the required postal fields. Complement and district
// are optional.
func NewAddress(street, number, complement, district, city, state, zip string) (Address, error) {
	addr := Address{
		Street:     strings.TrimSpace(street),
		Number:     strings.TrimSpace(number),
		Complement: strings.TrimSpace(complement),
		District:   strings.TrimSpace(district),
		City:       strings.TrimSpace(city),
		State:      strings.TrimSpace(state),
		ZipCode:    strings.TrimSpace(zip),
	}

	missing := []string{}
	if addr.Street == "" {
		missing = append(missing, "street")
	}
	if addr.Number == "" {
		missing = append(missing, "number")
	}
	if addr.City == "" {
		missing = append(missing, "city")
	}
	if addr.State == "" {
		missing = append(missing, "state")
	}
	if addr.ZipCode == "" {
		missing = append(missing, "zip_code")
	}
	if len(missing) > 0 {
		return Address{}, fault.Validation("invalid_address", "missing required address fields").
			WithDetail("%s", strings.Join(missing, ", "))
	}
	return addr, nil
}
