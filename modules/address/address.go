package address

import "github.com/dmitrymomot/formkit/pkg/validator"

// Attribute names of an Address.
const (
	AttrStreet = "street"
	AttrCity   = "city"
)

// Validator ids.
const (
	IDAddressRequired = "addressRequired"
	IDNoMainStreet    = "noMainStreet"
)

// Address is the composite value edited by an Editor.
type Address struct {
	Street string `json:"street" form:"street"`
	City   string `json:"city" form:"city"`
}

// Attributes exposes the parts of the address to composite rules.
func (a Address) Attributes() map[string]any {
	return map[string]any{AttrStreet: a.Street, AttrCity: a.City}
}

// Required fails with code "required" listing the missing parts, street
// before city. It also tells an attached Editor to require its inner fields.
func Required() validator.Validator {
	return validator.CompositeRequired(IDAddressRequired, AttrStreet, AttrCity)
}

// NoMainStreet rejects streets containing "main" in any case.
func NoMainStreet() validator.Validator {
	return validator.PatternExclusion(IDNoMainStreet, AttrStreet, "main", validator.CodeMainStreetNotAllowed)
}

func fromValue(v any) (Address, bool) {
	switch a := v.(type) {
	case Address:
		return a, true
	case *Address:
		if a == nil {
			return Address{}, false
		}
		return *a, true
	case map[string]any:
		street, _ := a[AttrStreet].(string)
		city, _ := a[AttrCity].(string)
		return Address{Street: street, City: city}, true
	}
	return Address{}, false
}
