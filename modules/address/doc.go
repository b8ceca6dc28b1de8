// Package address shows a composite value edited through a custom value
// accessor.
//
// The Composer form holds an address field and a username. The address
// field is edited by an Editor, a small inner form of street and city
// fields attached with form.Field.Attach. Once the address field carries
// the addressRequired validator the editor makes its inner fields required
// too, so both forms report what is missing:
//
//	c := address.New()
//	defer c.Close()
//	_ = c.Editor.Edit(address.Address{City: "Main St"})
//	c.Address.GetError("required") // []string{"street"}
//
// Service exposes the form over HTTP for the formkit API.
package address
