// Package profile shows forms whose initial state comes from the backend.
//
// NewPerson waits for the initial config before building a person form
// with the served default title, and NewProtocol mints a fresh counter for
// a protocol number. Protocol.Reset mints another one. Initialization
// failures are returned to the caller and no form is built.
package profile
