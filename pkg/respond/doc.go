// Package respond writes the JSON envelope used by the formkit API and maps
// errors from the binder, validator and backend packages to status codes.
package respond
