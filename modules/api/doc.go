// Package api assembles the formkit HTTP API: the sample form services under
// /forms, the backend protocol under /backend, health checks and metrics.
package api
