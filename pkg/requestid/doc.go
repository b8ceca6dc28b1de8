// Package requestid correlates a request across the formkit API and its
// callers.
//
// Middleware attaches an ID to every incoming request: a well-formed
// X-Request-ID header is reused, anything else is replaced by a fresh UUID.
// Transport copies the ID from the context of an outgoing request onto its
// header, and LoggerExtractor plugs into logger.WithContextExtractors so
// records carry a "request_id" attribute.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	client := &http.Client{Transport: requestid.Transport{}}
package requestid
