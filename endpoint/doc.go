// Package endpoint exposes a servefs.Resolver over HTTP.
//
// A Handler takes the unmatched remainder of the request path (the segment)
// from the router, resolves it, and maps the outcome to a response:
//
//	OK         200, with the body and a Content-Type when one is known
//	NotFound   404, empty body
//	Forbidden  403, empty body, logged as a warning
//	error      500, logged as an error
//
// Mount registers a resolver on a chi router, and Gin adapts one for a gin
// engine.  Every resolution runs in an OpenTelemetry span and, optionally,
// is counted and timed in Prometheus.
package endpoint
