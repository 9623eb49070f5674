// Package http exposes the page document API consumed by the editor's HTTP
// persistence gateway.
//
// Routes mount under the configured base path (default /api):
//   - Page content: GET, PATCH and DELETE /pages/{key}/content
//   - Page listing: GET /pages
//   - Variant catalog: GET /variants
//   - API description: GET /openapi.json
//
// Reads are public. PATCH requires a bearer token granting pages:update and
// DELETE one granting pages:delete. /healthz and /metrics are mounted at the
// root of the mux.
package http
