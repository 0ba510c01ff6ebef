// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the univote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, router.Services{
		Tables:   tables,
		Sessions: store,
		Metrics:  m,
	})

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Solutions:

	GET  /solutions - List solutions in display order
	POST /solutions - Add a solution (requires X-Admin-Key)

Results:

	GET /results       - Ranked tallies with bar widths (403 when hidden)
	GET /results/count - Total vote count

Form sessions (server-side form state, one event per request):

	POST   /forms                        - Open a form
	GET    /forms/{id}                   - Current snapshot
	DELETE /forms/{id}                   - Discard a form
	POST   /forms/{id}/email             - Email field changed
	POST   /forms/{id}/name              - Name field changed
	POST   /forms/{id}/solutions/{slug}  - Solution checked or unchecked
	POST   /forms/{id}/accept            - Terms checkbox changed
	POST   /forms/{id}/submit            - Submit the vote

Stateless voting:

	POST /votes      - Cast a complete vote in one request
	GET  /votes/{id} - Vote receipt

# Middleware

API handlers are wrapped with middleware.WithLogging. Wrap the returned mux
with middleware.CORS for browser access.
*/
package router
