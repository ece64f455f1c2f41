package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so that the first one is the outermost. Nil entries
// are skipped.
func Chain(mws ...Middleware) Middleware {
	active := make([]Middleware, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			active = append(active, mw)
		}
	}
	return func(final http.Handler) http.Handler {
		for i := len(active) - 1; i >= 0; i-- {
			final = active[i](final)
		}
		return final
	}
}
