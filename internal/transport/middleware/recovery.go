package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/journey-planner-backend/pkg/apiv1"
	"github.com/heartmarshall/journey-planner-backend/pkg/ctxutil"
)

// Recovery turns a handler panic into a 500 error envelope and logs it with
// the stack and the request identifiers. http.ErrAbortHandler is re-raised
// so the server aborts the response as intended.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				attrs := []slog.Attr{
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("stack", string(debug.Stack())),
				}
				if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
					attrs = append(attrs, slog.String("user_id", userID.String()))
				}
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)
				writeError(w, http.StatusInternalServerError, apiv1.CodeInternal, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
