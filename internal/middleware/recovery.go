package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"trimplan/internal/httputil"
)

// Recovery turns a handler panic into a logged 500 problem response.
// The committed plan is unaffected: mutations swap the document in only
// after they complete.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"actor", httputil.Actor(r),
					"stack", string(debug.Stack()),
				)

				problem := httputil.NewProblem(http.StatusInternalServerError, "internal server error")
				problem.Instance = r.URL.Path
				httputil.RespondProblem(w, problem)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
