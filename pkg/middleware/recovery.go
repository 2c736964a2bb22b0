package middleware

import (
	"net/http"
	apperrors "pediacenter/pkg/errors"
	httputil "pediacenter/pkg/http"
	"pediacenter/pkg/logger"
	"runtime/debug"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.FromContext(r.Context(), log).Error("Panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					_ = httputil.WriteError(w, apperrors.Internal("panic recovered", nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
