package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SessionCookie names the cookie that carries the visitor session id.
const SessionCookie = "neonx_session"

type SessionProvider interface {
	EnsureSession(ctx context.Context, id string) (string, error)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger attaches a request-scoped logger and logs each response.
func RequestLogger(log logrus.FieldLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.WithFields(logrus.Fields{
				"http.req.id":     uuid.NewString(),
				"http.req.method": r.Method,
				"http.req.path":   r.URL.Path,
			})
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(WithLogger(r.Context(), reqLog)))

			reqLog.WithFields(logrus.Fields{
				"http.resp.status":  rec.status,
				"http.resp.took_ms": time.Since(start).Milliseconds(),
			}).Debug("request complete")
		})
	}
}

// Sessions resolves the session cookie, starting a new session when the
// cookie is missing or stale.
func Sessions(provider SessionProvider, secure bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current string
			if c, err := r.Cookie(SessionCookie); err == nil {
				current = c.Value
			}

			id, err := provider.EnsureSession(r.Context(), current)
			if err != nil {
				Logger(r.Context()).WithError(err).Error("could not start session")
				WriteError(w, http.StatusInternalServerError, "failed to start session")
				return
			}
			if id != current {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), id)
			ctx = WithLogger(ctx, Logger(ctx).WithField("session", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
