package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"playbook/internal/metrics"
	"playbook/internal/models"
	"playbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 64
)

type requestIDKey struct{}
type viewerKey struct{}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func withViewer(ctx context.Context, viewer *models.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// viewerFromContext returns the authenticated viewer set by authMiddleware.
func viewerFromContext(ctx context.Context) (*models.Viewer, bool) {
	viewer, ok := ctx.Value(viewerKey{}).(*models.Viewer)
	return viewer, ok && viewer != nil
}

// sanitizeRequestID keeps client supplied ids that are short and printable.
func sanitizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxRequestIDLength {
		return ""
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return id
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sanitizeRequestID(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.With("requestId", requestIDFromContext(r.Context())).
				Info("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

func metricsMiddleware(recorder *metrics.Recorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			recorder.RecordHTTPRequest(r.Method, route, rec.status, time.Since(start))
		})
	}
}

// SessionParser turns a session token into a viewer.
type SessionParser interface {
	ParseToken(token string) (*models.Viewer, error)
}

// authMiddleware accepts the session cookie or a bearer token.
func authMiddleware(sessions SessionParser, cookieName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				writeError(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			viewer, err := sessions.ParseToken(token)
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, "invalid session")
				return
			}
			next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewer)))
		})
	}
}

func sessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
