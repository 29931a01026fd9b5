package inbox

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"quickcap/internal/logging"
	"quickcap/internal/model"
)

// statusWriter captures status code and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// accessLog logs one line per request.
func accessLog(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			log.Info("http_request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.status),
				logging.Int("bytes", ww.bytes),
				logging.Duration("duration", time.Since(start)),
				logging.String("remote_ip", r.RemoteAddr),
				logging.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func equalSecret(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// requireAuth checks the credentials configured for the inbox. AuthNone lets
// everything through.
func requireAuth(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok := true
			switch cfg.AuthType {
			case model.AuthBearer:
				tok, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
				ok = found && equalSecret(tok, cfg.Token)
				if !ok {
					w.Header().Set("WWW-Authenticate", `Bearer realm="quickcap"`)
				}
			case model.AuthBasic:
				user, pass, found := r.BasicAuth()
				ok = found && equalSecret(user, cfg.Username) && equalSecret(pass, cfg.Password)
				if !ok {
					w.Header().Set("WWW-Authenticate", `Basic realm="quickcap"`)
				}
			}
			if !ok {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
