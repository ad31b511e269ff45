package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"slices"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
)

const AdminPINHeader = "X-Admin-PIN"

// RequireAdminPIN rejects requests whose X-Admin-PIN header does not match pin.
func RequireAdminPIN(pin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminPINHeader)
			if pin == "" || subtle.ConstantTimeCompare([]byte(got), []byte(pin)) != 1 {
				slog.Warn("admin pin rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
				writeError(w, http.StatusForbidden, "invalid_admin_pin", domain.ErrInvalidAdminPIN.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows the listed origins, or any origin when the list contains "*".
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	anyOrigin := slices.Contains(allowedOrigins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (anyOrigin || slices.Contains(allowedOrigins, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+AdminPINHeader)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
