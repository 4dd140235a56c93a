package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type authErrorBody struct {
	Success   bool      `json:"success"`
	Error     authError `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type authError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// StaticBearer enforces a single pre-shared bearer token on every request.
// The comparison is constant-time so the token cannot be probed byte by byte.
func StaticBearer(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				writeUnauthorized(w, "authentication is not configured")
				return
			}
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "missing or malformed authorization header")
				return
			}
			presented := strings.TrimPrefix(auth, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				writeUnauthorized(w, "invalid authorization token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(authErrorBody{
		Error: authError{
			Message: msg,
			Code:    "HTTP_401",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
