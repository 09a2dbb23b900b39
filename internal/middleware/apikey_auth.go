package middleware

import (
	"crypto/subtle"
	"net/http"
)

// SharedSecret guards privileged endpoints with the dashboard's shared key,
// supplied by clients in the X-API-Key header. When no key is configured the
// check is disabled. failStatus selects the rejection code: the terminal
// endpoint answers 401, the toggle endpoint 403.
func SharedSecret(key string, failStatus int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" {
				provided := r.Header.Get("X-API-Key")
				if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(failStatus)
					_, _ = w.Write([]byte(`{"error":"` + rejectionMessage(failStatus) + `"}`))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectionMessage(status int) string {
	if status == http.StatusForbidden {
		return "forbidden"
	}
	return "unauthorized"
}
