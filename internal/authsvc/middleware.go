package authsvc

import (
	"context"
	"net/http"
	"strings"
)

type contextKey int

const clientIDKey contextKey = iota

// Middleware rejects requests without a valid bearer token, and
// otherwise attaches the verified client ID to the request context
// before calling next (spec §4.8 "Middleware").
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			writeUnauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, prefix)
		clientID, err := s.Verify(r.Context(), token)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeUnauthorized writes the 401 `{error:{code, message}}` envelope
// with code "Unauthorized".
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"Unauthorized","message":"Missing or invalid bearer token"}}` + "\n"))
}

// ClientIDFromContext returns the client ID the bearer token
// middleware attached, if any.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(clientIDKey).(string)
	return clientID, ok
}
