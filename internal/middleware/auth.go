package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cabwise/dispatch-go/internal/crypto"
	"github.com/cabwise/dispatch-go/internal/service"
)

// TokenHeader is the custom header carrying a bearer token.
const TokenHeader = "x-access-token"

// Authenticator verifies basic-auth credentials against stored users.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) error
}

// Auth authorizes a request that carries either a token in the custom
// header or basic-auth credentials. The token path only checks that the
// token decodes against the shared secret; neither expiry nor the
// embedded identity is examined. The basic-auth path requires a known
// username, a matching password and a confirmed account. Everything
// fails closed with a 401.
func Auth(secret string, users Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := r.Header.Get(TokenHeader); token != "" {
				if _, err := crypto.DecodeToken(token, secret); err != nil {
					writeJSONError(w, http.StatusUnauthorized, "token is invalid")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if username, password, ok := r.BasicAuth(); ok {
				if err := users.Authenticate(r.Context(), username, password); err != nil {
					writeJSONError(w, http.StatusUnauthorized, authFailureMessage(err))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			writeJSONError(w, http.StatusUnauthorized, "credentials are missing")
		})
	}
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		return "unknown user"
	case errors.Is(err, service.ErrWrongPassword):
		return "invalid auth credentials"
	case errors.Is(err, service.ErrNotConfirmed):
		return "user not confirmed"
	default:
		return "unauthorized"
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
