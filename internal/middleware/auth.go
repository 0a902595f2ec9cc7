package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/raamdecor/backoffice/pkg/tokenstore"
	"github.com/raamdecor/backoffice/pkg/utils"
)

const (
	HeaderSessionToken = "X-Session-Token"
	HeaderCSRFToken    = "X-CSRF-Token"

	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeCSRFTokenInvalid = "CSRF_TOKEN_INVALID"
)

type sessionKey struct{}

// Session is the authenticated admin session attached to the request context
// by Auth.
type Session struct {
	Token string
	Admin string
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// Auth rejects requests without a valid session token. The token is taken
// from the Authorization bearer header or X-Session-Token.
func Auth(sessions *tokenstore.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				utils.WriteErrorCode(w, CodeAuthRequired, "authentication required", http.StatusUnauthorized)
				return
			}

			admin, err := sessions.Validate(token, "")
			if err != nil {
				utils.WriteErrorCode(w, CodeAuthRequired, "authentication required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, Session{Token: token, Admin: admin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRF consumes a single-use token bound to the current session. It runs
// after Auth and before any business logic on state-changing routes.
func CSRF(csrf *tokenstore.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				utils.WriteErrorCode(w, CodeAuthRequired, "authentication required", http.StatusUnauthorized)
				return
			}

			token := r.Header.Get(HeaderCSRFToken)
			if token == "" {
				utils.WriteErrorCode(w, CodeCSRFTokenInvalid, "invalid csrf token", http.StatusForbidden)
				return
			}

			if _, err := csrf.Validate(token, sess.Token); err != nil {
				utils.WriteErrorCode(w, CodeCSRFTokenInvalid, "invalid csrf token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.Header.Get(HeaderSessionToken)
}
