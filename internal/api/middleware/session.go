package middleware

import (
	"context"
	"net/http"

	"github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/lumieats/table-ordering-platform/internal/utils/response"
)

type sessionContextKey string

// SessionKey holds the device/session identifier scoping a cart to one
// browser tab.
const SessionKey = sessionContextKey("session")

const sessionHeader = "X-Session-ID"

// RequireSession rejects cart-scoped requests that carry no session
// identifier; a cart without a session has nowhere to persist.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.Header.Get(sessionHeader)
		if sessionID == "" {
			response.Error(w, errors.BadRequestError("X-Session-ID header is required"))
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func SessionFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionKey).(string)

	return sessionID, ok && sessionID != ""
}
