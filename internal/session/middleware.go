package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

type claimsCtxKeyType int

const claimsCtxKey claimsCtxKeyType = iota

// BearerToken extracts the token from an Authorization header value of the
// form "Bearer <token>".
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthorization
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrMalformedToken
	}
	return parts[1], nil
}

// Middleware rejects requests without a valid bearer token and stores the
// verified claims in the request context.
func (i *Issuer) Middleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				utilities.WriteMessage(w, http.StatusUnauthorized, err.Error())
				return
			}
			claims, err := i.Verify(token)
			if err != nil {
				logger.Debugw("token rejected", "path", r.URL.Path, "err", err)
				utilities.WriteMessage(w, http.StatusUnauthorized, ErrInvalidToken.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, c)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsCtxKey).(*Claims)
	return c, ok && c != nil
}

var errNoSession = errors.New("no session in context")

// UserID returns the authenticated user id stored by Middleware.
func UserID(ctx context.Context) (string, error) {
	c, ok := FromContext(ctx)
	if !ok {
		return "", errNoSession
	}
	return c.UserID, nil
}
