// Package middle contains middleware for use with the slrgen HTTP server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/slrgen/server/result"
	"github.com/golang-jwt/jwt/v5"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by RequireBearer.
type AuthKey int64

// AuthLoggedIn is the context key holding whether a request carried a valid
// bearer token.
const AuthLoggedIn AuthKey = iota

// RequireBearer returns middleware that validates a JWT bearer token signed
// with secret. There are no user accounts in this system: possession of a
// token signed with the shared secret is the only credential checked. A
// request without a valid token is rejected with HTTP-401 before reaching
// next.
func RequireBearer(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			tok, err := getBearerToken(req)
			if err == nil {
				_, err = jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
					return secret, nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("slrgen"), jwt.WithLeeway(time.Minute))
			}

			if err != nil {
				r := result.Unauthorized("", err.Error())
				time.Sleep(unauthDelay)
				r.WriteResponse(w)
				r.Log(req)
				return
			}

			ctx := context.WithValue(req.Context(), AuthLoggedIn, true)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

// DontPanic returns a Middleware that recovers from a panic in next and
// writes out an HTTP-500 instead of crashing the server.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		r.Log(req)
		return true
	}
	return false
}
