package middleware

import (
	"net/http"
	"strings"

	"trimplan/internal/auth"
	"trimplan/internal/httputil"
)

// publicPaths are served without a token
var publicPaths = map[string]bool{
	"/health": true,
}

// AuthMiddleware requires a valid bearer token on every request except
// publicPaths and CORS pre-flight. The subject is stored in the request
// context for handlers and logs.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithActor(r, claims.GetUserID()))
		})
	}
}
