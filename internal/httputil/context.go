package httputil

import (
	"context"
	"net/http"
)

type contextKey string

const actorKey contextKey = "actor"

// LocalActor names the caller when the API runs without authentication
const LocalActor = "local"

// WithActor records the authenticated subject on the request context
func WithActor(r *http.Request, subject string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), actorKey, subject))
}

// Actor returns the subject stored by WithActor, or LocalActor
func Actor(r *http.Request) string {
	if subject, ok := r.Context().Value(actorKey).(string); ok && subject != "" {
		return subject
	}
	return LocalActor
}
