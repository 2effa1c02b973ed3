package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"trimplan/internal/config"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped at config.MaxImportBytes.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImportBytes)

	// Unknown fields are allowed: plan documents carry arbitrary legacy keys
	// that the normalizer handles.
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// QueryBool reports whether query parameter name is a true boolean
// ("true", "1", ...). Missing or malformed values are false.
func QueryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
