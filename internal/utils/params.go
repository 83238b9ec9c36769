package utils

import (
	"errors"
	"net/http"
	"strings"
)

// ExtractIDFromParams pulls the {id} path value from a request routed by the
// Go 1.22+ pattern mux.
func ExtractIDFromParams(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("id"))
}

// ValidateID rejects empty or unreasonably long identifiers before they reach
// a lookup.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id is required")
	}
	if len(id) > 255 {
		return errors.New("id exceeds maximum length of 255 characters")
	}
	return nil
}
