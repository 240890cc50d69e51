package portfolio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is wrapped by HireRequest.Validate for each empty required field.
var ErrMissingField = errors.New("missing required field")

// Hire form status strings, as the front ends show them.
const (
	HireSending = "SENDING"
	HireSent    = "SENT"
)

// HireRequest is the game-over contact form.
type HireRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks every field is present.
func (h HireRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", h.Name},
		{"email", h.Email},
		{"message", h.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s: %w", f.name, ErrMissingField)
		}
	}
	return nil
}
