package portfolio

import (
	"errors"
	"strings"
	"testing"
)

func TestHireRequestValidate(t *testing.T) {
	ok := HireRequest{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	tests := []struct {
		name  string
		req   HireRequest
		field string
	}{
		{"no name", HireRequest{Email: "a@b.c", Message: "m"}, "name"},
		{"blank email", HireRequest{Name: "n", Email: "  ", Message: "m"}, "email"},
		{"no message", HireRequest{Name: "n", Email: "a@b.c"}, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("Validate = %v, want ErrMissingField", err)
			}
			if !strings.HasPrefix(err.Error(), tt.field+":") {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}
