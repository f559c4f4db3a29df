package profile

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestValidEmail(t *testing.T) {
	valid := []string{"john@x.com", "a.b+c@example.co.uk"}
	invalid := []string{"", "john", "john@", "john@x", "jo hn@x.com", "@x.com", "john@@x.com"}

	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  John@X.COM "); got != "john@x.com" {
		t.Fatalf("expected john@x.com, got %q", got)
	}
}

func TestUpdateParamsNormalize(t *testing.T) {
	got, err := UpdateParams{
		FirstName: strPtr("  Jane "),
		Email:     strPtr(" JANE@X.COM"),
	}.normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.FirstName != "Jane" {
		t.Errorf("expected trimmed first name, got %q", *got.FirstName)
	}
	if got.LastName != nil {
		t.Errorf("expected last name to stay omitted, got %q", *got.LastName)
	}
	if *got.Email != "jane@x.com" {
		t.Errorf("expected normalized email, got %q", *got.Email)
	}
}

func TestUpdateParamsNormalizeRejects(t *testing.T) {
	tests := []struct {
		name   string
		params UpdateParams
		want   error
	}{
		{"empty", UpdateParams{}, ErrNoFields},
		{"blank first name", UpdateParams{FirstName: strPtr("   ")}, ErrInvalidName},
		{"blank last name", UpdateParams{LastName: strPtr("")}, ErrInvalidName},
		{"bad email", UpdateParams{Email: strPtr("nope")}, ErrInvalidEmail},
		{"one bad field fails all", UpdateParams{FirstName: strPtr("Jane"), Email: strPtr("x@y")}, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.params.normalize(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateParamsNormalize(t *testing.T) {
	got, err := CreateParams{FirstName: " John", LastName: "Doe ", Email: "JOHN@X.COM"}.normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FirstName != "John" || got.LastName != "Doe" || got.Email != "john@x.com" {
		t.Fatalf("unexpected normalized params %+v", got)
	}

	if _, err := (CreateParams{FirstName: "John", Email: "john@x.com"}).normalize(); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"already exists", ErrAlreadyExists, "already_exists"},
		{"not found", ErrNotFound, "not_found"},
		{"invalid name", ErrInvalidName, "invalid_name"},
		{"invalid email", ErrInvalidEmail, "invalid_email"},
		{"no fields", ErrNoFields, "no_fields"},
		{"internal error", errors.New("unexpected"), "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeError(tt.err); got != tt.want {
				t.Fatalf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
