package profile

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// UsersCollection holds one profile document per user, keyed by uid.
const UsersCollection = "Users"

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
	ErrInvalidName   = errors.New("name must not be empty")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrNoFields      = errors.New("no fields to update")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Profile represents stored profile data.
type Profile struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams for creating a profile.
type CreateParams struct {
	FirstName string
	LastName  string
	Email     string
}

// UpdateParams is a sparse update: nil fields are left untouched.
type UpdateParams struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Empty reports whether no field is set.
func (p UpdateParams) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}

// Service defines profile operations.
//
// Implementations must validate and normalize input before writing anything:
//   - FirstName, LastName: trimmed, must not be empty
//   - Email: trimmed, lowercased, must match a basic address shape
//
// An invalid field fails the whole write.
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, userID string) error
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email has the shape local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if !ValidEmail(normalized) {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func (p CreateParams) normalize() (CreateParams, error) {
	var err error
	out := CreateParams{}
	if out.FirstName, err = normalizeName(p.FirstName); err != nil {
		return CreateParams{}, err
	}
	if out.LastName, err = normalizeName(p.LastName); err != nil {
		return CreateParams{}, err
	}
	if out.Email, err = normalizeEmail(p.Email); err != nil {
		return CreateParams{}, err
	}
	return out, nil
}

// normalize validates every provided field and returns normalized copies.
func (p UpdateParams) normalize() (UpdateParams, error) {
	if p.Empty() {
		return UpdateParams{}, ErrNoFields
	}
	out := UpdateParams{}
	if p.FirstName != nil {
		v, err := normalizeName(*p.FirstName)
		if err != nil {
			return UpdateParams{}, err
		}
		out.FirstName = &v
	}
	if p.LastName != nil {
		v, err := normalizeName(*p.LastName)
		if err != nil {
			return UpdateParams{}, err
		}
		out.LastName = &v
	}
	if p.Email != nil {
		v, err := normalizeEmail(*p.Email)
		if err != nil {
			return UpdateParams{}, err
		}
		out.Email = &v
	}
	return out, nil
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, ErrNoFields):
		return "no_fields"
	default:
		return "internal_error"
	}
}
