package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Stylist struct {
	ID      string
	Email   string
	Name    string
	Phone   string
	Role    StylistRole
	Picture string
}

// DisplayName prefers the stylist's name and falls back to the email.
func (s *Stylist) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// ProfileUpdate is an edit of the stylist's own profile. Email is always
// sent; nil fields are left unchanged by the backend.
type ProfileUpdate struct {
	Email   string
	Name    *string
	Phone   *string
	Picture *string
}

// Validate checks that the update carries a usable email.
func (u ProfileUpdate) Validate() error {
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email %q", u.Email)
	}
	return nil
}

// Apply returns s with the update's fields set.
func (u ProfileUpdate) Apply(s Stylist) Stylist {
	s.Email = u.Email
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Phone != nil {
		s.Phone = *u.Phone
	}
	if u.Picture != nil {
		s.Picture = *u.Picture
	}
	return s
}
