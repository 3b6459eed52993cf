package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidRole  = errors.New("invalid role")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

// SameAddress compares addresses case-insensitively.
func (e Email) SameAddress(other string) bool {
	return strings.EqualFold(e.value, strings.TrimSpace(other))
}

// Identity is what the identity collaborator tells us about the caller.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

func (i Identity) IsSeller() bool {
	return i.Role == RoleSeller || i.Role == RoleAdmin
}
