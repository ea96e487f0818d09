package auth

import (
	"errors"
	"regexp"
	"strings"

	"manachat.ai/manachat/internal/store"
)

// Validation failures surfaced inline at the auth screen. None of them mutate
// any state.
var (
	ErrMissingFields = errors.New("Please fill in all fields.")
	ErrInvalidEmail  = errors.New("Only @gmail.com addresses are allowed.")
)

// Only @gmail.com addresses pass, case-insensitively.
var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@gmail\.com$`)

// Gate is the client-side authentication check: an email shape test and an
// admin-address comparison. Passwords are required non-empty but never
// verified against anything.
type Gate struct {
	adminEmail string
}

func NewGate(adminEmail string) *Gate {
	return &Gate{adminEmail: adminEmail}
}

// Authenticate validates the submitted credentials and fabricates the profile
// they resolve to. A missing name falls back to the email prefix. Gender and
// language start at their defaults and are set during onboarding.
func (g *Gate) Authenticate(name, email, password string) (store.UserProfile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if email == "" || strings.TrimSpace(password) == "" {
		return store.UserProfile{}, ErrMissingFields
	}
	// The reserved admin address is the one non-gmail login that must work.
	if !emailPattern.MatchString(email) && !strings.EqualFold(email, g.adminEmail) {
		return store.UserProfile{}, ErrInvalidEmail
	}

	finalName := name
	if finalName == "" {
		finalName = strings.SplitN(email, "@", 2)[0]
	}

	return store.UserProfile{
		Name:     finalName,
		Email:    email,
		Gender:   store.GenderMale,
		Language: store.LanguageTelugu,
		IsAdmin:  strings.EqualFold(email, g.adminEmail),
	}, nil
}
