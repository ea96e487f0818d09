package auth

import (
	"errors"
	"testing"

	"manachat.ai/manachat/internal/config"
	"manachat.ai/manachat/internal/store"
)

const adminAddr = "admin@manachat.ai"

func TestAuthenticateGmailAddress(t *testing.T) {
	g := NewGate(adminAddr)

	profile, err := g.Authenticate("Asha", "asha@gmail.com", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if profile.Name != "Asha" || profile.Email != "asha@gmail.com" {
		t.Fatalf("profile mismatch: %+v", profile)
	}
	if profile.IsAdmin {
		t.Fatal("ordinary gmail address must not be admin")
	}
	if profile.Gender != store.GenderMale || profile.Language != store.LanguageTelugu {
		t.Fatalf("fresh profile must carry defaults, got %+v", profile)
	}
}

func TestAuthenticateNameFallsBackToEmailPrefix(t *testing.T) {
	g := NewGate(adminAddr)

	profile, err := g.Authenticate("", "a@gmail.com", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if profile.Name != "a" {
		t.Fatalf("expected name from email prefix, got %q", profile.Name)
	}
}

func TestAuthenticateRejectsNonGmail(t *testing.T) {
	g := NewGate(adminAddr)

	for _, email := range []string{"a@yahoo.com", "a@gmail.org", "a@gmailx.com", "gmail.com"} {
		if _, err := g.Authenticate("A", email, "pw"); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestAuthenticateGmailCaseInsensitive(t *testing.T) {
	g := NewGate(adminAddr)

	if _, err := g.Authenticate("A", "Asha@Gmail.COM", "pw"); err != nil {
		t.Fatalf("case-variant gmail address must pass, got %v", err)
	}
}

func TestAuthenticateRequiresEmailAndPassword(t *testing.T) {
	g := NewGate(adminAddr)

	if _, err := g.Authenticate("A", "", "pw"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("missing email: expected ErrMissingFields, got %v", err)
	}
	if _, err := g.Authenticate("A", "a@gmail.com", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("missing password: expected ErrMissingFields, got %v", err)
	}
	if _, err := g.Authenticate("A", "a@gmail.com", "   "); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("blank password: expected ErrMissingFields, got %v", err)
	}
}

func TestAuthenticateAdminAddress(t *testing.T) {
	g := NewGate(adminAddr)

	for _, email := range []string{adminAddr, "ADMIN@MANACHAT.AI", "Admin@ManaChat.ai"} {
		profile, err := g.Authenticate("", email, "pw")
		if err != nil {
			t.Fatalf("admin address %q must pass the gate, got %v", email, err)
		}
		if !profile.IsAdmin {
			t.Fatalf("admin address %q must set the admin flag", email)
		}
	}
}

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	token, err := GenerateJWT("asha@gmail.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	email, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if email != "asha@gmail.com" {
		t.Fatalf("subject mismatch: %q", email)
	}

	if _, err := ValidateJWT(token + "x"); err == nil {
		t.Fatal("tampered token must fail validation")
	}

	config.AppConfig.JWTSecret = "rotated"
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("token signed with the old secret must fail")
	}
}
