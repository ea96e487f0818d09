package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"manachat.ai/manachat/internal/catalog"
	"manachat.ai/manachat/internal/core"
	"manachat.ai/manachat/internal/store"
)

type stubStream struct{}

func (stubStream) Next() (string, error) { return "", io.EOF }

type stubSession struct{}

func (stubSession) SendMessageStream(context.Context, string) core.ChunkStream { return stubStream{} }

type stubFactory struct{}

func (stubFactory) NewSession(catalog.BotPersona, store.UserProfile) (core.ChatSession, error) {
	return stubSession{}, nil
}

func newTestController(t *testing.T) (*Controller, *store.RecordStore) {
	t.Helper()
	records, err := store.NewRecordStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open record store: %v", err)
	}
	t.Cleanup(func() { records.Close() })

	cat := catalog.NewCatalog(records)
	engine := core.NewChatEngine(records, cat, stubFactory{})
	return NewController(records, cat, engine), records
}

func restoreController(records *store.RecordStore) *Controller {
	cat := catalog.NewCatalog(records)
	engine := core.NewChatEngine(records, cat, stubFactory{})
	return NewController(records, cat, engine)
}

func signedUpProfile() store.UserProfile {
	return store.UserProfile{
		Name:     "asha",
		Email:    "asha@gmail.com",
		Gender:   store.GenderMale,
		Language: store.LanguageTelugu,
	}
}

func TestFreshStartLandsOnLanding(t *testing.T) {
	c, _ := newTestController(t)

	snap := c.Snapshot()
	if snap.View != ViewLanding {
		t.Fatalf("expected landing, got %q", snap.View)
	}
	if snap.User != nil {
		t.Fatalf("fresh start must have no profile, got %+v", snap.User)
	}
	if c.StartExperience() != ViewAuth {
		t.Fatal("start without a profile must go to auth")
	}
}

func TestPersistedProfileSkipsToDashboard(t *testing.T) {
	c, records := newTestController(t)
	c.CompleteAuth(signedUpProfile(), false)
	if _, err := c.CompleteOnboarding(store.GenderFemale, store.LanguageHindi); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	restored := restoreController(records)
	snap := restored.Snapshot()
	if snap.View != ViewDashboard {
		t.Fatalf("restored session must open the dashboard, got %q", snap.View)
	}
	if snap.User == nil || snap.User.Language != store.LanguageHindi || snap.User.Gender != store.GenderFemale {
		t.Fatalf("restored profile lost onboarding choices: %+v", snap.User)
	}
	if restored.StartExperience() != ViewDashboard {
		t.Fatal("start with a profile must go to the dashboard")
	}
}

func TestSignupFlowsThroughOnboarding(t *testing.T) {
	c, _ := newTestController(t)
	c.StartExperience()

	if view := c.CompleteAuth(signedUpProfile(), false); view != ViewOnboarding {
		t.Fatalf("signup must go to onboarding, got %q", view)
	}

	if _, err := c.CompleteOnboarding("Robot", store.LanguageTamil); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("invalid gender: expected ErrInvalidChoice, got %v", err)
	}
	if _, err := c.CompleteOnboarding(store.GenderFemale, "Klingon"); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("invalid language: expected ErrInvalidChoice, got %v", err)
	}

	view, err := c.CompleteOnboarding(store.GenderFemale, store.LanguageTamil)
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if view != ViewDashboard {
		t.Fatalf("expected dashboard, got %q", view)
	}

	user, _ := c.User()
	if user.Gender != store.GenderFemale || user.Language != store.LanguageTamil {
		t.Fatalf("onboarding choices not applied: %+v", user)
	}
}

func TestOnboardingWithoutProfile(t *testing.T) {
	c, _ := newTestController(t)
	if _, err := c.CompleteOnboarding(store.GenderMale, store.LanguageTelugu); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestLoginKeepsPreferences(t *testing.T) {
	c, _ := newTestController(t)
	c.CompleteAuth(signedUpProfile(), false)
	if _, err := c.CompleteOnboarding(store.GenderFemale, store.LanguageHindi); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	login := store.UserProfile{
		Name:     "Asha Renamed",
		Email:    "asha@gmail.com",
		Gender:   store.GenderMale,
		Language: store.LanguageTelugu,
	}
	if view := c.CompleteAuth(login, true); view != ViewDashboard {
		t.Fatalf("login must go straight to the dashboard, got %q", view)
	}

	user, _ := c.User()
	if user.Name != "Asha Renamed" {
		t.Fatalf("login must take the new name, got %q", user.Name)
	}
	if user.Gender != store.GenderFemale || user.Language != store.LanguageHindi {
		t.Fatalf("login must keep existing preferences, got %+v", user)
	}
}

func TestCancelOnboardingDiscardsProfile(t *testing.T) {
	c, records := newTestController(t)
	c.CompleteAuth(signedUpProfile(), false)

	if view := c.CancelOnboarding(); view != ViewLanding {
		t.Fatalf("cancel must return to landing, got %q", view)
	}
	if _, ok := c.User(); ok {
		t.Fatal("cancel must discard the profile")
	}

	var u store.UserProfile
	if records.Load(store.KeyUser, &u) {
		t.Fatal("cancel must purge the persisted profile")
	}
}

func TestSelectPersonaAndChatView(t *testing.T) {
	c, _ := newTestController(t)

	if _, err := c.SelectPersona("te-f-friendly"); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}

	c.CompleteAuth(signedUpProfile(), false)
	if _, err := c.CompleteOnboarding(store.GenderMale, store.LanguageTelugu); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	if _, err := c.SelectPersona("hi-m-friendly"); !errors.Is(err, core.ErrUnknownPersona) {
		t.Fatalf("persona outside the user's language must be unknown, got %v", err)
	}

	view, err := c.SelectPersona("te-f-friendly")
	if err != nil {
		t.Fatalf("select persona: %v", err)
	}
	if view != ViewChat {
		t.Fatalf("expected chat view, got %q", view)
	}
	if persona, ok := c.ResolvedPersona(); !ok || persona.ID != "te-f-friendly" {
		t.Fatalf("expected resolved persona, got %+v ok=%v", persona, ok)
	}

	if view := c.BackToDashboard(); view != ViewDashboard {
		t.Fatalf("expected dashboard, got %q", view)
	}
	if c.Snapshot().CurrentPersonaID != "" {
		t.Fatal("leaving chat must clear the persona selection")
	}
}

func TestChatViewDiesWhenPersonaUnresolvable(t *testing.T) {
	c, _ := newTestController(t)
	c.CompleteAuth(signedUpProfile(), false)
	if _, err := c.CompleteOnboarding(store.GenderMale, store.LanguageTelugu); err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if _, err := c.SelectPersona("te-f-friendly"); err != nil {
		t.Fatalf("select persona: %v", err)
	}

	// Switching language mid-chat leaves the selected id pointing outside the
	// user's catalog. The chat view must render nothing.
	lang := store.LanguageHindi
	if err := c.UpdateProfile(ProfilePatch{Language: &lang}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if _, ok := c.ResolvedPersona(); ok {
		t.Fatal("persona must not resolve after the language switch")
	}
}

func TestAdminGuard(t *testing.T) {
	c, _ := newTestController(t)

	if _, err := c.OpenAdmin(); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("no profile: expected ErrNotAdmin, got %v", err)
	}

	c.CompleteAuth(signedUpProfile(), false)
	if _, err := c.OpenAdmin(); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("non-admin: expected ErrNotAdmin, got %v", err)
	}

	admin := store.UserProfile{
		Name:     "admin",
		Email:    "admin@manachat.ai",
		Gender:   store.GenderMale,
		Language: store.LanguageTelugu,
		IsAdmin:  true,
	}
	c.CompleteAuth(admin, true)
	view, err := c.OpenAdmin()
	if err != nil {
		t.Fatalf("admin open: %v", err)
	}
	if view != ViewAdmin {
		t.Fatalf("expected admin view, got %q", view)
	}
	if c.CloseAdmin() != ViewDashboard {
		t.Fatal("closing admin must return to the dashboard")
	}
}

func TestSignOutClearsEverything(t *testing.T) {
	c, records := newTestController(t)
	c.CompleteAuth(signedUpProfile(), false)
	if _, err := c.CompleteOnboarding(store.GenderMale, store.LanguageTelugu); err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if _, err := c.SelectPersona("te-f-friendly"); err != nil {
		t.Fatalf("select persona: %v", err)
	}

	if view := c.SignOut(); view != ViewLanding {
		t.Fatalf("expected landing, got %q", view)
	}
	if _, ok := c.User(); ok {
		t.Fatal("sign-out must drop the in-memory profile")
	}
	var u store.UserProfile
	if records.Load(store.KeyUser, &u) {
		t.Fatal("sign-out must purge the persisted profile")
	}
	if c.Snapshot().CurrentPersonaID != "" {
		t.Fatal("sign-out must clear the persona selection")
	}
}

func TestThemeAndSettingsPersist(t *testing.T) {
	c, records := newTestController(t)

	c.SetTheme(store.ThemeDark)
	c.SetSettings(store.Settings{Sound: false, Notifications: true})

	restored := restoreController(records)
	snap := restored.Snapshot()
	if snap.Theme != store.ThemeDark {
		t.Fatalf("theme lost across restart, got %q", snap.Theme)
	}
	if snap.Settings.Sound || !snap.Settings.Notifications {
		t.Fatalf("settings lost across restart: %+v", snap.Settings)
	}

	// Unknown themes degrade to light rather than persisting garbage.
	c.SetTheme("neon")
	if c.Snapshot().Theme != store.ThemeLight {
		t.Fatalf("unknown theme must fall back to light, got %q", c.Snapshot().Theme)
	}
}
