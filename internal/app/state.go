package app

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"manachat.ai/manachat/internal/catalog"
	"manachat.ai/manachat/internal/core"
	"manachat.ai/manachat/internal/store"
)

// View is the finite set of screens the application can show.
type View string

const (
	ViewLanding    View = "landing"
	ViewAuth       View = "auth"
	ViewOnboarding View = "onboarding"
	ViewDashboard  View = "dashboard"
	ViewChat       View = "chat"
	ViewAdmin      View = "admin"
)

var (
	ErrNoProfile     = errors.New("no active profile")
	ErrNotAdmin      = errors.New("admin access required")
	ErrInvalidChoice = errors.New("invalid gender or language")
)

// ProfilePatch is a sparse edit to the active profile.
type ProfilePatch struct {
	Name     *string         `json:"name,omitempty"`
	Gender   *store.Gender   `json:"gender,omitempty"`
	Language *store.Language `json:"language,omitempty"`
}

// Snapshot is the externally visible application state.
type Snapshot struct {
	View             View               `json:"view"`
	User             *store.UserProfile `json:"user,omitempty"`
	CurrentPersonaID string             `json:"currentPersonaId,omitempty"`
	Theme            store.Theme        `json:"theme"`
	Settings         store.Settings     `json:"settings"`
}

// Controller owns all application state: the active profile, the current
// view, the selected persona, theme, and settings. Every mutation goes
// through a named operation here and is mirrored to the record store.
type Controller struct {
	mu      sync.RWMutex
	records *store.RecordStore
	catalog *catalog.Catalog
	engine  *core.ChatEngine

	view             View
	user             *store.UserProfile
	currentPersonaID string
	theme            store.Theme
	settings         store.Settings
}

// NewController restores persisted state. A persisted profile lands the user
// straight on the dashboard, anyone else on the landing screen.
func NewController(records *store.RecordStore, cat *catalog.Catalog, engine *core.ChatEngine) *Controller {
	c := &Controller{
		records:  records,
		catalog:  cat,
		engine:   engine,
		view:     ViewLanding,
		theme:    store.ThemeLight,
		settings: store.DefaultSettings(),
	}
	if records != nil {
		var u store.UserProfile
		if records.Load(store.KeyUser, &u) {
			c.user = &u
			c.view = ViewDashboard
		}
		records.Load(store.KeyTheme, &c.theme)
		records.Load(store.KeySettings, &c.settings)
	}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		View:             c.view,
		CurrentPersonaID: c.currentPersonaID,
		Theme:            c.theme,
		Settings:         c.settings,
	}
	if c.user != nil {
		u := *c.user
		snap.User = &u
	}
	return snap
}

func (c *Controller) User() (store.UserProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return store.UserProfile{}, false
	}
	return *c.user, true
}

// StartExperience leaves the landing screen: straight to the dashboard when a
// profile exists, otherwise to the auth screen.
func (c *Controller) StartExperience() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user != nil {
		c.view = ViewDashboard
	} else {
		c.view = ViewAuth
	}
	return c.view
}

// CompleteAuth installs the profile the gate resolved. Signup proceeds to
// onboarding; login lands on the dashboard and, when a profile is already
// known, keeps its gender and language preferences.
func (c *Controller) CompleteAuth(profile store.UserProfile, isLogin bool) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if isLogin && c.user != nil {
		c.user.Name = profile.Name
		c.user.Email = profile.Email
		c.user.IsAdmin = profile.IsAdmin
	} else {
		u := profile
		c.user = &u
	}
	c.persistUserLocked()
	c.engine.ResetSessions()

	if isLogin {
		c.view = ViewDashboard
	} else {
		c.view = ViewOnboarding
	}
	return c.view
}

// CompleteOnboarding records the chosen gender and language and moves to the
// dashboard.
func (c *Controller) CompleteOnboarding(gender store.Gender, language store.Language) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return c.view, ErrNoProfile
	}
	if !gender.Valid() || !language.Valid() {
		return c.view, ErrInvalidChoice
	}
	c.user.Gender = gender
	c.user.Language = language
	c.persistUserLocked()
	c.view = ViewDashboard
	return c.view, nil
}

// CancelOnboarding discards the pending profile entirely, same as signing
// out.
func (c *Controller) CancelOnboarding() View {
	return c.SignOut()
}

// OpenPreferences returns to the onboarding screen with the profile retained.
func (c *Controller) OpenPreferences() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return c.view, ErrNoProfile
	}
	c.view = ViewOnboarding
	return c.view, nil
}

// UpdateProfile applies a sparse profile edit from the sidebar.
func (c *Controller) UpdateProfile(patch ProfilePatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return ErrNoProfile
	}
	if patch.Name != nil {
		c.user.Name = *patch.Name
	}
	if patch.Gender != nil {
		if !patch.Gender.Valid() {
			return ErrInvalidChoice
		}
		c.user.Gender = *patch.Gender
	}
	if patch.Language != nil {
		if !patch.Language.Valid() {
			return ErrInvalidChoice
		}
		c.user.Language = *patch.Language
	}
	c.persistUserLocked()
	return nil
}

// SelectPersona enters the chat view for a persona of the user's language.
func (c *Controller) SelectPersona(personaID string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return c.view, ErrNoProfile
	}
	if _, ok := c.catalog.Find(c.user.Language, personaID); !ok {
		return c.view, core.ErrUnknownPersona
	}
	c.currentPersonaID = personaID
	c.view = ViewChat
	return c.view, nil
}

// BackToDashboard leaves the chat view and clears the persona selection.
func (c *Controller) BackToDashboard() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentPersonaID = ""
	c.view = ViewDashboard
	return c.view
}

// ResolvedPersona returns the effective persona the chat view shows. A chat
// view with no resolvable persona is dead: it renders nothing.
func (c *Controller) ResolvedPersona() (catalog.BotPersona, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.view != ViewChat || c.user == nil || c.currentPersonaID == "" {
		return catalog.BotPersona{}, false
	}
	return c.catalog.Find(c.user.Language, c.currentPersonaID)
}

// OpenAdmin is only reachable with the admin flag set.
func (c *Controller) OpenAdmin() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil || !c.user.IsAdmin {
		return c.view, ErrNotAdmin
	}
	c.view = ViewAdmin
	return c.view, nil
}

func (c *Controller) CloseAdmin() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = ViewDashboard
	return c.view
}

// SignOut clears the profile from memory and persistence and returns to the
// landing screen.
func (c *Controller) SignOut() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.records != nil {
		if err := c.records.Delete(store.KeyUser); err != nil {
			log.Error().Err(err).Msg("failed to clear persisted profile")
		}
	}
	c.user = nil
	c.currentPersonaID = ""
	c.engine.ResetSessions()
	c.view = ViewLanding
	return c.view
}

func (c *Controller) SetTheme(theme store.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if theme != store.ThemeDark {
		theme = store.ThemeLight
	}
	c.theme = theme
	if c.records != nil {
		if err := c.records.Save(store.KeyTheme, c.theme); err != nil {
			log.Error().Err(err).Msg("failed to persist theme")
		}
	}
}

func (c *Controller) SetSettings(settings store.Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings = settings
	if c.records != nil {
		if err := c.records.Save(store.KeySettings, c.settings); err != nil {
			log.Error().Err(err).Msg("failed to persist settings")
		}
	}
}

func (c *Controller) persistUserLocked() {
	if c.records == nil || c.user == nil {
		return
	}
	if err := c.records.Save(store.KeyUser, c.user); err != nil {
		log.Error().Err(err).Msg("failed to persist profile")
	}
}
