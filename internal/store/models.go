package store

import "time"

type Language string

const (
	LanguageTelugu  Language = "Telugu"
	LanguageHindi   Language = "Hindi"
	LanguageTamil   Language = "Tamil"
	LanguageEnglish Language = "English"
)

// Languages returns every supported language in display order.
func Languages() []Language {
	return []Language{LanguageTelugu, LanguageHindi, LanguageTamil, LanguageEnglish}
}

func (l Language) Valid() bool {
	for _, known := range Languages() {
		if l == known {
			return true
		}
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UserProfile is the single profile known to the device. Gender and language
// start at their defaults and are overwritten during onboarding.
type UserProfile struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Gender   Gender   `json:"gender"`
	Language Language `json:"language"`
	IsAdmin  bool     `json:"isAdmin"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one entry of a per-persona transcript. The newest model
// message may be rewritten in place while a response streams; error entries
// are terminal and dropped before the next attempt.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"isError,omitempty"`
}

// ChatHistory maps a persona id to its transcript. Persisted as a single
// record for the whole device, not namespaced by user.
type ChatHistory map[string][]ChatMessage

type Settings struct {
	Sound         bool `json:"sound"`
	Notifications bool `json:"notifications"`
}

func DefaultSettings() Settings {
	return Settings{Sound: true, Notifications: true}
}
