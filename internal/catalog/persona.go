package catalog

import "manachat.ai/manachat/internal/store"

// Icon is the closed set of glyphs a persona card may render. Unknown names
// from stale persisted data degrade to IconSmile instead of failing a lookup.
type Icon string

const (
	IconSmile      Icon = "Smile"
	IconFilm       Icon = "Film"
	IconUtensils   Icon = "Utensils"
	IconBookOpen   Icon = "BookOpen"
	IconBook       Icon = "Book"
	IconTrophy     Icon = "Trophy"
	IconMusic      Icon = "Music"
	IconCpu        Icon = "Cpu"
	IconSparkles   Icon = "Sparkles"
	IconSmartphone Icon = "Smartphone"
	IconSun        Icon = "Sun"
	IconMoon       Icon = "Moon"
	IconHeart      Icon = "Heart"
	IconLaugh      Icon = "Laugh"
	IconFeather    Icon = "Feather"
	IconZap        Icon = "Zap"
	IconShield     Icon = "Shield"
	IconBriefcase  Icon = "Briefcase"
)

var knownIcons = map[Icon]bool{
	IconSmile: true, IconFilm: true, IconUtensils: true, IconBookOpen: true,
	IconBook: true, IconTrophy: true, IconMusic: true, IconCpu: true,
	IconSparkles: true, IconSmartphone: true, IconSun: true, IconMoon: true,
	IconHeart: true, IconLaugh: true, IconFeather: true, IconZap: true,
	IconShield: true, IconBriefcase: true,
}

func ParseIcon(s string) Icon {
	if knownIcons[Icon(s)] {
		return Icon(s)
	}
	return IconSmile
}

// BotPersona is the admin-editable master record for one chat personality.
type BotPersona struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Category          string       `json:"category"`
	Description       string       `json:"description"`
	SystemInstruction string       `json:"systemInstruction"`
	InitialMessage    string       `json:"initialMessage"`
	Icon              Icon         `json:"icon"`
	Gradient          string       `json:"gradient"`
	Gender            store.Gender `json:"gender"`
	ImageURL          string       `json:"imageUrl"`
}

// PersonaPatch is a sparse field-level edit layered on top of a base record.
// Nil fields leave the base value alone.
type PersonaPatch struct {
	Name              *string       `json:"name,omitempty"`
	Category          *string       `json:"category,omitempty"`
	Description       *string       `json:"description,omitempty"`
	SystemInstruction *string       `json:"systemInstruction,omitempty"`
	InitialMessage    *string       `json:"initialMessage,omitempty"`
	Icon              *Icon         `json:"icon,omitempty"`
	Gradient          *string       `json:"gradient,omitempty"`
	Gender            *store.Gender `json:"gender,omitempty"`
	ImageURL          *string       `json:"imageUrl,omitempty"`
}

// Overrides maps a persona id to the user's cosmetic patch for it.
type Overrides map[string]PersonaPatch

// MergePersona resolves one effective record: every set patch field replaces
// the base field, everything else passes through unchanged.
func MergePersona(base BotPersona, patch PersonaPatch) BotPersona {
	out := base
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Category != nil {
		out.Category = *patch.Category
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.SystemInstruction != nil {
		out.SystemInstruction = *patch.SystemInstruction
	}
	if patch.InitialMessage != nil {
		out.InitialMessage = *patch.InitialMessage
	}
	if patch.Icon != nil {
		out.Icon = *patch.Icon
	}
	if patch.Gradient != nil {
		out.Gradient = *patch.Gradient
	}
	if patch.Gender != nil {
		out.Gender = *patch.Gender
	}
	if patch.ImageURL != nil {
		out.ImageURL = *patch.ImageURL
	}
	return out
}

// MergePatch shallow-merges a later patch into an earlier one, later fields
// winning. Successive overrides accumulate instead of replacing each other.
func MergePatch(existing, update PersonaPatch) PersonaPatch {
	out := existing
	if update.Name != nil {
		out.Name = update.Name
	}
	if update.Category != nil {
		out.Category = update.Category
	}
	if update.Description != nil {
		out.Description = update.Description
	}
	if update.SystemInstruction != nil {
		out.SystemInstruction = update.SystemInstruction
	}
	if update.InitialMessage != nil {
		out.InitialMessage = update.InitialMessage
	}
	if update.Icon != nil {
		out.Icon = update.Icon
	}
	if update.Gradient != nil {
		out.Gradient = update.Gradient
	}
	if update.Gender != nil {
		out.Gender = update.Gender
	}
	if update.ImageURL != nil {
		out.ImageURL = update.ImageURL
	}
	return out
}
