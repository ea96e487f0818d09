package catalog

import (
	"sync"

	"github.com/rs/zerolog/log"

	"manachat.ai/manachat/internal/store"
)

// Catalog owns the persona data: the factory seeds, admin edits persisted over
// them, and the user's cosmetic overrides layered on top at read time.
type Catalog struct {
	mu        sync.RWMutex
	records   *store.RecordStore
	base      map[store.Language][]BotPersona
	overrides Overrides
}

func NewCatalog(records *store.RecordStore) *Catalog {
	c := &Catalog{
		records:   records,
		base:      SeedPersonas(),
		overrides: Overrides{},
	}
	if records != nil {
		records.Load(store.KeyBasePersonas, &c.base)
		records.Load(store.KeyBotOverrides, &c.overrides)
	}
	return c
}

// Base returns the admin-edited catalog without user overrides applied.
func (c *Catalog) Base() map[store.Language][]BotPersona {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyCatalog(c.base)
}

// Effective returns the fully merged catalog for every language, preserving
// list order and ids.
func (c *Catalog) Effective() map[store.Language][]BotPersona {
	c.mu.RLock()
	defer c.mu.RUnlock()

	merged := make(map[store.Language][]BotPersona, len(c.base))
	for lang, list := range c.base {
		merged[lang] = c.mergeListLocked(list)
	}
	return merged
}

// EffectiveForLanguage returns the merged persona list one user actually sees.
func (c *Catalog) EffectiveForLanguage(lang store.Language) []BotPersona {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mergeListLocked(c.base[lang])
}

// EffectiveForProfile returns the merged personas the dashboard shows a user:
// within the user's language, only the personas of the opposite gender.
func (c *Catalog) EffectiveForProfile(user store.UserProfile) []BotPersona {
	target := store.GenderFemale
	if user.Gender == store.GenderFemale {
		target = store.GenderMale
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []BotPersona{}
	for _, p := range c.base[user.Language] {
		merged := MergePersona(p, c.overrides[p.ID])
		if merged.Gender == target {
			out = append(out, merged)
		}
	}
	return out
}

// Find resolves the effective persona for an id within a language list.
func (c *Catalog) Find(lang store.Language, personaID string) (BotPersona, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.base[lang] {
		if p.ID == personaID {
			return MergePersona(p, c.overrides[p.ID]), true
		}
	}
	return BotPersona{}, false
}

// UpdateBase replaces the base record whose id matches within the given
// language. An unknown id has no effect.
func (c *Catalog) UpdateBase(updated BotPersona, lang store.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()

	replaced := false
	list := c.base[lang]
	for i, p := range list {
		if p.ID == updated.ID {
			list[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		log.Debug().Str("persona_id", updated.ID).Str("language", string(lang)).Msg("base persona update ignored, unknown id")
		return
	}
	c.persistBaseLocked()
}

// ApplyOverride shallow-merges a cosmetic patch into the user's existing
// override for that persona.
func (c *Catalog) ApplyOverride(personaID string, patch PersonaPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overrides[personaID] = MergePatch(c.overrides[personaID], patch)
	if c.records != nil {
		if err := c.records.Save(store.KeyBotOverrides, c.overrides); err != nil {
			log.Error().Err(err).Msg("failed to persist bot overrides")
		}
	}
}

func (c *Catalog) mergeListLocked(list []BotPersona) []BotPersona {
	out := make([]BotPersona, len(list))
	for i, p := range list {
		out[i] = MergePersona(p, c.overrides[p.ID])
	}
	return out
}

func (c *Catalog) persistBaseLocked() {
	if c.records == nil {
		return
	}
	if err := c.records.Save(store.KeyBasePersonas, c.base); err != nil {
		log.Error().Err(err).Msg("failed to persist base personas")
	}
}

func copyCatalog(in map[store.Language][]BotPersona) map[store.Language][]BotPersona {
	out := make(map[store.Language][]BotPersona, len(in))
	for lang, list := range in {
		out[lang] = append([]BotPersona(nil), list...)
	}
	return out
}
