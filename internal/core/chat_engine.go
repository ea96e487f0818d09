package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"manachat.ai/manachat/internal/catalog"
	"manachat.ai/manachat/internal/metrics"
	"manachat.ai/manachat/internal/store"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrBusy           = errors.New("a response is already in flight")
	ErrNoSession      = errors.New("no chat session")
	ErrUnknownPersona = errors.New("unknown persona")
)

const connectionFailedText = "Connection failed."

type conversation struct {
	session  ChatSession
	awaiting bool
}

// ChatEngine owns the per-persona transcripts and drives the streaming
// exchange with the remote session. At most one exchange is outstanding per
// conversation, enforced by the awaiting flag; every transcript mutation
// rewrites the whole persisted history map.
type ChatEngine struct {
	mu       sync.Mutex
	records  *store.RecordStore
	catalog  *catalog.Catalog
	sessions SessionFactory
	history  store.ChatHistory
	convs    map[string]*conversation
}

func NewChatEngine(records *store.RecordStore, cat *catalog.Catalog, sessions SessionFactory) *ChatEngine {
	history := store.ChatHistory{}
	if records != nil {
		records.Load(store.KeyHistory, &history)
	}
	return &ChatEngine{
		records:  records,
		catalog:  cat,
		sessions: sessions,
		history:  history,
		convs:    make(map[string]*conversation),
	}
}

// Open prepares a conversation with the effective persona: a fresh remote
// session handle, and a transcript seeded with the persona's initial message
// when no history exists. A session that fails to initialize leaves the
// conversation readable; sends against it are rejected.
func (e *ChatEngine) Open(personaID string, user store.UserProfile) ([]store.ChatMessage, error) {
	persona, ok := e.catalog.Find(user.Language, personaID)
	if !ok {
		return nil, ErrUnknownPersona
	}

	session, err := e.sessions.NewSession(persona, user)
	if err != nil {
		log.Error().Err(err).Str("persona_id", personaID).Msg("failed to init chat session")
		session = nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.convs[personaID] = &conversation{session: session}
	if len(e.history[personaID]) == 0 {
		e.history[personaID] = []store.ChatMessage{initialMessage(persona)}
		e.persistLocked()
	}
	return copyMessages(e.history[personaID]), nil
}

// History returns the transcript for a persona, which may be empty.
func (e *ChatEngine) History(personaID string) []store.ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyMessages(e.history[personaID])
}

// Send submits a user message and streams the model response into a new
// transcript entry, invoking onDelta with the updated model message after
// each fragment. Blank text, an in-flight exchange, or a missing session are
// rejected without mutating the transcript.
func (e *ChatEngine) Send(ctx context.Context, personaID, text string, onDelta func(store.ChatMessage)) error {
	return e.exchange(ctx, personaID, text, false, onDelta)
}

// Retry resubmits the text of the most recent user message without appending
// a duplicate user entry. It is a no-op when no user message exists.
func (e *ChatEngine) Retry(ctx context.Context, personaID string, onDelta func(store.ChatMessage)) error {
	e.mu.Lock()
	var last string
	msgs := e.history[personaID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == store.RoleUser {
			last = msgs[i].Text
			break
		}
	}
	e.mu.Unlock()

	if last == "" {
		return nil
	}
	return e.exchange(ctx, personaID, last, true, onDelta)
}

func (e *ChatEngine) exchange(ctx context.Context, personaID, text string, isRetry bool, onDelta func(store.ChatMessage)) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	e.mu.Lock()
	conv := e.convs[personaID]
	if conv == nil || conv.session == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	if conv.awaiting {
		e.mu.Unlock()
		return ErrBusy
	}
	conv.awaiting = true

	msgs := dropErrorEntries(e.history[personaID])
	if !isRetry {
		msgs = append(msgs, store.ChatMessage{
			ID:        uuid.NewString(),
			Role:      store.RoleUser,
			Text:      text,
			Timestamp: time.Now(),
		})
	}
	model := store.ChatMessage{
		ID:        uuid.NewString(),
		Role:      store.RoleModel,
		Timestamp: time.Now(),
	}
	msgs = append(msgs, model)
	e.history[personaID] = msgs
	e.persistLocked()
	session := conv.session
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		conv.awaiting = false
		e.mu.Unlock()
	}()

	metrics.Global().MessagesSent.Inc()
	if isRetry {
		metrics.Global().Retries.Inc()
	}

	stream := session.SendMessageStream(ctx, text)
	var full strings.Builder
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.Global().StreamFailures.Inc()
			log.Warn().Err(err).Str("persona_id", personaID).Msg("streaming exchange failed")
			e.appendError(personaID)
			return err
		}
		metrics.Global().StreamChunks.Inc()
		full.WriteString(chunk)
		updated := e.updateModelMessage(personaID, model.ID, full.String())
		if onDelta != nil {
			onDelta(updated)
		}
	}
	return nil
}

// Clear discards the transcript for a persona and reseeds it with the
// effective persona's initial message, purging the persisted entry first.
func (e *ChatEngine) Clear(personaID string, user store.UserProfile) ([]store.ChatMessage, error) {
	persona, ok := e.catalog.Find(user.Language, personaID)
	if !ok {
		return nil, ErrUnknownPersona
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.history, personaID)
	e.history[personaID] = []store.ChatMessage{initialMessage(persona)}
	e.persistLocked()
	return copyMessages(e.history[personaID]), nil
}

// ResetSessions drops every live session handle. Called on sign-out; the next
// user gets fresh handles on open.
func (e *ChatEngine) ResetSessions() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.convs = make(map[string]*conversation)
}

func (e *ChatEngine) appendError(personaID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history[personaID] = append(e.history[personaID], store.ChatMessage{
		ID:        uuid.NewString(),
		Role:      store.RoleModel,
		Text:      connectionFailedText,
		Timestamp: time.Now(),
		IsError:   true,
	})
	e.persistLocked()
}

// updateModelMessage replaces the streaming model message's text in place. A
// stale update after the transcript was cleared lands nowhere, which is fine.
func (e *ChatEngine) updateModelMessage(personaID, messageID, text string) store.ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()

	msgs := e.history[personaID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].Text = text
			e.persistLocked()
			return msgs[i]
		}
	}
	return store.ChatMessage{ID: messageID, Role: store.RoleModel, Text: text}
}

func (e *ChatEngine) persistLocked() {
	if e.records == nil {
		return
	}
	if err := e.records.Save(store.KeyHistory, e.history); err != nil {
		log.Error().Err(err).Msg("failed to persist chat history")
	}
}

func initialMessage(persona catalog.BotPersona) store.ChatMessage {
	return store.ChatMessage{
		ID:        uuid.NewString(),
		Role:      store.RoleModel,
		Text:      persona.InitialMessage,
		Timestamp: time.Now(),
	}
}

func dropErrorEntries(msgs []store.ChatMessage) []store.ChatMessage {
	out := msgs[:0]
	for _, m := range msgs {
		if !m.IsError {
			out = append(out, m)
		}
	}
	return out
}

func copyMessages(msgs []store.ChatMessage) []store.ChatMessage {
	return append([]store.ChatMessage(nil), msgs...)
}
