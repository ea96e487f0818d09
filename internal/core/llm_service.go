package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"manachat.ai/manachat/internal/catalog"
	"manachat.ai/manachat/internal/config"
	"manachat.ai/manachat/internal/store"
)

// ChunkStream yields the text fragments of one streaming exchange. Next
// returns io.EOF when the finite stream is exhausted; a stream is not
// restartable.
type ChunkStream interface {
	Next() (string, error)
}

// ChatSession is the opaque stateful handle for one (persona, user) pair.
type ChatSession interface {
	SendMessageStream(ctx context.Context, text string) ChunkStream
}

// SessionFactory creates remote session handles. The chat engine asks for a
// fresh handle whenever the active persona or user changes.
type SessionFactory interface {
	NewSession(persona catalog.BotPersona, user store.UserProfile) (ChatSession, error)
}

type LLMService struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewLLMService(ctx context.Context) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &LLMService{
		client:      client,
		model:       config.AppConfig.ChatModel,
		temperature: float32(config.AppConfig.Temperature),
	}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing GenAI client")
		}
	}
}

// NewSession starts a chat with the persona's instruction plus the user's
// display context baked into the system prompt.
func (s *LLMService) NewSession(persona catalog.BotPersona, user store.UserProfile) (ChatSession, error) {
	model := s.client.GenerativeModel(s.model)

	instruction := fmt.Sprintf(
		"%s\n\nUser Context:\nName: %s\nGender: %s\n\nAlways stay in character as defined above.",
		persona.SystemInstruction, user.Name, user.Gender,
	)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instruction)},
	}

	temp := s.temperature
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: &temp,
	}

	return &geminiSession{chat: model.StartChat()}, nil
}

type geminiSession struct {
	chat *genai.ChatSession
}

func (g *geminiSession) SendMessageStream(ctx context.Context, text string) ChunkStream {
	return &geminiStream{it: g.chat.SendMessageStream(ctx, genai.Text(text))}
}

type geminiStream struct {
	it *genai.GenerateContentResponseIterator
}

func (g *geminiStream) Next() (string, error) {
	resp, err := g.it.Next()
	if err == iterator.Done {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("gemini stream failed: %w", err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	return sb.String(), nil
}
