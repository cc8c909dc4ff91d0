// Package assist simplifies text with an OpenAI-compatible chat model. It
// is the optional "smart" engine; callers fall back to the rule engine on
// any error.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/easyread/internal/budget"
	"github.com/hyperifyio/easyread/internal/cache"
	"github.com/hyperifyio/easyread/internal/llm"
	"github.com/hyperifyio/easyread/internal/simplify"
)

// ErrEmptyReply indicates the model returned no usable text.
var ErrEmptyReply = errors.New("model returned no simplified text")

// ErrPromptTooLarge is returned when the prompt would not fit the model
// context with room for the reply.
var ErrPromptTooLarge = errors.New("prompt exceeds model context")

// reservedOutputTokens is kept free in the context window for the reply.
const reservedOutputTokens = 1024

// Simplifier implements simplify.Engine on top of an llm.Client.
type Simplifier struct {
	Client llm.Client
	Model  string
	Cache  *cache.Store
	// SystemPrompt, when non-empty, replaces the level-derived prompt.
	SystemPrompt string
	// CacheOnly answers from cache and fails fast on a miss.
	CacheOnly bool
	// Sleep is used for the retry backoff; nil means time.Sleep.
	Sleep func(time.Duration)
}

func (s *Simplifier) Name() string { return "assist" }

// Simplify asks the model to rewrite text at level. Stats are computed with
// the same measurements as the rule engine so reports stay comparable.
func (s *Simplifier) Simplify(ctx context.Context, text string, level simplify.Level) (simplify.Result, error) {
	if s == nil || s.Client == nil || strings.TrimSpace(s.Model) == "" {
		return simplify.Result{}, errors.New("assisted simplifier not configured")
	}
	system := buildSystemMessage(level)
	if strings.TrimSpace(s.SystemPrompt) != "" {
		system = s.SystemPrompt
	}
	user := buildUserMessage(text, level)
	if !budget.FitsPrompt(s.Model, budget.EstimateTokens(system)+budget.EstimateTokens(user), reservedOutputTokens) {
		return simplify.Result{}, ErrPromptTooLarge
	}

	key := cache.KeyFrom(s.Name(), s.Model, level.Key, system, user)
	if s.Cache != nil {
		var cached struct {
			Text string `json:"text"`
		}
		if ok, _ := s.Cache.GetJSON(ctx, key, &cached); ok && strings.TrimSpace(cached.Text) != "" {
			log.Debug().Str("level", level.Key).Msg("assist cache hit")
			return s.result(text, cached.Text, level), nil
		}
	}
	if s.CacheOnly {
		return simplify.Result{}, ErrEmptyReply
	}

	req := openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.1,
		N:           1,
	}
	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		// One short retry for transient failures; ctx still bounds it.
		s.sleep(100 * time.Millisecond)
		resp, err = s.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return simplify.Result{}, fmt.Errorf("simplify call (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return simplify.Result{}, ErrEmptyReply
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return simplify.Result{}, ErrEmptyReply
	}
	if s.Cache != nil {
		if err := s.Cache.SaveJSON(ctx, key, map[string]string{"text": out}); err != nil {
			log.Warn().Err(err).Msg("assist cache save failed")
		}
	}
	return s.result(text, out, level), nil
}

func (s *Simplifier) result(original, out string, level simplify.Level) simplify.Result {
	return simplify.Result{
		Text:   out,
		Level:  level,
		Stats:  simplify.ComputeStats(original, out),
		Engine: s.Name(),
	}
}

func (s *Simplifier) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

func buildSystemMessage(level simplify.Level) string {
	var sb strings.Builder
	sb.WriteString("You rewrite educational text so that diverse learners can read it easily. ")
	sb.WriteString("Keep the key concepts and facts. Do not add new information. ")
	sb.WriteString("Goal: ")
	sb.WriteString(level.Description)
	sb.WriteString(".")
	return sb.String()
}

func buildUserMessage(text string, level simplify.Level) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Simplify the text below (%s).", level.Name))
	sb.WriteString(fmt.Sprintf("\n- Use at most %d sentences", level.MaxSentences))
	sb.WriteString(fmt.Sprintf("\n- Use at most %d words per sentence", level.MaxWordsPerSentence))
	sb.WriteString("\n- Prefer common words over technical terms")
	sb.WriteString("\n- " + level.Example)
	sb.WriteString("\n\nText:\n\n")
	sb.WriteString(text)
	sb.WriteString("\n\nOutput only the simplified text.")
	return sb.String()
}
