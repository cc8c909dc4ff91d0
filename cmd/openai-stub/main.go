// Command openai-stub serves a minimal OpenAI-compatible API that answers
// simplification prompts with the rule engine. It lets the assisted path be
// exercised end to end without a real model.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/easyread/internal/simplify"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "easyread-rules"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}
	log.Info().Str("addr", addr).Str("model", model).Msg("openai-stub listening")
	if err := http.ListenAndServe(addr, newMux(model)); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newMux(model string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var user string
		for _, m := range req.Messages {
			if m.Role == "user" {
				user = m.Content
			}
		}
		text, level, ok := parsePrompt(user)
		if !ok {
			http.Error(w, "unexpected prompt", http.StatusBadRequest)
			return
		}
		res, _ := simplify.Rules{}.Simplify(context.Background(), text, level)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "chat.completion",
			"model":  model,
			"choices": []map[string]any{
				{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": res.Text}},
			},
		})
	})
	return mux
}

const (
	textMarker = "\n\nText:\n\n"
	tailMarker = "\n\nOutput only the simplified text."
)

// parsePrompt recovers the source text and level from a simplification
// prompt. The level is matched by its display name on the first line.
func parsePrompt(user string) (string, simplify.Level, bool) {
	i := strings.Index(user, textMarker)
	if i < 0 {
		return "", simplify.Level{}, false
	}
	text := strings.TrimSuffix(user[i+len(textMarker):], tailMarker)
	first, _, _ := strings.Cut(user, "\n")
	level := simplify.Medium
	for _, l := range simplify.Levels() {
		if strings.Contains(first, l.Name) {
			level = l
			break
		}
	}
	return text, level, true
}
