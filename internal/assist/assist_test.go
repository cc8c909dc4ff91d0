package assist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/easyread/internal/cache"
	"github.com/hyperifyio/easyread/internal/simplify"
)

type fakeClient struct {
	calls   int
	failN   int
	reply   string
	lastReq openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.calls <= f.failN {
		return openai.ChatCompletionResponse{}, errors.New("transient")
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.reply}}}}, nil
}

func noSleep(time.Duration) {}

func TestSimplify_UsesLevelInPrompt(t *testing.T) {
	f := &fakeClient{reply: "  Plants need water.  "}
	s := &Simplifier{Client: f, Model: "gpt-4o-mini", Sleep: noSleep}
	res, err := s.Simplify(context.Background(), "Photosynthesis requires water. It is complex.", simplify.Heavy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "Plants need water." {
		t.Fatalf("text not trimmed: %q", res.Text)
	}
	if res.Engine != "assist" {
		t.Fatalf("engine = %q", res.Engine)
	}
	if res.Stats.OriginalWords != 6 || res.Stats.SimplifiedWords != 3 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	user := f.lastReq.Messages[1].Content
	if !strings.Contains(user, "at most 4 sentences") || !strings.Contains(user, "at most 12 words") {
		t.Fatalf("level constraints missing from prompt: %q", user)
	}
	if !strings.Contains(f.lastReq.Messages[0].Content, simplify.Heavy.Description) {
		t.Fatalf("level description missing from system prompt")
	}
}

func TestSimplify_RetriesOnce(t *testing.T) {
	f := &fakeClient{failN: 1, reply: "ok text."}
	s := &Simplifier{Client: f, Model: "m", Sleep: noSleep}
	if _, err := s.Simplify(context.Background(), "Some text here.", simplify.Light); err != nil {
		t.Fatalf("expected success after retry: %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", f.calls)
	}

	f = &fakeClient{failN: 2, reply: "x"}
	s.Client = f
	if _, err := s.Simplify(context.Background(), "Some text here.", simplify.Light); err == nil {
		t.Fatalf("expected error after two failures")
	}
	if f.calls != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", f.calls)
	}
}

func TestSimplify_EmptyReply(t *testing.T) {
	s := &Simplifier{Client: &fakeClient{reply: "   "}, Model: "m", Sleep: noSleep}
	_, err := s.Simplify(context.Background(), "Some text here.", simplify.Medium)
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("want ErrEmptyReply, got %v", err)
	}
}

func TestSimplify_CacheHitSkipsClient(t *testing.T) {
	store := &cache.Store{Dir: t.TempDir()}
	f := &fakeClient{reply: "Short version."}
	s := &Simplifier{Client: f, Model: "m", Cache: store, Sleep: noSleep}
	ctx := context.Background()
	if _, err := s.Simplify(ctx, "Long original text.", simplify.Medium); err != nil {
		t.Fatalf("first call: %v", err)
	}
	res, err := s.Simplify(ctx, "Long original text.", simplify.Medium)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("expected cached second call, got %d client calls", f.calls)
	}
	if res.Text != "Short version." {
		t.Fatalf("cached text = %q", res.Text)
	}
	// A different level is a different key.
	if _, err := s.Simplify(ctx, "Long original text.", simplify.Heavy); err != nil {
		t.Fatalf("third call: %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("expected miss for new level, got %d calls", f.calls)
	}
}

func TestSimplify_CacheOnlyMiss(t *testing.T) {
	f := &fakeClient{reply: "x"}
	s := &Simplifier{Client: f, Model: "m", Cache: &cache.Store{Dir: t.TempDir()}, CacheOnly: true}
	if _, err := s.Simplify(context.Background(), "Text.", simplify.Light); !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("want ErrEmptyReply on cache-only miss, got %v", err)
	}
	if f.calls != 0 {
		t.Fatalf("client must not be called in cache-only mode")
	}
}

func TestSimplify_PromptTooLarge(t *testing.T) {
	f := &fakeClient{reply: "x"}
	s := &Simplifier{Client: f, Model: "tiny", Sleep: noSleep}
	huge := strings.Repeat("word ", 40000)
	if _, err := s.Simplify(context.Background(), huge, simplify.Light); !errors.Is(err, ErrPromptTooLarge) {
		t.Fatalf("want ErrPromptTooLarge, got %v", err)
	}
}

func TestSimplify_NotConfigured(t *testing.T) {
	var s *Simplifier
	if _, err := s.Simplify(context.Background(), "x", simplify.Light); err == nil {
		t.Fatalf("expected error for nil simplifier")
	}
}
