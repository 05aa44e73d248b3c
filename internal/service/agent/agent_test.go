package agent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campaigner/internal/agents"
	"campaigner/internal/config"
	models "campaigner/internal/domain/models/studio"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(t *testing.T) *agents.Registry {
	t.Helper()
	r, err := agents.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func subAgentID(t *testing.T, r *agents.Registry) string {
	t.Helper()
	for _, a := range r.List() {
		if a.Kind == agents.KindSub {
			return a.ID
		}
	}
	t.Fatal("roster has no sub-agent")
	return ""
}

func TestLoremContentEnvelope(t *testing.T) {
	r := testRegistry(t)
	lorem := NewLoremTransport(r, 0)

	prompt := "Topic: Spring launch\nChannel: social\nKeywords: eco friendly, gifts\n"
	env, err := lorem.Invoke(context.Background(), prompt, r.ContentAgent().ID)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !env.Success {
		t.Fatalf("Success = false, error %q", env.Error)
	}

	var text string
	if err := json.Unmarshal(env.ResultValue(), &text); err != nil {
		t.Fatalf("result is not a JSON string: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("result text is not JSON: %v", err)
	}
	if result["package_title"] != "Spring launch" || result["channel_type"] != "social" {
		t.Errorf("title/channel = %v/%v", result["package_title"], result["channel_type"])
	}
	if _, ok := result["seo_analysis"].(string); !ok {
		t.Errorf("seo_analysis = %T, want string", result["seo_analysis"])
	}

	content := result["content"].(map[string]any)
	tags := content["hashtags"].([]any)
	if len(tags) != 2 || tags[0] != "#ecofriendly" || tags[1] != "#gifts" {
		t.Errorf("hashtags = %v", tags)
	}
}

func TestLoremImageEnvelope(t *testing.T) {
	r := testRegistry(t)
	lorem := NewLoremTransport(r, 0)

	env, err := lorem.Invoke(context.Background(), "Title: Hello\nChannel: blog\n", r.ImageAgent().ID)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	var files []models.ArtifactFile
	if err := json.Unmarshal(env.ArtifactValue(), &files); err != nil {
		t.Fatalf("artifact_files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	for _, f := range files {
		if !strings.HasPrefix(f.FileURL, "https://placehold.co/") || f.FormatType != "png" {
			t.Errorf("artifact = %+v", f)
		}
	}
}

func TestLoremRejectsUnknownAndSubAgents(t *testing.T) {
	r := testRegistry(t)
	lorem := NewLoremTransport(r, 0)

	for _, id := range []string{"no-such-agent", subAgentID(t, r)} {
		if _, err := lorem.Invoke(context.Background(), "Topic: x", id); err == nil {
			t.Errorf("Invoke(%s) error = nil, want error", id)
		}
	}
}

func TestLoremHonoursContext(t *testing.T) {
	r := testRegistry(t)
	lorem := NewLoremTransport(r, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lorem.Invoke(ctx, "Topic: x", r.ContentAgent().ID)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEnvelopeClient(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantSuccess bool
		wantError   string
	}{
		{"success", http.StatusOK, `{"success":true,"response":{"result":"hi"}}`, false, true, ""},
		{"reported failure", http.StatusOK, `{"success":false,"error":"quota exceeded"}`, false, false, "quota exceeded"},
		{"non-2xx with envelope", http.StatusTooManyRequests, `{"success":false,"error":"slow down"}`, false, false, "slow down"},
		{"non-2xx with text", http.StatusInternalServerError, "boom", false, false, "boom"},
		{"non-2xx empty", http.StatusBadGateway, "", false, false, "agent API error (status 502)"},
		{"bad json", http.StatusOK, "{not json", true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got envelopeRequest
			var gotKey string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotKey = r.Header.Get("x-api-key")
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client, err := NewEnvelopeClient(srv.URL, "secret", time.Second, testLogger())
			if err != nil {
				t.Fatalf("NewEnvelopeClient: %v", err)
			}

			env, err := client.Invoke(context.Background(), "the prompt", "agent-1")
			if got.Message != "the prompt" || got.AgentID != "agent-1" || gotKey != "secret" {
				t.Errorf("request = %+v key %q", got, gotKey)
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Invoke: %v", err)
			}
			if env.Success != tt.wantSuccess || env.Error != tt.wantError {
				t.Errorf("envelope = {success %v error %q}, want {%v %q}", env.Success, env.Error, tt.wantSuccess, tt.wantError)
			}
		})
	}
}

func TestNewEnvelopeClientRequiresURL(t *testing.T) {
	if _, err := NewEnvelopeClient("", "", 0, testLogger()); err == nil {
		t.Error("error = nil, want error")
	}
}

type stubTransport struct {
	calls  int
	env    *models.Envelope
	err    error
	sawCtx context.Context
}

func (s *stubTransport) Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error) {
	s.calls++
	s.sawCtx = ctx
	return s.env, s.err
}

func TestTimedAppliesDeadline(t *testing.T) {
	stub := &stubTransport{env: models.TextResult("ok")}
	timed := NewTimed(stub, time.Minute, testLogger())

	env, err := timed.Invoke(context.Background(), "p", "a")
	if err != nil || !env.Success {
		t.Fatalf("Invoke = %v, %v", env, err)
	}
	if _, ok := stub.sawCtx.Deadline(); !ok {
		t.Error("inner context has no deadline")
	}

	// Failure paths only log
	stub.env, stub.err = nil, errors.New("dial tcp: refused")
	if _, err := timed.Invoke(context.Background(), "p", "a"); err == nil {
		t.Error("raised error swallowed")
	}
	stub.env, stub.err = models.Failure("nope"), nil
	if env, _ := timed.Invoke(context.Background(), "p", "a"); env.Success {
		t.Error("reported failure altered")
	}
}

func TestRateLimitedAbortsOnCancel(t *testing.T) {
	stub := &stubTransport{env: models.TextResult("ok")}
	limited := NewRateLimited(stub, 1, 1)

	if _, err := limited.Invoke(context.Background(), "p", "a"); err != nil {
		t.Fatalf("first Invoke: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := limited.Invoke(ctx, "p", "a"); err == nil {
		t.Error("second Invoke error = nil, want rate limit error")
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1", stub.calls)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\nplain\n```", "plain"},
		{"  {\"a\":1}  ", `{"a":1}`},
		{"text with ``` inside", "text with ``` inside"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPromptField(t *testing.T) {
	prompt := "Channel: blog\nTopic:  Launch week \nKeywords: None specified"
	if got := promptField(prompt, "Topic"); got != "Launch week" {
		t.Errorf("Topic = %q", got)
	}
	if got := promptField(prompt, "Tone"); got != "" {
		t.Errorf("Tone = %q, want empty", got)
	}
	if got := splitKeywords(promptField(prompt, "Keywords")); len(got) != 0 {
		t.Errorf("keywords = %v, want none", got)
	}
}

func TestNewTransport(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"lorem", config.Config{AgentProvider: config.ProviderLorem}, false},
		{"lorem rate limited", config.Config{AgentProvider: config.ProviderLorem, AgentRatePerMinute: 10}, false},
		{"anthropic", config.Config{AgentProvider: config.ProviderAnthropic, AnthropicAPIKey: "k"}, false},
		{"anthropic without key", config.Config{AgentProvider: config.ProviderAnthropic}, true},
		{"openai", config.Config{AgentProvider: config.ProviderOpenAI, OpenAIAPIKey: "k"}, false},
		{"envelope without url", config.Config{AgentProvider: config.ProviderEnvelope}, true},
		{"unknown", config.Config{AgentProvider: "smoke-signals"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := NewTransport(&tt.cfg, r, testLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTransport() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && transport == nil {
				t.Error("transport = nil")
			}
		})
	}
}
