package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"campaigner/internal/agents"
	models "campaigner/internal/domain/models/studio"
	"campaigner/internal/utils"

	loremgen "github.com/bozaro/golorem"
)

// LoremTransport fabricates agent envelopes offline.
// Used for development without API keys or agent credentials.
type LoremTransport struct {
	roster Roster
	delay  time.Duration

	mu        sync.Mutex
	generator *loremgen.Lorem
}

// NewLoremTransport creates a lorem transport that waits delay before answering
func NewLoremTransport(roster Roster, delay time.Duration) *LoremTransport {
	return &LoremTransport{
		roster:    roster,
		delay:     delay,
		generator: loremgen.New(),
	}
}

// Invoke returns a content package or image envelope depending on the agent kind
func (t *LoremTransport) Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error) {
	a, err := lookup(t.roster, agentID)
	if err != nil {
		return nil, err
	}

	if t.delay > 0 {
		select {
		case <-time.After(t.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch a.Kind {
	case agents.KindImage:
		return t.imageEnvelope(prompt)
	default:
		return t.contentEnvelope(prompt)
	}
}

// contentEnvelope mimics the hosted coordinator: the result is JSON text and
// seo_analysis is itself JSON text inside it.
func (t *LoremTransport) contentEnvelope(prompt string) (*models.Envelope, error) {
	topic := promptField(prompt, "Topic")
	if topic == "" {
		topic = t.title()
	}
	channel := promptField(prompt, "Channel")
	keywords := splitKeywords(promptField(prompt, "Keywords"))

	title := t.title()
	body := t.body(title)

	seo := map[string]any{
		"overall_score":          70 + len(keywords)%20,
		"meta_title":             truncate(title, 60),
		"meta_description":       truncate(t.generator.Sentence(12, 20), 155),
		"primary_keywords":       keywords,
		"secondary_keywords":     t.words(3),
		"long_tail_keywords":     []string{strings.ToLower(topic) + " " + t.generator.Word(4, 8)},
		"heading_structure":      []string{"H1: " + title, "H2: " + t.generator.Sentence(3, 5), "H2: " + t.generator.Sentence(3, 5)},
		"keyword_density":        fmt.Sprintf("%.1f%%", 1.2+float64(len(keywords))*0.3),
		"readability_score":      65,
		"recommended_word_count": 1200,
		"optimization_checklist": []map[string]string{
			{"item": "Primary keyword in title", "status": "pass", "priority": "high"},
			{"item": "Meta description length", "status": "warning", "priority": "medium"},
			{"item": "Internal links", "status": "info", "priority": "low"},
		},
		"content_structure_suggestions": []string{t.generator.Sentence(6, 10)},
		"internal_linking_suggestions":  []string{t.generator.Sentence(4, 8)},
	}
	seoText, err := json.Marshal(seo)
	if err != nil {
		return nil, fmt.Errorf("marshal seo analysis: %w", err)
	}

	result := map[string]any{
		"package_title": topic,
		"channel_type":  channel,
		"content": map[string]any{
			"title":            title,
			"body":             body,
			"meta_description": t.generator.Sentence(12, 20),
			"word_count":       utils.CountWords(body),
			"key_takeaways":    []string{t.generator.Sentence(5, 9), t.generator.Sentence(5, 9), t.generator.Sentence(5, 9)},
			"cta_text":         t.generator.Sentence(3, 6),
			"hashtags":         hashtags(keywords),
		},
		"seo_analysis":  string(seoText),
		"quality_notes": t.generator.Sentence(8, 14),
	}
	text, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal content result: %w", err)
	}
	return models.TextResult(string(text)), nil
}

func (t *LoremTransport) imageEnvelope(prompt string) (*models.Envelope, error) {
	title := promptField(prompt, "Title")
	if title == "" {
		title = t.title()
	}
	channel := promptField(prompt, "Channel")

	meta := models.ImageMeta{
		ImageDescription: t.generator.Sentence(10, 16),
		DesignNotes:      t.generator.Sentence(8, 12),
		SuggestedUsage:   fmt.Sprintf("Hero image for the %s post", orDefault(channel, "blog")),
	}
	text, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal image meta: %w", err)
	}

	label := url.QueryEscape(truncate(title, 40))
	return models.TextResult(string(text)).WithArtifacts([]models.ArtifactFile{
		{FileURL: "https://placehold.co/1200x630/png?text=" + label, Name: "hero-image", FormatType: "png"},
		{FileURL: "https://placehold.co/1080x1080/png?text=" + label, Name: "social-square", FormatType: "png"},
	}), nil
}

func (t *LoremTransport) title() string {
	return strings.TrimSuffix(t.generator.Sentence(4, 7), ".")
}

func (t *LoremTransport) body(title string) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	for i := 0; i < 3; i++ {
		b.WriteString("## " + strings.TrimSuffix(t.generator.Sentence(3, 5), ".") + "\n\n")
		b.WriteString(t.generator.Paragraph(3, 5) + "\n\n")
	}
	b.WriteString("- " + t.generator.Sentence(4, 8) + "\n")
	b.WriteString("- " + t.generator.Sentence(4, 8) + "\n")
	return b.String()
}

func (t *LoremTransport) words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = t.generator.Word(4, 10)
	}
	return out
}

func splitKeywords(s string) []string {
	out := []string{}
	if s == "" || s == "None specified" {
		return out
	}
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func hashtags(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, "#"+strings.ReplaceAll(strings.ToLower(kw), " ", ""))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
