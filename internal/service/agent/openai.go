package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"campaigner/internal/agents"
	models "campaigner/internal/domain/models/studio"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenAIChatModel  = "gpt-4o-mini"
	defaultOpenAIImageModel = "dall-e-3"
)

// OpenAIConfig configures the OpenAI transport
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
}

// OpenAITransport uses chat completions for the content agent and image
// generation for the image agent
type OpenAITransport struct {
	client     openai.Client
	chatModel  string
	imageModel string
	roster     Roster
	logger     *slog.Logger
}

// NewOpenAITransport creates an OpenAI-backed transport
func NewOpenAITransport(cfg OpenAIConfig, roster Roster, logger *slog.Logger) (*OpenAITransport, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	t := &OpenAITransport{
		client:     openai.NewClient(opts...),
		chatModel:  cfg.ChatModel,
		imageModel: cfg.ImageModel,
		roster:     roster,
		logger:     logger,
	}
	if t.chatModel == "" {
		t.chatModel = defaultOpenAIChatModel
	}
	if t.imageModel == "" {
		t.imageModel = defaultOpenAIImageModel
	}
	return t, nil
}

// Invoke routes by agent kind
func (t *OpenAITransport) Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error) {
	a, err := lookup(t.roster, agentID)
	if err != nil {
		return nil, err
	}
	if a.Kind == agents.KindImage {
		return t.generateImages(ctx, a, prompt)
	}
	return t.complete(ctx, a, prompt)
}

func (t *OpenAITransport) complete(ctx context.Context, a agents.Agent, prompt string) (*models.Envelope, error) {
	msgs := []openai.ChatCompletionMessageParamUnion{}
	if a.SystemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(a.SystemPrompt))
	}
	msgs = append(msgs, openai.UserMessage(prompt))

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(t.chatModel),
		Messages: msgs,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.Failure("openai: empty choices"), nil
	}

	t.logger.Debug("openai agent replied",
		"agent", a.Name,
		"model", t.chatModel,
		"finish_reason", resp.Choices[0].FinishReason,
	)
	return models.TextResult(stripCodeFence(resp.Choices[0].Message.Content)), nil
}

func (t *OpenAITransport) generateImages(ctx context.Context, a agents.Agent, prompt string) (*models.Envelope, error) {
	resp, err := t.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(t.imageModel),
		N:      openai.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("openai image generation failed: %w", err)
	}

	files := make([]models.ArtifactFile, 0, len(resp.Data))
	revised := ""
	for i, img := range resp.Data {
		fileURL := img.URL
		if fileURL == "" && img.B64JSON != "" {
			fileURL = "data:image/png;base64," + img.B64JSON
		}
		files = append(files, models.ArtifactFile{
			FileURL:    fileURL,
			Name:       fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(a.Name, " ", "-")), i+1),
			FormatType: "png",
		})
		if revised == "" {
			revised = img.RevisedPrompt
		}
	}

	meta := models.ImageMeta{
		ImageDescription: orDefault(revised, promptField(prompt, "Title")),
		DesignNotes:      "Generated with " + t.imageModel,
		SuggestedUsage:   fmt.Sprintf("Hero image for the %s post", orDefault(promptField(prompt, "Channel"), "blog")),
	}
	text, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal image meta: %w", err)
	}

	t.logger.Debug("openai images generated", "agent", a.Name, "model", t.imageModel, "images", len(files))
	return models.TextResult(string(text)).WithArtifacts(files), nil
}
