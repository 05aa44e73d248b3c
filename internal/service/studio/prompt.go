package studio

import (
	"fmt"
	"strings"

	models "campaigner/internal/domain/models/studio"
)

// Placeholders keep the prompt shape stable when optional brief fields are empty
const (
	placeholderAudience = "General audience"
	placeholderKeywords = "None specified"
	placeholderNotes    = "None"
)

// ContentPrompt renders the phase-1 prompt. Every brief field appears.
func ContentPrompt(b models.Brief) string {
	keywords := placeholderKeywords
	if len(b.Keywords) > 0 {
		keywords = strings.Join(b.Keywords, ", ")
	}

	return fmt.Sprintf(`Creative Brief:
Channel: %s
Topic: %s
Target Audience: %s
Keywords: %s
Tone: %s
Additional Notes: %s

Please generate a complete marketing package with optimized content and SEO analysis for this brief.`,
		b.Channel, b.Topic, orDefault(b.Audience, placeholderAudience), keywords, b.Tone, orDefault(b.Notes, placeholderNotes))
}

// GraphicsPrompt renders the phase-2 prompt from the current package and brief
func GraphicsPrompt(pkg models.ContentPackage, b models.Brief) string {
	return fmt.Sprintf(`Create a professional marketing graphic for:
Title: %s
Channel: %s
Theme: %s
Tone: %s
Target Audience: %s

The graphic should be a hero image suitable for a %s post. Use warm, modern design with clean typography.`,
		orDefault(pkg.Content.Title, pkg.PackageTitle), pkg.ChannelType, b.Topic, b.Tone,
		orDefault(b.Audience, placeholderAudience), pkg.ChannelType)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
