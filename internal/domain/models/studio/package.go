package studio

import "strings"

// ContentData is the copy produced for the brief's channel
type ContentData struct {
	Title           string   `json:"title"`
	Body            string   `json:"body"` // markdown
	MetaDescription string   `json:"meta_description"`
	WordCount       int      `json:"word_count"`
	KeyTakeaways    []string `json:"key_takeaways"`
	CTAText         string   `json:"cta_text"`
	Hashtags        []string `json:"hashtags"`
}

// OptimizationItem is one row of the SEO checklist
type OptimizationItem struct {
	Item     string `json:"item"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// SeoData is the SEO analysis of the generated content.
// Scores are stored as received; use ClampScore for display.
type SeoData struct {
	OverallScore                int                `json:"overall_score"`
	MetaTitle                   string             `json:"meta_title"`
	MetaDescription             string             `json:"meta_description"`
	PrimaryKeywords             []string           `json:"primary_keywords"`
	SecondaryKeywords           []string           `json:"secondary_keywords"`
	LongTailKeywords            []string           `json:"long_tail_keywords"`
	HeadingStructure            []string           `json:"heading_structure"`
	KeywordDensity              string             `json:"keyword_density"`
	ReadabilityScore            int                `json:"readability_score"`
	RecommendedWordCount        int                `json:"recommended_word_count"`
	OptimizationChecklist       []OptimizationItem `json:"optimization_checklist"`
	ContentStructureSuggestions []string           `json:"content_structure_suggestions"`
	InternalLinkingSuggestions  []string           `json:"internal_linking_suggestions"`
}

// ContentPackage is the phase-1 result
type ContentPackage struct {
	PackageTitle string      `json:"package_title"`
	ChannelType  string      `json:"channel_type"`
	Content      ContentData `json:"content"`
	SeoAnalysis  SeoData     `json:"seo_analysis"`
	QualityNotes string      `json:"quality_notes"`
}

// Clone returns a deep copy of the package
func (p ContentPackage) Clone() ContentPackage {
	out := p
	out.Content.KeyTakeaways = cloneStrings(p.Content.KeyTakeaways)
	out.Content.Hashtags = cloneStrings(p.Content.Hashtags)
	out.SeoAnalysis.PrimaryKeywords = cloneStrings(p.SeoAnalysis.PrimaryKeywords)
	out.SeoAnalysis.SecondaryKeywords = cloneStrings(p.SeoAnalysis.SecondaryKeywords)
	out.SeoAnalysis.LongTailKeywords = cloneStrings(p.SeoAnalysis.LongTailKeywords)
	out.SeoAnalysis.HeadingStructure = cloneStrings(p.SeoAnalysis.HeadingStructure)
	out.SeoAnalysis.ContentStructureSuggestions = cloneStrings(p.SeoAnalysis.ContentStructureSuggestions)
	out.SeoAnalysis.InternalLinkingSuggestions = cloneStrings(p.SeoAnalysis.InternalLinkingSuggestions)
	out.SeoAnalysis.OptimizationChecklist = append([]OptimizationItem{}, p.SeoAnalysis.OptimizationChecklist...)
	return out
}

// WithBody returns a copy of the package with the content body replaced
func (p ContentPackage) WithBody(body string) ContentPackage {
	out := p.Clone()
	out.Content.Body = body
	return out
}

// ScoreBand classifies a score for display
type ScoreBand string

const (
	ScoreGood ScoreBand = "good"
	ScoreFair ScoreBand = "fair"
	ScorePoor ScoreBand = "poor"
)

// ClampScore bounds a score to [0,100]
func ClampScore(score int) int {
	return min(max(score, 0), 100)
}

// BandForScore returns the display band of a clamped score
func BandForScore(score int) ScoreBand {
	score = ClampScore(score)
	switch {
	case score >= 70:
		return ScoreGood
	case score >= 50:
		return ScoreFair
	default:
		return ScorePoor
	}
}

// Checklist status classes
const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusInfo    = "info"
)

// StatusClass maps the agent's free-text checklist status onto a display class
func (i OptimizationItem) StatusClass() string {
	switch strings.ToLower(strings.TrimSpace(i.Status)) {
	case "pass", "done", "complete":
		return StatusPass
	case "warning", "warn", "partial":
		return StatusWarning
	default:
		return StatusInfo
	}
}

// PriorityClass maps the free-text priority onto high, medium or low
func (i OptimizationItem) PriorityClass() string {
	switch strings.ToLower(strings.TrimSpace(i.Priority)) {
	case "high":
		return "high"
	case "medium":
		return "medium"
	default:
		return "low"
	}
}

func cloneStrings(in []string) []string {
	return append([]string{}, in...)
}
