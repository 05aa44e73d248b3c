package normalize

import models "campaigner/internal/domain/models/studio"

// ToContentPackage projects a decoded payload onto ContentPackage.
// Non-mapping payloads yield an all-default package.
func ToContentPackage(data any) models.ContentPackage {
	m := asMap(data)
	return models.ContentPackage{
		PackageTitle: str(m, "package_title"),
		ChannelType:  str(m, "channel_type"),
		Content:      toContent(asMap(m["content"])),
		SeoAnalysis:  toSeo(asMap(m["seo_analysis"])),
		QualityNotes: str(m, "quality_notes"),
	}
}

func toContent(m map[string]any) models.ContentData {
	return models.ContentData{
		Title:           str(m, "title"),
		Body:            str(m, "body"),
		MetaDescription: str(m, "meta_description"),
		WordCount:       count(m, "word_count"),
		KeyTakeaways:    strs(m, "key_takeaways"),
		CTAText:         str(m, "cta_text"),
		Hashtags:        strs(m, "hashtags"),
	}
}

func toSeo(m map[string]any) models.SeoData {
	return models.SeoData{
		OverallScore:                num(m, "overall_score"),
		MetaTitle:                   str(m, "meta_title"),
		MetaDescription:             str(m, "meta_description"),
		PrimaryKeywords:             strs(m, "primary_keywords"),
		SecondaryKeywords:           strs(m, "secondary_keywords"),
		LongTailKeywords:            strs(m, "long_tail_keywords"),
		HeadingStructure:            strs(m, "heading_structure"),
		KeywordDensity:              str(m, "keyword_density"),
		ReadabilityScore:            num(m, "readability_score"),
		RecommendedWordCount:        count(m, "recommended_word_count"),
		OptimizationChecklist:       toChecklist(m),
		ContentStructureSuggestions: strs(m, "content_structure_suggestions"),
		InternalLinkingSuggestions:  strs(m, "internal_linking_suggestions"),
	}
}

func toChecklist(m map[string]any) []models.OptimizationItem {
	items, ok := m["optimization_checklist"].([]any)
	out := make([]models.OptimizationItem, 0, len(items))
	if !ok {
		return out
	}
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.OptimizationItem{
			Item:     str(row, "item"),
			Status:   str(row, "status"),
			Priority: str(row, "priority"),
		})
	}
	return out
}
