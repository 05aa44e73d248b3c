package normalize

import (
	"encoding/json"
	"strings"

	models "campaigner/internal/domain/models/studio"
)

// ToImageMeta projects a decoded payload onto ImageMeta
func ToImageMeta(data any) models.ImageMeta {
	m := asMap(data)
	return models.ImageMeta{
		ImageDescription: str(m, "image_description"),
		DesignNotes:      str(m, "design_notes"),
		SuggestedUsage:   str(m, "suggested_usage"),
	}
}

// ToImageAssets maps the artifact_files slot onto image assets.
// produced is false unless the slot is a non-empty array; descriptors
// without a file_url are dropped, so produced=true may still yield zero assets.
func ToImageAssets(raw json.RawMessage) (assets []models.ImageAsset, produced bool) {
	assets = []models.ImageAsset{}
	if len(raw) == 0 {
		return assets, false
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return assets, false
	}

	for _, item := range items {
		m := asMap(item)
		url := strings.TrimSpace(str(m, "file_url"))
		if url == "" {
			continue
		}
		asset := models.ImageAsset{
			FileURL:    url,
			Name:       str(m, "name"),
			FormatType: str(m, "format_type"),
		}
		if asset.Name == "" {
			asset.Name = models.DefaultImageName
		}
		if asset.FormatType == "" {
			asset.FormatType = models.DefaultImageFormat
		}
		assets = append(assets, asset)
	}
	return assets, true
}
