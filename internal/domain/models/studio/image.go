package studio

// Defaults for artifact descriptors that omit optional fields
const (
	DefaultImageName   = "generated-image"
	DefaultImageFormat = "png"
)

// ImageAsset is one generated visual. FileURL is always non-empty.
type ImageAsset struct {
	FileURL    string `json:"file_url"`
	Name       string `json:"name,omitempty"`
	FormatType string `json:"format_type,omitempty"`
}

// ImageMeta describes the generated visuals
type ImageMeta struct {
	ImageDescription string `json:"image_description"`
	DesignNotes      string `json:"design_notes"`
	SuggestedUsage   string `json:"suggested_usage"`
}

// CloneImages copies an image list, returning an empty non-nil slice for nil
func CloneImages(images []ImageAsset) []ImageAsset {
	return append([]ImageAsset{}, images...)
}

// CloneImageMeta copies a nullable ImageMeta
func CloneImageMeta(meta *ImageMeta) *ImageMeta {
	if meta == nil {
		return nil
	}
	out := *meta
	return &out
}
