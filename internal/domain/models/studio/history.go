package studio

import "time"

// HistoryEntry is one past generation. ID, Timestamp, Brief and PackageData
// never change after creation; Images and ImageMeta are patched on the head only.
type HistoryEntry struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Brief       Brief          `json:"brief"`
	PackageData ContentPackage `json:"packageData"`
	Images      []ImageAsset   `json:"images"`
	ImageMeta   *ImageMeta     `json:"imageMeta"`
}

// Clone returns a deep copy of the entry
func (e HistoryEntry) Clone() HistoryEntry {
	out := e
	out.Brief = e.Brief.Clone()
	out.PackageData = e.PackageData.Clone()
	out.Images = CloneImages(e.Images)
	out.ImageMeta = CloneImageMeta(e.ImageMeta)
	return out
}

// HistoryPatch carries the phase-2 fields to write onto the head entry.
// A nil Images or ImageMeta leaves that field unchanged.
// When EntryID is set the patch applies only if the head still has that id.
type HistoryPatch struct {
	EntryID   string
	Images    []ImageAsset
	ImageMeta *ImageMeta
}
