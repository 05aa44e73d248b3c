package studio

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestBandForScore(t *testing.T) {
	tests := []struct {
		score int
		want  ScoreBand
	}{
		{-5, ScorePoor},
		{0, ScorePoor},
		{49, ScorePoor},
		{50, ScoreFair},
		{69, ScoreFair},
		{70, ScoreGood},
		{87, ScoreGood},
		{140, ScoreGood},
	}

	for _, tt := range tests {
		if got := BandForScore(tt.score); got != tt.want {
			t.Errorf("BandForScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
	if got := ClampScore(140); got != 100 {
		t.Errorf("ClampScore(140) = %d, want 100", got)
	}
}

func TestOptimizationItemClasses(t *testing.T) {
	tests := []struct {
		item         OptimizationItem
		wantStatus   string
		wantPriority string
	}{
		{OptimizationItem{Status: "PASS", Priority: "High"}, StatusPass, "high"},
		{OptimizationItem{Status: "done", Priority: "medium"}, StatusPass, "medium"},
		{OptimizationItem{Status: "partial", Priority: "urgent"}, StatusWarning, "low"},
		{OptimizationItem{Status: "", Priority: ""}, StatusInfo, "low"},
	}

	for _, tt := range tests {
		if got := tt.item.StatusClass(); got != tt.wantStatus {
			t.Errorf("StatusClass(%q) = %q, want %q", tt.item.Status, got, tt.wantStatus)
		}
		if got := tt.item.PriorityClass(); got != tt.wantPriority {
			t.Errorf("PriorityClass(%q) = %q, want %q", tt.item.Priority, got, tt.wantPriority)
		}
	}
}

func TestWithBodyLeavesOriginalIntact(t *testing.T) {
	pkg := ContentPackage{Content: ContentData{Body: "old", Hashtags: []string{"#a"}}}
	edited := pkg.WithBody("new")
	edited.Content.Hashtags[0] = "#b"

	if pkg.Content.Body != "old" || pkg.Content.Hashtags[0] != "#a" {
		t.Errorf("original package mutated: %+v", pkg.Content)
	}
	if edited.Content.Body != "new" {
		t.Errorf("edited body = %q", edited.Content.Body)
	}
}

func TestHistoryEntryJSONRoundTrip(t *testing.T) {
	entry := HistoryEntry{
		ID:        "abc",
		Timestamp: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
		Brief:     Brief{Channel: ChannelSocial, Topic: "X", Keywords: []string{"k"}, Tone: ToneCasual},
		PackageData: ContentPackage{
			PackageTitle: "X",
			ChannelType:  ChannelSocial,
			Content:      ContentData{Title: "T", KeyTakeaways: []string{}, Hashtags: []string{"#x"}},
			SeoAnalysis: SeoData{
				OverallScore:          80,
				OptimizationChecklist: []OptimizationItem{{Item: "title", Status: "pass", Priority: "high"}},
			},
		},
		Images:    []ImageAsset{{FileURL: "https://img/1.png", Name: "hero.png", FormatType: "png"}},
		ImageMeta: &ImageMeta{ImageDescription: "d"},
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, key := range []string{"id", "timestamp", "brief", "packageData", "images", "imageMeta"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("persisted entry missing key %q", key)
		}
	}

	var back HistoryEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, entry) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", back, entry)
	}
}
