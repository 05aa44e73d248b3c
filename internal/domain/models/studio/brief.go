package studio

import "strings"

// Channel values accepted on a brief
const (
	ChannelBlog   = "blog"
	ChannelSocial = "social"
	ChannelEmail  = "email"
)

// Tone values accepted on a brief
const (
	ToneProfessional = "Professional"
	ToneCasual       = "Casual"
	TonePersuasive   = "Persuasive"
	ToneEducational  = "Educational"
	ToneWitty        = "Witty"
)

// ChannelAll is the history filter value that disables channel matching
const ChannelAll = "all"

// Channels returns the accepted channels in display order
func Channels() []string {
	return []string{ChannelBlog, ChannelSocial, ChannelEmail}
}

// Tones returns the accepted tones in display order
func Tones() []string {
	return []string{ToneProfessional, ToneCasual, TonePersuasive, ToneEducational, ToneWitty}
}

// Brief is the user's intent for one generation.
// Keywords is an ordered set: insertion order preserved, no duplicates.
type Brief struct {
	Channel  string   `json:"channel"`
	Topic    string   `json:"topic"`
	Audience string   `json:"audience"`
	Keywords []string `json:"keywords"`
	Tone     string   `json:"tone"`
	Notes    string   `json:"notes"`
}

// NewDraftBrief returns the empty intake draft
func NewDraftBrief() Brief {
	return Brief{
		Channel:  ChannelBlog,
		Keywords: []string{},
		Tone:     ToneProfessional,
	}
}

// Normalized returns a copy with defaults applied and keywords de-duplicated.
// Empty channel becomes blog, empty tone becomes Professional.
func (b Brief) Normalized() Brief {
	out := b
	out.Channel = strings.TrimSpace(b.Channel)
	if out.Channel == "" {
		out.Channel = ChannelBlog
	}
	out.Tone = strings.TrimSpace(b.Tone)
	if out.Tone == "" {
		out.Tone = ToneProfessional
	}
	out.Topic = strings.TrimSpace(b.Topic)
	out.Audience = strings.TrimSpace(b.Audience)
	out.Notes = strings.TrimSpace(b.Notes)
	out.Keywords = AddKeywords(nil, b.Keywords...)
	return out
}

// Clone returns a deep copy so snapshots never share the keyword slice
func (b Brief) Clone() Brief {
	out := b
	out.Keywords = append([]string{}, b.Keywords...)
	return out
}

// AddKeywords appends keywords to an ordered set, trimming each and
// skipping blanks and values already present.
func AddKeywords(existing []string, keywords ...string) []string {
	out := make([]string, 0, len(existing)+len(keywords))
	seen := make(map[string]struct{}, len(existing)+len(keywords))
	for _, kw := range append(append([]string{}, existing...), keywords...) {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// RemoveKeyword drops the keyword at index idx; out-of-range is a no-op
func RemoveKeyword(keywords []string, idx int) []string {
	if idx < 0 || idx >= len(keywords) {
		return append([]string{}, keywords...)
	}
	out := make([]string, 0, len(keywords)-1)
	out = append(out, keywords[:idx]...)
	return append(out, keywords[idx+1:]...)
}
