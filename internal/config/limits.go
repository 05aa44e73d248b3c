package config

const (
	// MaxTopicLength is the maximum length for a brief topic.
	// Topics are a campaign theme, not a paragraph.
	MaxTopicLength = 500

	// MaxAudienceLength is the maximum length for the target audience text.
	MaxAudienceLength = 500

	// MaxKeywords is the maximum number of keyword chips on a brief.
	MaxKeywords = 25

	// MaxKeywordLength is the maximum length of a single keyword.
	MaxKeywordLength = 100

	// MaxNotesLength is the maximum length for additional notes.
	// Notes are embedded verbatim into the agent prompt.
	MaxNotesLength = 4000

	// MaxBodyLength is the maximum length for an edited package body.
	MaxBodyLength = 200000

	// MaxRequestBodyBytes bounds JSON request bodies read by handlers.
	MaxRequestBodyBytes = 1 << 20
)
