package studio

import (
	"strings"

	"campaigner/internal/config"
	"campaigner/internal/domain"
	models "campaigner/internal/domain/models/studio"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validateBrief checks a normalized brief before any transport call
func validateBrief(b models.Brief) error {
	if strings.TrimSpace(b.Topic) == "" {
		return &domain.ValidationError{Message: MsgTopicRequired}
	}

	err := validation.ValidateStruct(&b,
		validation.Field(&b.Topic, validation.RuneLength(1, config.MaxTopicLength)),
		validation.Field(&b.Channel, validation.Required, validation.In(anySlice(models.Channels())...)),
		validation.Field(&b.Tone, validation.Required, validation.In(anySlice(models.Tones())...)),
		validation.Field(&b.Audience, validation.RuneLength(0, config.MaxAudienceLength)),
		validation.Field(&b.Notes, validation.RuneLength(0, config.MaxNotesLength)),
		validation.Field(&b.Keywords,
			validation.Length(0, config.MaxKeywords),
			validation.Each(validation.RuneLength(1, config.MaxKeywordLength)),
		),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

func validateBody(body string) error {
	err := validation.Validate(body, validation.RuneLength(0, config.MaxBodyLength))
	if err != nil {
		return &domain.ValidationError{Message: "body: " + err.Error()}
	}
	return nil
}

func anySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
