package gemini

import (
	"github.com/mzorec/vesna-core/core/llms"
	"google.golang.org/genai"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// toContents converts the prior conversation plus the new user contribution
// into the wire shape Gemini expects. The prompt always forms the last
// content; an inline image, when present, rides along as an extra part of
// that content.
func toContents(turns []llms.Turn, prompt string, image *llms.Image) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns)+1)
	for _, turn := range turns {
		role := roleUser
		if turn.Speaker == llms.SpeakerAssistant {
			role = roleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	parts := []*genai.Part{{Text: prompt}}
	if image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: image.MIMEType,
				Data:     image.Data,
			},
		})
	}
	contents = append(contents, &genai.Content{Role: roleUser, Parts: parts})

	return contents
}
