package gemini

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/mzorec/vesna-core/core/llms"
	"github.com/mzorec/vesna-core/internal/utils"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

// PromptWithStream starts a streamed exchange. The returned stream yields
// content deltas and, when search grounding is enabled, citation chunks in
// arrival order.
func (c *Client) PromptWithStream(ctx context.Context, prompt string, opts ...llms.PromptOption) llms.Stream {
	options := llms.PromptOptions{Instructions: c.instructions}
	for _, opt := range opts {
		opt(&options)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: options.Instructions}},
		},
	}
	if c.grounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	contents := toContents(options.Turns, prompt, options.Image)

	return &stream{
		chunks: c.client.Models.GenerateContentStream(ctx, c.model, contents, config),
	}
}

type stream struct {
	chunks iter.Seq2[*genai.GenerateContentResponse, error]
}

func (s *stream) Chunks(ctx context.Context) iter.Seq2[llms.StreamChunk, error] {
	return func(yield func(llms.StreamChunk, error) bool) {
		_, span := tracer.Start(ctx, "stream gemini response")
		defer span.End()

		for resp, err := range s.chunks {
			if err != nil {
				if apiErr, ok := err.(*apierror.APIError); ok {
					err = apiErr.Unwrap()
				}
				err = fmt.Errorf("failed to stream gemini response: %w", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				yield(nil, err)
				return
			}
			if len(resp.Candidates) == 0 {
				continue
			}

			candidate := resp.Candidates[0]

			var finishReason *string
			if candidate.FinishReason != "" {
				finishReason = utils.Ptr(string(candidate.FinishReason))
			}

			if candidate.Content != nil {
				var text strings.Builder
				for _, part := range candidate.Content.Parts {
					if part.Text != "" {
						text.WriteString(part.Text)
					}
				}
				if text.Len() > 0 {
					if !yield(contentChunk{text: text.String(), finishReason: finishReason}, nil) {
						return
					}
				}
			}

			if citations := groundingCitations(candidate); len(citations) > 0 {
				if !yield(citationsChunk{citations: citations, finishReason: finishReason}, nil) {
					return
				}
			}
		}
	}
}

func groundingCitations(candidate *genai.Candidate) []llms.Citation {
	if candidate.GroundingMetadata == nil {
		return nil
	}

	var citations []llms.Citation
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		citations = append(citations, llms.Citation{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return citations
}

type contentChunk struct {
	text         string
	finishReason *string
}

func (c contentChunk) Content() string       { return c.text }
func (c contentChunk) FinishReason() *string { return c.finishReason }

type citationsChunk struct {
	citations    []llms.Citation
	finishReason *string
}

func (c citationsChunk) Citations() []llms.Citation { return c.citations }
func (c citationsChunk) FinishReason() *string      { return c.finishReason }
