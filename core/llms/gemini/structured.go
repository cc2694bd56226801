package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

// PageAnalysis is the structured result of analysing a web page's content.
type PageAnalysis struct {
	Title            string      `json:"title"`
	Summary          string      `json:"summary"`
	Sentiment        Sentiment   `json:"sentiment"`
	ReliabilityScore float64     `json:"reliabilityScore"`
	KeyEntities      []KeyEntity `json:"keyEntities"`
}

type Sentiment struct {
	Label string  `json:"label" jsonschema:"enum=Positive,enum=Negative,enum=Neutral"`
	Score float64 `json:"score"`
}

type KeyEntity struct {
	Name string `json:"name"`
	// Type is an entity category such as PERSON, ORGANIZATION or LOCATION.
	Type string `json:"type"`
}

// AnalyzeURL asks the model for a search-grounded, schema-typed analysis of
// the page behind the given URL.
func (c *Client) AnalyzeURL(ctx context.Context, pageURL string) (*PageAnalysis, error) {
	ctx, span := tracer.Start(ctx, "analyze url")
	defer span.End()
	span.SetAttributes(attribute.String("request.url", pageURL))

	prompt := fmt.Sprintf(
		"Analyze the content from the following URL and provide a structured analysis: %s. "+
			"Focus on the main topic, overall sentiment, reliability of the information, and key entities. "+
			"If you cannot access the URL directly, use your search capabilities to find information about the page.",
		pageURL,
	)

	reflector := jsonschema.Reflector{DoNotReference: true}
	schema, err := toGenaiSchema(reflector.Reflect(PageAnalysis{}))
	if err != nil {
		return nil, fmt.Errorf("failed to build response schema: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Role: roleUser, Parts: []*genai.Part{{Text: prompt}}}},
		config,
	)
	if err != nil {
		if apiErr, ok := err.(*apierror.APIError); ok {
			err = apiErr.Unwrap()
		}
		err = fmt.Errorf("failed to generate analysis: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates returned")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	analysis := PageAnalysis{}
	if err := unmarshalJSON([]byte(text.String()), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis payload: %w", err)
	}
	return &analysis, nil
}

// unmarshalJSON decodes data into v, retrying through jsonrepair when the
// payload is syntactically broken (truncated or fence-wrapped model output).
func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		logger.Warn("repairing malformed structured payload", "error", err)
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return err
		}
		return json.Unmarshal([]byte(repaired), v)
	}
	return err
}

// toGenaiSchema converts a reflected jsonschema document into the schema
// dialect the Gemini API accepts.
func toGenaiSchema(schema *jsonschema.Schema) (*genai.Schema, error) {
	if schema == nil {
		return nil, nil
	}

	converted := &genai.Schema{Description: schema.Description}

	switch schema.Type {
	case "object":
		converted.Type = genai.TypeObject
		if schema.Properties != nil {
			converted.Properties = map[string]*genai.Schema{}
			for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
				property, err := toGenaiSchema(pair.Value)
				if err != nil {
					return nil, err
				}
				converted.Properties[pair.Key] = property
			}
		}
		converted.Required = schema.Required
	case "array":
		converted.Type = genai.TypeArray
		items, err := toGenaiSchema(schema.Items)
		if err != nil {
			return nil, err
		}
		converted.Items = items
	case "string":
		converted.Type = genai.TypeString
		for _, value := range schema.Enum {
			enumValue, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported enum value: %v", value)
			}
			converted.Enum = append(converted.Enum, enumValue)
		}
	case "number":
		converted.Type = genai.TypeNumber
	case "integer":
		converted.Type = genai.TypeInteger
	case "boolean":
		converted.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type: %q", schema.Type)
	}

	return converted, nil
}
