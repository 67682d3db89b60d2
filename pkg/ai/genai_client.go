package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"cropdoc/pkg/errs"
)

// inferenceTimeout bounds the dominant latency source of the pipeline. The
// deadline is derived from the request context, so a client disconnect also
// cancels the in-flight call.
const inferenceTimeout = 30 * time.Second

const diagnosisInstruction = `You are a plant pathologist analyzing a farmer's crop photo.
Respond with ONLY a JSON object, no markdown, no explanations, with exactly these fields:
{"disease": "<name of the detected condition>",
 "confidence": <integer 0-100>,
 "severity": "<LOW|MEDIUM|HIGH>",
 "crop": "<crop name>",
 "status": "<HEALTHY|DISEASED|AT_RISK|UNKNOWN>",
 "treatment": "<concrete treatment steps with dosage where applicable>",
 "prevention": "<concrete prevention steps>"}
If the image is not a crop or plant photo, return:
{"disease": "Not a crop image", "confidence": 0, "severity": "LOW", "crop": "Unknown", "status": "UNKNOWN", "treatment": "N/A", "prevention": "N/A"}`

type genaiClient struct {
	client *genai.Client
	model  string
}

// NewGenAI builds the production vision client against Google's Gemini API.
func NewGenAI(ctx context.Context, apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, errs.Wrap(err, "create genai client")
	}
	return &genaiClient{client: client, model: model}, nil
}

func (c *genaiClient) DiagnoseCrop(ctx context.Context, image []byte, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, inferenceTimeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(diagnosisInstruction),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", errs.Wrap(err, "generate content")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

func (c *genaiClient) ModelVersion() string { return c.model }
