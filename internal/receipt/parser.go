package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const itemsPrompt = "You are a receipt parser.\n\n" +
	"Task:\n" +
	"- Extract ALL purchasable line items from the attached receipt image.\n" +
	"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
	"- Output a JSON array of objects.\n\n" +
	"Each object must have these fields:\n" +
	"- \"name\": string\n" +
	"- \"unitPrice\": number (price of a single unit)\n" +
	"- \"quantity\": number\n\n" +
	"Rules:\n" +
	"- Skip totals, subtotals, tax lines, tips, and payment lines.\n" +
	"- If only a line total is printed, divide it by the quantity to get the unit price.\n" +
	"- If the quantity is missing, use 1.\n\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Output must begin with \"[\" and end with \"]\".\n"

// Parser extracts draft bill items from receipt images via Gemini.
type Parser struct {
	client *genai.Client
	model  string
}

// NewParser creates a parser using the given model name
func NewParser(client *genai.Client, model string) *Parser {
	return &Parser{client: client, model: model}
}

// Parse sends the image to the model and decodes the returned item list
func (p *Parser) Parse(ctx context.Context, imageBytes []byte, mimeType string) ([]DraftItem, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: itemsPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     imageBytes,
					},
				},
			},
		},
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var items []DraftItem
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &items); err != nil {
		return nil, fmt.Errorf("failed to decode model output: %w", err)
	}

	return items, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
