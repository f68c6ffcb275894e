package diet

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// systemInstruction frames the model as a dietary assistant. The disclaimer
// requirement keeps generated plans consistent with the canned ones.
const systemInstruction = "You are a medical AI assistant specializing in dietary recommendations. " +
	"Provide personalized diet plans based on patient conditions. " +
	"Always include a disclaimer to consult healthcare providers. " +
	"Keep responses concise and structured with clear meal suggestions."

// Generator produces a diet plan text for a condition.
type Generator interface {
	GeneratePlan(ctx context.Context, condition string) (string, error)
}

// GeminiGenerator generates plans with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// GeneratePlan asks the model for a daily plan tailored to the condition.
func (g *GeminiGenerator) GeneratePlan(ctx context.Context, condition string) (string, error) {
	prompt := fmt.Sprintf("Create a personalized daily diet plan for a patient with %s. "+
		"Include breakfast, lunch, dinner, and snacks. "+
		"Focus on foods that help manage their condition.", conditionText(condition))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}
	return text, nil
}

// conditionText renders a condition code for the prompt: underscores become
// spaces and each word is title-cased, so diabetes_type1 reads
// "Diabetes Type1".
func conditionText(condition string) string {
	words := strings.Fields(strings.ReplaceAll(condition, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
