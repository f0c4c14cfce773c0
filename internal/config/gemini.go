package config

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var GeminiClient *genai.GenerativeModel

// InitGemini creates the Gemini client from GEMINI_API_KEY. A missing key is
// not fatal: the insight endpoints report themselves unavailable instead.
func InitGemini(ctx context.Context) error {
	if GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, insight features will be unavailable")
		return nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(GeminiAPIKey))
	if err != nil {
		return fmt.Errorf("unable to create Gemini client: %w", err)
	}
	GeminiClient = client.GenerativeModel(GeminiModel)
	log.Println("Gemini client initialized, model:", GeminiModel)

	return nil
}
