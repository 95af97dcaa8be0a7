package services

import (
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when OPENAI_MODEL is not set.
const DefaultModel = "gpt-4o-mini"

var DefaultOpenAIClient = sync.OnceValue(func() *openai.Client {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		panic("OPENAI_API_KEY is not set")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	return openai.NewClientWithConfig(config)
})

// Model returns the chat model to use for extraction requests.
func Model() string {
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		return model
	}
	return DefaultModel
}
