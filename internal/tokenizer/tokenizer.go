// Package tokenizer estimates how many model tokens a produced document occupies.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

var openAIModelPrefixes = []string{
	"gpt-",
	"o1",
	"o3",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

// NewCounter returns a tiktoken Counter for the requested model along with the
// name of the model or encoding actually used. Models tiktoken does not know
// fall back to the cl100k_base encoding.
func NewCounter(model string) (Counter, string, error) {
	resolvedModel := normalizeModel(model)
	if isOpenAIModel(resolvedModel) {
		encoding, err := tiktoken.EncodingForModel(resolvedModel)
		if err == nil && encoding != nil {
			return openAICounter{encoding: encoding, name: resolvedModel}, resolvedModel, nil
		}
	}
	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackErr)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

func normalizeModel(model string) string {
	trimmed := strings.ToLower(strings.TrimSpace(model))
	if trimmed == "" {
		return defaultModel
	}
	return trimmed
}

func isOpenAIModel(model string) bool {
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
