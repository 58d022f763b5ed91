package config

import "github.com/bigFin/glimpse/internal/types"

const (
	// defaultMaxSize bounds analyzed files at 10 MiB.
	defaultMaxSize = int64(10 * 1024 * 1024)
	// defaultMaxDepth bounds directory descent.
	defaultMaxDepth = 20
	// defaultTokenizerName selects the tiktoken family unless overridden.
	defaultTokenizerName = "tiktoken"
	// defaultTokenizerModel is the HuggingFace model used when the
	// huggingface tokenizer is selected without an explicit model.
	defaultTokenizerModel = "gpt2"
)

// defaultExcludeStrings lists artifact locations no codebase report wants.
var defaultExcludeStrings = []string{
	"**/.git/**",
	"**/target/**",
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/__pycache__/**",
	"*.lock",
	"*.min.js",
}

// DefaultProfile returns the built-in configuration profile. The exclude
// strings go through the same File/Pattern probe as every other exclude
// source; since they are glob shapes they classify as patterns.
func DefaultProfile() Profile {
	return Profile{
		MaxSize:               defaultMaxSize,
		MaxDepth:              defaultMaxDepth,
		DefaultOutputFormat:   types.OutputFormatBoth,
		DefaultExcludes:       classifyExcludeStrings(defaultExcludeStrings),
		DefaultTokenizer:      defaultTokenizerName,
		DefaultTokenizerModel: defaultTokenizerModel,
	}
}
