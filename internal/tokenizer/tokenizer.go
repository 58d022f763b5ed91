// Package tokenizer constructs token counters from resolved settings.
//
// The factory consumes exactly the tokenizer fields of the resolved
// settings record: the kind selects the backing implementation, and the
// model name or local tokenizer file parameterizes it. Counting itself is
// delegated to the tiktoken library or to a HuggingFace helper process;
// no counting mathematics live in this module.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/bigFin/glimpse/internal/types"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer construction parameters taken from resolved
// settings. Model and TokenizerFile are mutually exclusive; the resolver
// never populates both.
type Config struct {
	Kind             types.TokenizerKind
	Model            string
	TokenizerFile    string
	WorkingDirectory string
	Timeout          time.Duration
}

const (
	defaultEncodingName  = "cl100k_base"
	defaultHelperTimeout = 120 * time.Second
)

var errHuggingFaceSelectorMissing = errors.New("huggingface tokenizer requires a model name or a tokenizer file")

// NewCounter returns a Counter for the requested configuration along with
// the effective encoding or model label it counts with.
func NewCounter(cfg Config) (Counter, string, error) {
	switch cfg.Kind {
	case types.TokenizerKindHuggingFace:
		return newHuggingFaceCounter(cfg)
	default:
		return newTiktokenCounter(cfg)
	}
}

// newTiktokenCounter selects a tiktoken encoding. A recognized model name
// picks its own encoding; everything else, including the absent model,
// falls back to the default encoding.
func newTiktokenCounter(cfg Config) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	if model != "" {
		encoding, encodingError := tiktoken.EncodingForModel(model)
		if encodingError == nil && encoding != nil {
			return tiktokenCounter{encoding: encoding, name: model}, model, nil
		}
	}
	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize tiktoken encoding: %w", fallbackError)
	}
	return tiktokenCounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

// newHuggingFaceCounter builds a helper-process counter driving the Python
// tokenizers package with either a hub model name or a local tokenizer file.
func newHuggingFaceCounter(cfg Config) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	tokenizerFile := strings.TrimSpace(cfg.TokenizerFile)
	if model == "" && tokenizerFile == "" {
		return nil, "", errHuggingFaceSelectorMissing
	}

	pythonExecutable, detectError := detectPythonExecutable()
	if detectError != nil {
		return nil, "", detectError
	}
	if moduleError := ensurePythonModule(pythonExecutable, huggingFaceModuleName); moduleError != nil {
		return nil, "", moduleError
	}

	scriptPath, materializeError := materializeHelperScript()
	if materializeError != nil {
		return nil, "", materializeError
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHelperTimeout
	}

	var helperArguments []string
	label := model
	if tokenizerFile != "" {
		resolvedFile := resolvePath(cfg.WorkingDirectory, tokenizerFile)
		helperArguments = []string{"--tokenizer-file", resolvedFile}
		label = resolvedFile
	} else {
		helperArguments = []string{"--model", model}
	}

	counter := helperCounter{
		executable: pythonExecutable,
		scriptPath: scriptPath,
		arguments:  helperArguments,
		label:      label,
		timeout:    timeout,
	}
	return counter, label, nil
}
