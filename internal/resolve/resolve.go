// Package resolve merges the parsed command line with the configuration
// profile into the single authoritative settings record handed to the
// scanning, tokenization, and rendering collaborators.
package resolve

import (
	"github.com/bigFin/glimpse/internal/config"
	"github.com/bigFin/glimpse/internal/types"
)

// huggingFaceTokenizerName is the one profile tokenizer name that selects
// the HuggingFace kind.
const huggingFaceTokenizerName = "huggingface"

// Resolve produces fully populated settings from an invocation and a
// profile in a single pass.
//
// Precedence is per field class: scalar fields take the invocation value
// when present and the profile default otherwise; exclude entries are the
// invocation's entries followed by the profile's defaults, never
// deduplicated; tokenizer fields are derived only while token counting is
// enabled; everything else passes through unchanged. The profile is only
// read, never mutated, and resolution cannot fail on well-typed inputs.
func Resolve(invocation types.Invocation, profile config.Profile) types.Settings {
	settings := types.Settings{
		Paths:       append([]string{}, invocation.Paths...),
		Includes:    copyStrings(invocation.Includes),
		Print:       invocation.Print,
		ShowHidden:  invocation.ShowHidden,
		NoIgnore:    invocation.NoIgnore,
		NoTokens:    invocation.NoTokens,
		Interactive: invocation.Interactive,
	}

	settings.MaxSize = profile.MaxSize
	if invocation.MaxSize != nil {
		settings.MaxSize = *invocation.MaxSize
	}
	settings.MaxDepth = profile.MaxDepth
	if invocation.MaxDepth != nil {
		settings.MaxDepth = *invocation.MaxDepth
	}
	settings.Output = profile.DefaultOutputFormat
	if invocation.Output != nil {
		settings.Output = *invocation.Output
	}

	settings.Excludes = concatenateExcludes(invocation.Excludes, profile.DefaultExcludes)

	if invocation.Threads != nil {
		settings.Threads = *invocation.Threads
	}
	if invocation.OutputFile != nil {
		settings.OutputFile = *invocation.OutputFile
	}
	if invocation.PDFPath != nil {
		settings.PDFPath = *invocation.PDFPath
	}
	if invocation.TokenizerFile != nil {
		settings.TokenizerFile = *invocation.TokenizerFile
	}

	if !invocation.NoTokens {
		resolveTokenizer(&settings, invocation, profile)
	}

	return settings
}

// resolveTokenizer fills the tokenizer kind and model while token counting
// is enabled. The kind comes from the invocation when supplied and is
// otherwise derived from the profile's tokenizer name. The model is filled
// from the profile only for the HuggingFace kind when neither a model nor a
// tokenizer file was supplied; a supplied tokenizer file keeps the model
// absent so the two are never populated together.
func resolveTokenizer(settings *types.Settings, invocation types.Invocation, profile config.Profile) {
	kind := deriveTokenizerKind(profile.DefaultTokenizer)
	if invocation.Tokenizer != nil {
		kind = *invocation.Tokenizer
	}
	settings.Tokenizer = &kind

	if settings.TokenizerFile != "" {
		return
	}
	if invocation.Model != nil {
		settings.Model = *invocation.Model
		return
	}
	if kind == types.TokenizerKindHuggingFace {
		settings.Model = profile.DefaultTokenizerModel
	}
}

// deriveTokenizerKind maps the profile's tokenizer name onto a kind. The
// literal "huggingface" selects the HuggingFace kind; every other name,
// including the empty string and misspellings, silently selects Tiktoken.
func deriveTokenizerKind(profileTokenizerName string) types.TokenizerKind {
	switch profileTokenizerName {
	case huggingFaceTokenizerName:
		return types.TokenizerKindHuggingFace
	default:
		return types.TokenizerKindTiktoken
	}
}

// concatenateExcludes appends the profile defaults after the invocation
// entries. Order is preserved and nothing is deduplicated; the result is
// never nil.
func concatenateExcludes(invocationExcludes, profileExcludes []types.ExcludeEntry) []types.ExcludeEntry {
	combined := make([]types.ExcludeEntry, 0, len(invocationExcludes)+len(profileExcludes))
	combined = append(combined, invocationExcludes...)
	combined = append(combined, profileExcludes...)
	return combined
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string{}, values...)
}
