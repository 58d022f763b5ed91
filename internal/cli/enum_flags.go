package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/bigFin/glimpse/internal/types"
)

const (
	outputFormatFlagTypeName  = "format"
	tokenizerKindFlagTypeName = "tokenizer"
)

// outputFormatFlagValue parses the --output enum. Parsing rejects tokens
// outside the fixed vocabulary, so an invalid value fails the whole
// invocation before any resolution happens.
type outputFormatFlagValue struct {
	selected types.OutputFormat
	supplied bool
}

func (value *outputFormatFlagValue) Set(input string) error {
	parsed, parseError := types.ParseOutputFormat(strings.ToLower(strings.TrimSpace(input)))
	if parseError != nil {
		return parseError
	}
	value.selected = parsed
	value.supplied = true
	return nil
}

func (value *outputFormatFlagValue) String() string {
	if !value.supplied {
		return ""
	}
	return string(value.selected)
}

func (value *outputFormatFlagValue) Type() string {
	return outputFormatFlagTypeName
}

func registerOutputFormatFlag(flagSet *pflag.FlagSet, value *outputFormatFlagValue) {
	if flagSet == nil || value == nil {
		return
	}
	flagSet.VarP(value, outputFlagName, outputFlagShorthand, outputFlagDescription)
}

// tokenizerKindFlagValue parses the --tokenizer enum with the same
// fixed-vocabulary contract as outputFormatFlagValue.
type tokenizerKindFlagValue struct {
	selected types.TokenizerKind
	supplied bool
}

func (value *tokenizerKindFlagValue) Set(input string) error {
	parsed, parseError := types.ParseTokenizerKind(strings.ToLower(strings.TrimSpace(input)))
	if parseError != nil {
		return parseError
	}
	value.selected = parsed
	value.supplied = true
	return nil
}

func (value *tokenizerKindFlagValue) String() string {
	if !value.supplied {
		return ""
	}
	return string(value.selected)
}

func (value *tokenizerKindFlagValue) Type() string {
	return tokenizerKindFlagTypeName
}

func registerTokenizerKindFlag(flagSet *pflag.FlagSet, value *tokenizerKindFlagValue) {
	if flagSet == nil || value == nil {
		return
	}
	flagSet.Var(value, tokenizerFlagName, tokenizerFlagDescription)
}
