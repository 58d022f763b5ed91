// Package config loads and persists the glimpse configuration profile.
//
// The profile is a fully populated record of default settings stored as TOML
// under the platform configuration directory. Loading always succeeds with
// every field present: missing files are initialized from built-in defaults,
// and partial files are overlaid onto them.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/bigFin/glimpse/internal/types"
)

const (
	errorStatProfileFormat      = "inspect configuration profile %s: %w"
	errorProfileIsDirectory     = "configuration profile path %s is a directory"
	errorReadProfileFormat      = "read configuration profile %s: %w"
	errorDecodeProfileFormat    = "decode configuration profile %s: %w"
	errorBadOutputFormatFormat  = "configuration profile %s: %w"
	errorResolveProfilePath     = "resolve configuration profile path: %w"
	errorWriteProfileFormat     = "write configuration profile %s: %w"
	errorCreateProfileDirFormat = "create configuration directory %s: %w"
)

// Profile holds the persisted default settings consumed by the resolver.
// Every field is populated after LoadProfile returns.
type Profile struct {
	MaxSize               int64
	MaxDepth              int
	DefaultOutputFormat   types.OutputFormat
	DefaultExcludes       []types.ExcludeEntry
	DefaultTokenizer      string
	DefaultTokenizerModel string
}

// LoadOptions controls where the configuration profile is discovered.
type LoadOptions struct {
	// ExplicitFilePath overrides the platform configuration location.
	ExplicitFilePath string
}

// rawProfile mirrors the on-disk TOML shape on the read side. Pointer and
// slice fields distinguish keys absent from the file from keys explicitly
// set.
type rawProfile struct {
	MaxSize               *int64   `mapstructure:"max_size"`
	MaxDepth              *int     `mapstructure:"max_depth"`
	DefaultOutputFormat   string   `mapstructure:"default_output_format"`
	DefaultExcludes       []string `mapstructure:"default_excludes"`
	DefaultTokenizer      string   `mapstructure:"default_tokenizer"`
	DefaultTokenizerModel string   `mapstructure:"default_tokenizer_model"`
}

// LoadProfile returns the fully populated configuration profile.
//
// A missing profile file is created from the built-in defaults so the first
// invocation leaves a complete file behind. An existing file is decoded and
// overlaid field by field onto the built-in defaults, so files written by
// older releases stay valid. Exclude strings from the file pass through the
// same File/Pattern probe the command line uses.
func LoadProfile(options LoadOptions) (Profile, error) {
	profilePath, pathError := resolveProfilePath(options.ExplicitFilePath)
	if pathError != nil {
		return Profile{}, fmt.Errorf(errorResolveProfilePath, pathError)
	}

	fileInformation, statError := os.Stat(profilePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			if writeError := writeDefaultProfile(profilePath); writeError != nil {
				return Profile{}, writeError
			}
			return DefaultProfile(), nil
		}
		return Profile{}, fmt.Errorf(errorStatProfileFormat, profilePath, statError)
	}
	if fileInformation.IsDir() {
		return Profile{}, fmt.Errorf(errorProfileIsDirectory, profilePath)
	}

	raw, readError := readRawProfile(profilePath)
	if readError != nil {
		return Profile{}, readError
	}
	return overlayOntoDefaults(raw, profilePath)
}

// readRawProfile decodes the TOML file at profilePath into its raw shape.
func readRawProfile(profilePath string) (rawProfile, error) {
	reader := viper.New()
	reader.SetConfigFile(profilePath)
	reader.SetConfigType(profileFileType)
	if readError := reader.ReadInConfig(); readError != nil {
		return rawProfile{}, fmt.Errorf(errorReadProfileFormat, profilePath, readError)
	}
	var raw rawProfile
	if decodeError := reader.Unmarshal(&raw); decodeError != nil {
		return rawProfile{}, fmt.Errorf(errorDecodeProfileFormat, profilePath, decodeError)
	}
	return raw, nil
}

// overlayOntoDefaults fills every absent raw field from the built-in
// defaults and converts the result into a typed Profile.
func overlayOntoDefaults(raw rawProfile, profilePath string) (Profile, error) {
	profile := DefaultProfile()

	if raw.MaxSize != nil {
		profile.MaxSize = *raw.MaxSize
	}
	if raw.MaxDepth != nil {
		profile.MaxDepth = *raw.MaxDepth
	}
	if raw.DefaultOutputFormat != "" {
		parsedFormat, parseError := types.ParseOutputFormat(raw.DefaultOutputFormat)
		if parseError != nil {
			return Profile{}, fmt.Errorf(errorBadOutputFormatFormat, profilePath, parseError)
		}
		profile.DefaultOutputFormat = parsedFormat
	}
	if raw.DefaultExcludes != nil {
		profile.DefaultExcludes = classifyExcludeStrings(raw.DefaultExcludes)
	}
	if raw.DefaultTokenizer != "" {
		profile.DefaultTokenizer = raw.DefaultTokenizer
	}
	if raw.DefaultTokenizerModel != "" {
		profile.DefaultTokenizerModel = raw.DefaultTokenizerModel
	}

	return profile, nil
}

// classifyExcludeStrings runs each configured exclude string through the
// File/Pattern probe. This is the profile's half of the single construction
// path for exclude entries.
func classifyExcludeStrings(rawExcludes []string) []types.ExcludeEntry {
	entries := make([]types.ExcludeEntry, 0, len(rawExcludes))
	for _, rawExclude := range rawExcludes {
		entries = append(entries, types.ClassifyExclude(rawExclude))
	}
	return entries
}
