package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bigFin/glimpse/internal/types"
)

// profileDocument is the write-side shape of the profile file.
type profileDocument struct {
	MaxSize               int64    `toml:"max_size"`
	MaxDepth              int      `toml:"max_depth"`
	DefaultOutputFormat   string   `toml:"default_output_format"`
	DefaultExcludes       []string `toml:"default_excludes"`
	DefaultTokenizer      string   `toml:"default_tokenizer"`
	DefaultTokenizerModel string   `toml:"default_tokenizer_model"`
}

// writeDefaultProfile materializes the built-in defaults at profilePath,
// creating the configuration directory when needed.
func writeDefaultProfile(profilePath string) error {
	document := profileDocument{
		MaxSize:               defaultMaxSize,
		MaxDepth:              defaultMaxDepth,
		DefaultOutputFormat:   string(types.OutputFormatBoth),
		DefaultExcludes:       append([]string{}, defaultExcludeStrings...),
		DefaultTokenizer:      defaultTokenizerName,
		DefaultTokenizerModel: defaultTokenizerModel,
	}

	encoded, marshalError := toml.Marshal(document)
	if marshalError != nil {
		return fmt.Errorf(errorWriteProfileFormat, profilePath, marshalError)
	}

	profileDirectory := filepath.Dir(profilePath)
	if mkdirError := os.MkdirAll(profileDirectory, 0o755); mkdirError != nil {
		return fmt.Errorf(errorCreateProfileDirFormat, profileDirectory, mkdirError)
	}
	if writeError := os.WriteFile(profilePath, encoded, 0o600); writeError != nil {
		return fmt.Errorf(errorWriteProfileFormat, profilePath, writeError)
	}
	return nil
}
