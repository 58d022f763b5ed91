package tokenizer

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const helperScriptName = "hf_count.py"

//go:embed helpers/*.py
var embeddedHelperScripts embed.FS

// materializeHelperScript writes the embedded HuggingFace helper to a
// temporary directory and returns its path.
func materializeHelperScript() (string, error) {
	temporaryDirectory, createError := os.MkdirTemp("", "glimpse-token-helper-*")
	if createError != nil {
		return "", fmt.Errorf("create helper directory: %w", createError)
	}

	content, readError := fs.ReadFile(embeddedHelperScripts, filepath.Join("helpers", helperScriptName))
	if readError != nil {
		return "", fmt.Errorf("read embedded helper %s: %w", helperScriptName, readError)
	}

	scriptPath := filepath.Join(temporaryDirectory, helperScriptName)
	if writeError := os.WriteFile(scriptPath, content, 0o700); writeError != nil {
		return "", fmt.Errorf("write helper %s: %w", helperScriptName, writeError)
	}
	return scriptPath, nil
}
