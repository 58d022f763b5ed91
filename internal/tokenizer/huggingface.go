package tokenizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// pythonOverrideEnvironmentVariable points at a specific interpreter.
	pythonOverrideEnvironmentVariable = "GLIMPSE_PYTHON"
	// huggingFaceModuleName is the Python package backing the helper.
	huggingFaceModuleName = "tokenizers"
)

// helperCounter counts tokens by streaming text through the embedded
// HuggingFace helper script.
type helperCounter struct {
	executable string
	scriptPath string
	arguments  []string
	label      string
	timeout    time.Duration
}

func (counter helperCounter) Name() string {
	return counter.label
}

func (counter helperCounter) CountString(input string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), counter.timeout)
	defer cancel()

	commandArguments := append([]string{counter.scriptPath}, counter.arguments...)
	command := exec.CommandContext(ctx, counter.executable, commandArguments...)
	command.Stdin = strings.NewReader(input)

	var standardError bytes.Buffer
	command.Stderr = &standardError

	outputBytes, runError := command.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return 0, fmt.Errorf("tokenizer helper timeout: %w", ctx.Err())
	}
	if runError != nil {
		return 0, fmt.Errorf("tokenizer helper failed: %v, stderr: %s", runError, strings.TrimSpace(standardError.String()))
	}
	return parseHelperTokenOutput(string(outputBytes))
}

// parseHelperTokenOutput extracts the token count from helper output. The
// tokenizers package may print download or progress lines first, so only the
// last non-empty line is expected to hold the count.
func parseHelperTokenOutput(output string) (int, error) {
	lines := strings.Split(output, "\n")
	lastLine := ""
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lastLine = trimmed
		}
	}
	if lastLine == "" {
		return 0, errors.New("tokenizer helper returned empty output")
	}
	tokenCount, parseError := strconv.Atoi(lastLine)
	if parseError != nil {
		return 0, fmt.Errorf("unexpected tokenizer helper output: %q", strings.TrimSpace(output))
	}
	return tokenCount, nil
}

// detectPythonExecutable locates a Python 3.8+ interpreter, honoring the
// override environment variable before probing well-known names.
func detectPythonExecutable() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv(pythonOverrideEnvironmentVariable)); explicit != "" {
		resolved := explicit
		if _, statError := os.Stat(explicit); statError != nil {
			lookedUp, lookError := exec.LookPath(explicit)
			if lookError != nil {
				return "", fmt.Errorf("python executable from %s (%s) not found", pythonOverrideEnvironmentVariable, explicit)
			}
			resolved = lookedUp
		}
		if verifyError := verifyPythonCompatibility(resolved); verifyError != nil {
			return "", fmt.Errorf("python from %s (%s) is not usable: %w", pythonOverrideEnvironmentVariable, resolved, verifyError)
		}
		return resolved, nil
	}

	for _, candidate := range []string{"python3", "python"} {
		candidatePath, lookError := exec.LookPath(candidate)
		if lookError != nil {
			continue
		}
		if verifyError := verifyPythonCompatibility(candidatePath); verifyError != nil {
			continue
		}
		return candidatePath, nil
	}
	return "", errors.New("python 3.8+ not found; install Python or set " + pythonOverrideEnvironmentVariable)
}

func verifyPythonCompatibility(pythonPath string) error {
	command := exec.Command(pythonPath, "-c", "import sys; sys.exit(0 if sys.version_info >= (3, 8) else 1)")
	if runError := command.Run(); runError != nil {
		return fmt.Errorf("python interpreter %s must be version 3.8 or newer", pythonPath)
	}
	return nil
}

func ensurePythonModule(pythonPath, moduleName string) error {
	command := exec.Command(pythonPath, "-c", fmt.Sprintf("import %s", moduleName))
	if runError := command.Run(); runError != nil {
		return fmt.Errorf("python module %s not available; install it in your environment", moduleName)
	}
	return nil
}

// resolvePath joins path onto base unless path is already absolute.
func resolvePath(base string, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
