package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/bigFin/glimpse/internal/output"
	"github.com/bigFin/glimpse/internal/types"
)

// newFlagHarness builds a bare command carrying the full root flag surface.
func newFlagHarness() (*cobra.Command, *rootCommandFlags) {
	flagValues := &rootCommandFlags{}
	command := &cobra.Command{Use: rootUse}
	registerRootFlags(command, flagValues)
	return command, flagValues
}

// parseInvocation parses arguments through the root flag surface and converts
// the result into the typed option surface.
func parseInvocation(t *testing.T, arguments ...string) (types.Invocation, error) {
	t.Helper()
	command, flagValues := newFlagHarness()
	if parseError := command.ParseFlags(arguments); parseError != nil {
		t.Fatalf("parse flags: %v", parseError)
	}
	return buildInvocation(command, flagValues, command.Flags().Args())
}

// recordingClipboard captures copied text instead of touching the system
// clipboard.
type recordingClipboard struct {
	copied []string
}

func (service *recordingClipboard) Copy(text string) error {
	service.copied = append(service.copied, text)
	return nil
}

func TestBuildInvocationDefaults(t *testing.T) {
	invocation, invocationError := parseInvocation(t)
	if invocationError != nil {
		t.Fatalf("expected successful invocation, got %v", invocationError)
	}

	if !reflect.DeepEqual(invocation.Paths, []string{"."}) {
		t.Fatalf("expected default path, got %v", invocation.Paths)
	}
	if invocation.Includes != nil || invocation.Excludes != nil {
		t.Fatalf("expected absent include and exclude lists, got %+v", invocation)
	}
	if invocation.MaxSize != nil || invocation.MaxDepth != nil || invocation.Output != nil {
		t.Fatalf("expected absent scalar overrides, got %+v", invocation)
	}
	if invocation.OutputFile != nil || invocation.Threads != nil || invocation.PDFPath != nil {
		t.Fatalf("expected absent optional scalars, got %+v", invocation)
	}
	if invocation.Tokenizer != nil || invocation.Model != nil || invocation.TokenizerFile != nil {
		t.Fatalf("expected absent tokenizer options, got %+v", invocation)
	}
	if invocation.ShowConfigPath || invocation.Print || invocation.ShowHidden ||
		invocation.NoIgnore || invocation.NoTokens || invocation.Interactive {
		t.Fatalf("expected boolean flags off, got %+v", invocation)
	}
}

func TestBuildInvocationTracksSuppliedZeroValues(t *testing.T) {
	invocation, invocationError := parseInvocation(t, "--max-size", "0", "--max-depth", "0", "--threads", "0")
	if invocationError != nil {
		t.Fatalf("expected successful invocation, got %v", invocationError)
	}

	if invocation.MaxSize == nil || *invocation.MaxSize != 0 {
		t.Fatalf("expected supplied zero max size, got %v", invocation.MaxSize)
	}
	if invocation.MaxDepth == nil || *invocation.MaxDepth != 0 {
		t.Fatalf("expected supplied zero max depth, got %v", invocation.MaxDepth)
	}
	if invocation.Threads == nil || *invocation.Threads != 0 {
		t.Fatalf("expected supplied zero threads, got %v", invocation.Threads)
	}
}

func TestBuildInvocationFullSurface(t *testing.T) {
	targetDirectory := t.TempDir()

	invocation, invocationError := parseInvocation(t,
		targetDirectory,
		"--include", "*.go,*.rs",
		"--exclude", "*.lock",
		"--max-size", "2048",
		"--max-depth", "3",
		"--output", "files",
		"--file", "out.txt",
		"--print",
		"--threads", "4",
		"--hidden",
		"--no-ignore",
		"--no-tokens",
		"--tokenizer", "huggingface",
		"--model", "bert-base-uncased",
		"--tokenizer-file", "tokenizer.json",
		"--interactive",
		"--pdf", "report.pdf",
	)
	if invocationError != nil {
		t.Fatalf("expected successful invocation, got %v", invocationError)
	}

	if !reflect.DeepEqual(invocation.Paths, []string{targetDirectory}) {
		t.Fatalf("expected positional path, got %v", invocation.Paths)
	}
	if !reflect.DeepEqual(invocation.Includes, []string{"*.go", "*.rs"}) {
		t.Fatalf("expected comma-split includes, got %v", invocation.Includes)
	}
	expectedExcludes := []types.ExcludeEntry{{Kind: types.ExcludeEntryPattern, Value: "*.lock"}}
	if !reflect.DeepEqual(invocation.Excludes, expectedExcludes) {
		t.Fatalf("expected excludes %v, got %v", expectedExcludes, invocation.Excludes)
	}
	if invocation.MaxSize == nil || *invocation.MaxSize != 2048 {
		t.Fatalf("expected max size 2048, got %v", invocation.MaxSize)
	}
	if invocation.MaxDepth == nil || *invocation.MaxDepth != 3 {
		t.Fatalf("expected max depth 3, got %v", invocation.MaxDepth)
	}
	if invocation.Output == nil || *invocation.Output != types.OutputFormatFiles {
		t.Fatalf("expected files output format, got %v", invocation.Output)
	}
	if invocation.OutputFile == nil || *invocation.OutputFile != "out.txt" {
		t.Fatalf("expected output file out.txt, got %v", invocation.OutputFile)
	}
	if !invocation.Print {
		t.Fatalf("expected print enabled")
	}
	if invocation.Threads == nil || *invocation.Threads != 4 {
		t.Fatalf("expected threads 4, got %v", invocation.Threads)
	}
	if !invocation.ShowHidden || !invocation.NoIgnore || !invocation.NoTokens || !invocation.Interactive {
		t.Fatalf("expected boolean flags on, got %+v", invocation)
	}
	if invocation.Tokenizer == nil || *invocation.Tokenizer != types.TokenizerKindHuggingFace {
		t.Fatalf("expected huggingface tokenizer, got %v", invocation.Tokenizer)
	}
	if invocation.Model == nil || *invocation.Model != "bert-base-uncased" {
		t.Fatalf("expected model bert-base-uncased, got %v", invocation.Model)
	}
	if invocation.TokenizerFile == nil || *invocation.TokenizerFile != "tokenizer.json" {
		t.Fatalf("expected tokenizer file tokenizer.json, got %v", invocation.TokenizerFile)
	}
	if invocation.PDFPath == nil || *invocation.PDFPath != "report.pdf" {
		t.Fatalf("expected pdf path report.pdf, got %v", invocation.PDFPath)
	}
}

func TestBuildInvocationShorthandFlags(t *testing.T) {
	invocation, invocationError := parseInvocation(t, "-i", "*.go", "-e", "*.lock", "-m", "512", "-o", "tree", "-p", "-t", "2", "-H")
	if invocationError != nil {
		t.Fatalf("expected successful invocation, got %v", invocationError)
	}

	if !reflect.DeepEqual(invocation.Includes, []string{"*.go"}) {
		t.Fatalf("expected includes from shorthand, got %v", invocation.Includes)
	}
	if len(invocation.Excludes) != 1 || invocation.Excludes[0].Value != "*.lock" {
		t.Fatalf("expected exclude from shorthand, got %v", invocation.Excludes)
	}
	if invocation.MaxSize == nil || *invocation.MaxSize != 512 {
		t.Fatalf("expected max size 512, got %v", invocation.MaxSize)
	}
	if invocation.Output == nil || *invocation.Output != types.OutputFormatTree {
		t.Fatalf("expected tree output format, got %v", invocation.Output)
	}
	if !invocation.Print || !invocation.ShowHidden {
		t.Fatalf("expected print and hidden enabled, got %+v", invocation)
	}
	if invocation.Threads == nil || *invocation.Threads != 2 {
		t.Fatalf("expected threads 2, got %v", invocation.Threads)
	}
}

func TestBuildInvocationMissingPath(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "does-not-exist")

	_, invocationError := parseInvocation(t, missingPath)
	if invocationError == nil {
		t.Fatalf("expected missing path to fail the invocation")
	}
	if !strings.Contains(invocationError.Error(), "does not exist") {
		t.Fatalf("expected missing path error, got %v", invocationError)
	}
	if !strings.Contains(invocationError.Error(), missingPath) {
		t.Fatalf("expected error to name the path, got %v", invocationError)
	}
}

func TestRootFlagParseRejectsInvalidEnums(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "invalid output format", arguments: []string{"--output", "summary"}},
		{name: "invalid tokenizer", arguments: []string{"--tokenizer", "sentencepiece"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command, _ := newFlagHarness()
			if parseError := command.ParseFlags(testCase.arguments); parseError == nil {
				t.Fatalf("expected parse error for %v", testCase.arguments)
			}
		})
	}
}

func TestIsSupportedFormat(t *testing.T) {
	testCases := []struct {
		name     string
		format   string
		expected bool
	}{
		{name: "raw", format: types.FormatRaw, expected: true},
		{name: "json", format: types.FormatJSON, expected: true},
		{name: "yaml", format: "yaml", expected: false},
		{name: "empty", format: "", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if isSupportedFormat(testCase.format) != testCase.expected {
				t.Fatalf("expected isSupportedFormat(%q)=%v", testCase.format, testCase.expected)
			}
		})
	}
}

func TestRunPlanCommandConfigPath(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "glimpse.toml")
	stdoutBuffer := &bytes.Buffer{}

	runError := runPlanCommand(context.Background(), planCommandOptions{
		Invocation:      types.Invocation{Paths: []string{"."}, ShowConfigPath: true},
		PlanFormat:      types.FormatRaw,
		ProfileFilePath: profilePath,
		Stdout:          stdoutBuffer,
		Stderr:          &bytes.Buffer{},
	})
	if runError != nil {
		t.Fatalf("expected successful run, got %v", runError)
	}

	if stdoutBuffer.String() != profilePath+"\n" {
		t.Fatalf("expected the profile path on stdout, got %q", stdoutBuffer.String())
	}
	if _, statError := os.Stat(profilePath); !os.IsNotExist(statError) {
		t.Fatalf("expected config path query to leave no profile behind, got %v", statError)
	}
}

func TestRunPlanCommandCopiesRawPlanToClipboard(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "glimpse.toml")
	clipboardService := &recordingClipboard{}
	stdoutBuffer := &bytes.Buffer{}
	stderrBuffer := &bytes.Buffer{}

	runError := runPlanCommand(context.Background(), planCommandOptions{
		Invocation:      types.Invocation{Paths: []string{"."}, NoTokens: true},
		PlanFormat:      types.FormatRaw,
		ProfileFilePath: profilePath,
		Stdout:          stdoutBuffer,
		Stderr:          stderrBuffer,
		Clipboard:       clipboardService,
	})
	if runError != nil {
		t.Fatalf("expected successful run, got %v", runError)
	}

	if stdoutBuffer.Len() != 0 {
		t.Fatalf("expected empty stdout for the clipboard destination, got %q", stdoutBuffer.String())
	}
	if len(clipboardService.copied) != 1 {
		t.Fatalf("expected one clipboard copy, got %d", len(clipboardService.copied))
	}

	copiedPlan := clipboardService.copied[0]
	expectedFragments := []string{
		"glimpse run plan",
		"profile: " + profilePath,
		"paths:\n  .",
		"pattern: *.lock",
		"max-size: 10485760 (10mb)",
		"max-depth: 20",
		"gitignore: respected",
		"threads: default",
		"tokenizer:\n  disabled",
		"format: both",
		"destination: clipboard",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(copiedPlan, fragment) {
			t.Fatalf("expected plan to contain %q, got:\n%s", fragment, copiedPlan)
		}
	}
	if !strings.Contains(stderrBuffer.String(), "copied to clipboard") {
		t.Fatalf("expected clipboard notice on stderr, got %q", stderrBuffer.String())
	}
}

func TestRunPlanCommandEmitsJSONToStdout(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "glimpse.toml")
	stdoutBuffer := &bytes.Buffer{}

	runError := runPlanCommand(context.Background(), planCommandOptions{
		Invocation:      types.Invocation{Paths: []string{"."}, NoTokens: true, Print: true},
		PlanFormat:      types.FormatJSON,
		ProfileFilePath: profilePath,
		Stdout:          stdoutBuffer,
		Stderr:          &bytes.Buffer{},
	})
	if runError != nil {
		t.Fatalf("expected successful run, got %v", runError)
	}

	var plan output.Plan
	if unmarshalError := json.Unmarshal(stdoutBuffer.Bytes(), &plan); unmarshalError != nil {
		t.Fatalf("expected valid json plan, got %v:\n%s", unmarshalError, stdoutBuffer.String())
	}
	if plan.Version == "" {
		t.Fatalf("expected a version in the plan")
	}
	if plan.ProfilePath != profilePath {
		t.Fatalf("expected profile path %q, got %q", profilePath, plan.ProfilePath)
	}
	if !plan.Settings.NoTokens {
		t.Fatalf("expected no-tokens to survive into the plan")
	}
	if plan.Tokenizer != nil {
		t.Fatalf("expected disabled tokenizer, got %+v", plan.Tokenizer)
	}
	if plan.Settings.MaxDepth != 20 {
		t.Fatalf("expected default max depth 20, got %d", plan.Settings.MaxDepth)
	}
	if !plan.Scan.RespectGitignore {
		t.Fatalf("expected gitignore respected in the scan projection")
	}
	if plan.Destination != output.DestinationStdout {
		t.Fatalf("expected stdout destination, got %q", plan.Destination)
	}
}

func TestRunPlanCommandWritesFileDestination(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "glimpse.toml")
	planPath := filepath.Join(t.TempDir(), "plan.txt")
	outputFileValue := planPath
	stderrBuffer := &bytes.Buffer{}

	runError := runPlanCommand(context.Background(), planCommandOptions{
		Invocation:      types.Invocation{Paths: []string{"."}, NoTokens: true, OutputFile: &outputFileValue},
		PlanFormat:      types.FormatRaw,
		ProfileFilePath: profilePath,
		Stdout:          &bytes.Buffer{},
		Stderr:          stderrBuffer,
	})
	if runError != nil {
		t.Fatalf("expected successful run, got %v", runError)
	}

	planContent, readError := os.ReadFile(planPath)
	if readError != nil {
		t.Fatalf("expected plan file to exist, got %v", readError)
	}
	if !strings.Contains(string(planContent), "glimpse run plan") {
		t.Fatalf("expected raw plan in the file, got:\n%s", planContent)
	}
	if !strings.Contains(string(planContent), "destination: file "+planPath) {
		t.Fatalf("expected file destination in the plan, got:\n%s", planContent)
	}
	if !strings.Contains(stderrBuffer.String(), "plan written to "+planPath) {
		t.Fatalf("expected file notice on stderr, got %q", stderrBuffer.String())
	}
}

func TestRunPlanCommandRequiresClipboardService(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "glimpse.toml")

	runError := runPlanCommand(context.Background(), planCommandOptions{
		Invocation:      types.Invocation{Paths: []string{"."}, NoTokens: true},
		PlanFormat:      types.FormatRaw,
		ProfileFilePath: profilePath,
		Stdout:          &bytes.Buffer{},
		Stderr:          &bytes.Buffer{},
	})
	if runError == nil {
		t.Fatalf("expected missing clipboard service to fail the run")
	}
	if !strings.Contains(runError.Error(), "clipboard service is not available") {
		t.Fatalf("expected clipboard availability error, got %v", runError)
	}
}
