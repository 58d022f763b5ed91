package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"

	"github.com/bigFin/glimpse/internal/types"
)

func TestExcludeListFlagValueSplitsAndClassifies(t *testing.T) {
	tempDir := t.TempDir()
	existingFile := filepath.Join(tempDir, "notes.txt")
	if writeError := os.WriteFile(existingFile, []byte("notes"), 0o600); writeError != nil {
		t.Fatalf("write fixture file: %v", writeError)
	}

	var entries []types.ExcludeEntry
	value := excludeListFlagValue{entries: &entries}

	if setError := value.Set("*.lock," + existingFile); setError != nil {
		t.Fatalf("expected Set to succeed, got %v", setError)
	}

	expected := []types.ExcludeEntry{
		{Kind: types.ExcludeEntryPattern, Value: "*.lock"},
		{Kind: types.ExcludeEntryFile, Value: existingFile},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Fatalf("expected entries %v, got %v", expected, entries)
	}
}

func TestExcludeListFlagValueAccumulatesAcrossOccurrences(t *testing.T) {
	var entries []types.ExcludeEntry
	value := excludeListFlagValue{entries: &entries}

	if setError := value.Set("*.lock"); setError != nil {
		t.Fatalf("expected first Set to succeed, got %v", setError)
	}
	if setError := value.Set("**/target/**"); setError != nil {
		t.Fatalf("expected second Set to succeed, got %v", setError)
	}

	if len(entries) != 2 {
		t.Fatalf("expected two accumulated entries, got %v", entries)
	}
	if entries[0].Value != "*.lock" || entries[1].Value != "**/target/**" {
		t.Fatalf("expected occurrence order preserved, got %v", entries)
	}
}

func TestExcludeListFlagValueSkipsEmptyPieces(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedCount int
	}{
		{name: "interior empty piece", input: "a,,b", expectedCount: 2},
		{name: "trailing comma", input: "a,", expectedCount: 1},
		{name: "only commas", input: ",,", expectedCount: 0},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var entries []types.ExcludeEntry
			value := excludeListFlagValue{entries: &entries}
			if setError := value.Set(testCase.input); setError != nil {
				t.Fatalf("expected Set to succeed, got %v", setError)
			}
			if len(entries) != testCase.expectedCount {
				t.Fatalf("expected %d entries, got %v", testCase.expectedCount, entries)
			}
		})
	}
}

func TestRegisterExcludeFlagAccumulatesOccurrences(t *testing.T) {
	var entries []types.ExcludeEntry
	flagSet := pflag.NewFlagSet("exclude-flag", pflag.ContinueOnError)
	registerExcludeFlag(flagSet, &entries)

	if parseError := flagSet.Parse([]string{"--exclude", "*.lock", "-e", "*.tmp,*.bak"}); parseError != nil {
		t.Fatalf("parse failed: %v", parseError)
	}

	expected := []types.ExcludeEntry{
		{Kind: types.ExcludeEntryPattern, Value: "*.lock"},
		{Kind: types.ExcludeEntryPattern, Value: "*.tmp"},
		{Kind: types.ExcludeEntryPattern, Value: "*.bak"},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Fatalf("expected entries %v, got %v", expected, entries)
	}
}

func TestExcludeListFlagValueString(t *testing.T) {
	var entries []types.ExcludeEntry
	value := excludeListFlagValue{entries: &entries}

	if value.String() != "" {
		t.Fatalf("expected empty String before Set, got %q", value.String())
	}
	if value.Type() != "excludes" {
		t.Fatalf("expected type excludes, got %q", value.Type())
	}

	if setError := value.Set("*.lock,*.tmp"); setError != nil {
		t.Fatalf("expected Set to succeed, got %v", setError)
	}
	if value.String() != "*.lock,*.tmp" {
		t.Fatalf("expected joined values, got %q", value.String())
	}
}
