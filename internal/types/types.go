// Package types defines every cross-package data structure used by the glimpse CLI.
package types

import (
	"fmt"
	"os"
)

// Plan rendering format identifiers.
const (
	FormatRaw  = "raw"
	FormatJSON = "json"
)

// OutputFormat selects which sections the downstream renderer produces.
type OutputFormat string

const (
	// OutputFormatTree renders only the directory tree.
	OutputFormatTree OutputFormat = "tree"
	// OutputFormatFiles renders only file contents.
	OutputFormatFiles OutputFormat = "files"
	// OutputFormatBoth renders the tree followed by file contents.
	OutputFormatBoth OutputFormat = "both"
)

// ParseOutputFormat converts a raw token into an OutputFormat.
// Tokens outside the fixed vocabulary are rejected.
func ParseOutputFormat(input string) (OutputFormat, error) {
	switch OutputFormat(input) {
	case OutputFormatTree, OutputFormatFiles, OutputFormatBoth:
		return OutputFormat(input), nil
	default:
		return "", fmt.Errorf("invalid output format '%s' (expected tree, files, or both)", input)
	}
}

// TokenizerKind identifies which tokenizer family backs token counting.
type TokenizerKind string

const (
	// TokenizerKindTiktoken counts tokens with an OpenAI tiktoken encoding.
	TokenizerKindTiktoken TokenizerKind = "tiktoken"
	// TokenizerKindHuggingFace counts tokens with a HuggingFace tokenizer.
	TokenizerKindHuggingFace TokenizerKind = "huggingface"
)

// ParseTokenizerKind converts a raw token into a TokenizerKind.
// Tokens outside the fixed vocabulary are rejected.
func ParseTokenizerKind(input string) (TokenizerKind, error) {
	switch TokenizerKind(input) {
	case TokenizerKindTiktoken, TokenizerKindHuggingFace:
		return TokenizerKind(input), nil
	default:
		return "", fmt.Errorf("invalid tokenizer '%s' (expected tiktoken or huggingface)", input)
	}
}

// ExcludeEntryKind discriminates the two exclude entry variants.
type ExcludeEntryKind string

const (
	// ExcludeEntryFile marks an entry naming an existing filesystem path.
	ExcludeEntryFile ExcludeEntryKind = "file"
	// ExcludeEntryPattern marks an entry holding a glob-style pattern.
	ExcludeEntryPattern ExcludeEntryKind = "pattern"
)

// ExcludeEntry is one classified exclusion rule: either a literal filesystem
// path or a glob-style pattern. Entries are produced exclusively by
// ClassifyExclude; downstream code consumes the kind tag and never
// re-inspects the value.
type ExcludeEntry struct {
	Kind  ExcludeEntryKind `json:"kind"`
	Value string           `json:"value"`
}

// ClassifyExclude probes the filesystem once and classifies token.
// A token naming an existing entry becomes a File exclude; anything else
// becomes a Pattern exclude. Existence is checked first, so a directory
// literally named "*.rs" classifies as File. The classification is final;
// a pattern that later matches a created path is never reclassified.
func ClassifyExclude(token string) ExcludeEntry {
	if _, statError := os.Stat(token); statError == nil {
		return ExcludeEntry{Kind: ExcludeEntryFile, Value: token}
	}
	return ExcludeEntry{Kind: ExcludeEntryPattern, Value: token}
}

// IsFile reports whether the entry names a literal filesystem path.
func (entry ExcludeEntry) IsFile() bool {
	return entry.Kind == ExcludeEntryFile
}

// IsPattern reports whether the entry holds a glob-style pattern.
func (entry ExcludeEntry) IsPattern() bool {
	return entry.Kind == ExcludeEntryPattern
}

// Invocation is the typed, partially populated option surface produced by
// command line parsing. Nil pointer fields and nil slices mean the flag was
// not supplied; plain booleans are two-state flags exactly as the command
// line exposes them.
type Invocation struct {
	Paths          []string
	ShowConfigPath bool
	Includes       []string
	Excludes       []ExcludeEntry
	MaxSize        *int64
	MaxDepth       *int
	Output         *OutputFormat
	OutputFile     *string
	Print          bool
	Threads        *int
	ShowHidden     bool
	NoIgnore       bool
	NoTokens       bool
	Tokenizer      *TokenizerKind
	Model          *string
	TokenizerFile  *string
	Interactive    bool
	PDFPath        *string
}

// Settings is the single authoritative settings record produced by resolving
// an Invocation against the configuration profile. Every field backed by a
// profile default is populated; Tokenizer is nil exactly when token counting
// is disabled; Model and TokenizerFile are never both populated when the
// latter was supplied. Empty strings and zero Threads mean the invocation
// left the field unset.
type Settings struct {
	Paths         []string       `json:"paths"`
	Includes      []string       `json:"includes,omitempty"`
	Excludes      []ExcludeEntry `json:"excludes"`
	MaxSize       int64          `json:"maxSize"`
	MaxDepth      int            `json:"maxDepth"`
	Output        OutputFormat   `json:"output"`
	OutputFile    string         `json:"outputFile,omitempty"`
	Print         bool           `json:"print,omitempty"`
	Threads       int            `json:"threads,omitempty"`
	ShowHidden    bool           `json:"showHidden,omitempty"`
	NoIgnore      bool           `json:"noIgnore,omitempty"`
	NoTokens      bool           `json:"noTokens,omitempty"`
	Tokenizer     *TokenizerKind `json:"tokenizer,omitempty"`
	Model         string         `json:"model,omitempty"`
	TokenizerFile string         `json:"tokenizerFile,omitempty"`
	Interactive   bool           `json:"interactive,omitempty"`
	PDFPath       string         `json:"pdfPath,omitempty"`
}

// ScanRequest carries the subset of resolved settings consumed by the
// filesystem scanner. Exclude entries arrive pre-split by kind so the
// scanner never re-derives the classification.
type ScanRequest struct {
	Paths            []string `json:"paths"`
	MaxFileSize      int64    `json:"maxFileSize"`
	MaxDepth         int      `json:"maxDepth"`
	IncludePatterns  []string `json:"includePatterns,omitempty"`
	ExcludeFiles     []string `json:"excludeFiles,omitempty"`
	ExcludePatterns  []string `json:"excludePatterns,omitempty"`
	ShowHidden       bool     `json:"showHidden"`
	RespectGitignore bool     `json:"respectGitignore"`
	Threads          int      `json:"threads,omitempty"`
}

// RenderRequest carries the subset of resolved settings consumed by the
// renderer.
type RenderRequest struct {
	Format        OutputFormat `json:"format"`
	OutputFile    string       `json:"outputFile,omitempty"`
	PDFPath       string       `json:"pdfPath,omitempty"`
	PrintToStdout bool         `json:"printToStdout"`
	Interactive   bool         `json:"interactive,omitempty"`
}
