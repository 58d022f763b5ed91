// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bigFin/glimpse/internal/config"
	"github.com/bigFin/glimpse/internal/output"
	"github.com/bigFin/glimpse/internal/resolve"
	"github.com/bigFin/glimpse/internal/tokenizer"
	"github.com/bigFin/glimpse/internal/types"
	"github.com/bigFin/glimpse/internal/utils"
)

const (
	configPathFlagName      = "config-path"
	includeFlagName         = "include"
	includeFlagShorthand    = "i"
	excludeFlagName         = "exclude"
	excludeFlagShorthand    = "e"
	maxSizeFlagName         = "max-size"
	maxSizeFlagShorthand    = "m"
	maxDepthFlagName        = "max-depth"
	outputFlagName          = "output"
	outputFlagShorthand     = "o"
	outputFileFlagName      = "file"
	outputFileFlagShorthand = "f"
	printFlagName           = "print"
	printFlagShorthand      = "p"
	threadsFlagName         = "threads"
	threadsFlagShorthand    = "t"
	hiddenFlagName          = "hidden"
	hiddenFlagShorthand     = "H"
	noIgnoreFlagName        = "no-ignore"
	noTokensFlagName        = "no-tokens"
	tokenizerFlagName       = "tokenizer"
	modelFlagName           = "model"
	tokenizerFileFlagName   = "tokenizer-file"
	interactiveFlagName     = "interactive"
	pdfFlagName             = "pdf"
	formatFlagName          = "format"
	versionFlagName         = "version"

	versionTemplate      = "glimpse version: %s\n"
	defaultPath          = "."
	rootUse              = "glimpse [paths...]"
	rootShortDescription = "a blazingly fast tool for peeking at codebases"
	rootLongDescription  = `glimpse resolves its invocation into a single settings record and emits
the resulting run plan: the paths, bounds, exclusion rules, tokenizer
selection, and destinations one run will use. Command line flags win over
configuration defaults field by field; exclude lists accumulate instead.
Use --format to emit the plan as raw text or json.`

	configPathFlagDescription    = "print the config file path and exit"
	includeFlagDescription       = `additional patterns to include (e.g. "*.rs,*.go")`
	excludeFlagDescription       = "additional patterns to exclude"
	maxSizeFlagDescription       = "maximum file size in bytes"
	maxDepthFlagDescription      = "maximum directory depth"
	outputFlagDescription        = "output format (tree, files, or both)"
	outputFileFlagDescription    = "output file path"
	printFlagDescription         = "print to stdout instead"
	threadsFlagDescription       = "number of threads for parallel processing"
	hiddenFlagDescription        = "show hidden files and directories"
	noIgnoreFlagDescription      = "don't respect .gitignore files"
	noTokensFlagDescription      = "skip token counting"
	tokenizerFlagDescription     = "tokenizer to use (tiktoken or huggingface)"
	modelFlagDescription         = "model to use for HuggingFace tokenizer"
	tokenizerFileFlagDescription = "path to local tokenizer file"
	interactiveFlagDescription   = "interactive mode"
	pdfFlagDescription           = "output as PDF"
	formatFlagDescription        = "plan output format (raw or json)"
	versionFlagDescription       = "display application version"

	invalidFormatMessage        = "Invalid format value '%s'"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// isSupportedFormat reports whether the provided plan format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// Execute runs the glimpse application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// rootCommandFlags stores the flag targets for the root command.
type rootCommandFlags struct {
	showConfigPath bool
	includes       []string
	excludes       []types.ExcludeEntry
	maxSize        int64
	maxDepth       int
	outputFormat   outputFormatFlagValue
	outputFile     string
	printToStdout  bool
	threads        int
	showHidden     bool
	noIgnore       bool
	noTokens       bool
	tokenizerKind  tokenizerKindFlagValue
	model          string
	tokenizerFile  string
	interactive    bool
	pdfPath        string
	planFormat     string
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	flagValues := &rootCommandFlags{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			planFormatLower := strings.ToLower(flagValues.planFormat)
			if !isSupportedFormat(planFormatLower) {
				return fmt.Errorf(invalidFormatMessage, flagValues.planFormat)
			}
			invocation, invocationError := buildInvocation(command, flagValues, arguments)
			if invocationError != nil {
				return invocationError
			}
			return runPlanCommand(context.Background(), planCommandOptions{
				Invocation: invocation,
				PlanFormat: planFormatLower,
				Stdout:     command.OutOrStdout(),
				Stderr:     command.ErrOrStderr(),
				Clipboard:  output.NewClipboardService(),
			})
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	registerRootFlags(rootCommand, flagValues)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// registerRootFlags registers the full option surface on the root command.
func registerRootFlags(command *cobra.Command, flagValues *rootCommandFlags) {
	flags := command.Flags()
	flags.BoolVar(&flagValues.showConfigPath, configPathFlagName, false, configPathFlagDescription)
	flags.StringSliceVarP(&flagValues.includes, includeFlagName, includeFlagShorthand, nil, includeFlagDescription)
	registerExcludeFlag(flags, &flagValues.excludes)
	flags.Int64VarP(&flagValues.maxSize, maxSizeFlagName, maxSizeFlagShorthand, 0, maxSizeFlagDescription)
	flags.IntVar(&flagValues.maxDepth, maxDepthFlagName, 0, maxDepthFlagDescription)
	registerOutputFormatFlag(flags, &flagValues.outputFormat)
	flags.StringVarP(&flagValues.outputFile, outputFileFlagName, outputFileFlagShorthand, "", outputFileFlagDescription)
	flags.BoolVarP(&flagValues.printToStdout, printFlagName, printFlagShorthand, false, printFlagDescription)
	flags.IntVarP(&flagValues.threads, threadsFlagName, threadsFlagShorthand, 0, threadsFlagDescription)
	flags.BoolVarP(&flagValues.showHidden, hiddenFlagName, hiddenFlagShorthand, false, hiddenFlagDescription)
	flags.BoolVar(&flagValues.noIgnore, noIgnoreFlagName, false, noIgnoreFlagDescription)
	flags.BoolVar(&flagValues.noTokens, noTokensFlagName, false, noTokensFlagDescription)
	registerTokenizerKindFlag(flags, &flagValues.tokenizerKind)
	flags.StringVar(&flagValues.model, modelFlagName, "", modelFlagDescription)
	flags.StringVar(&flagValues.tokenizerFile, tokenizerFileFlagName, "", tokenizerFileFlagDescription)
	flags.BoolVar(&flagValues.interactive, interactiveFlagName, false, interactiveFlagDescription)
	flags.StringVar(&flagValues.pdfPath, pdfFlagName, "", pdfFlagDescription)
	flags.StringVar(&flagValues.planFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
}

// buildInvocation converts parsed flag state into the typed option surface.
// Optional fields stay nil unless their flag was supplied on the command
// line, so the resolver can distinguish absent values from zero values.
func buildInvocation(command *cobra.Command, flagValues *rootCommandFlags, arguments []string) (types.Invocation, error) {
	paths := arguments
	if len(paths) == 0 {
		paths = []string{defaultPath}
	}
	if validationError := validatePaths(paths); validationError != nil {
		return types.Invocation{}, validationError
	}

	invocation := types.Invocation{
		Paths:          paths,
		ShowConfigPath: flagValues.showConfigPath,
		Print:          flagValues.printToStdout,
		ShowHidden:     flagValues.showHidden,
		NoIgnore:       flagValues.noIgnore,
		NoTokens:       flagValues.noTokens,
		Interactive:    flagValues.interactive,
	}
	if len(flagValues.includes) > 0 {
		invocation.Includes = flagValues.includes
	}
	if len(flagValues.excludes) > 0 {
		invocation.Excludes = flagValues.excludes
	}

	flags := command.Flags()
	if flags.Changed(maxSizeFlagName) {
		maxSize := flagValues.maxSize
		invocation.MaxSize = &maxSize
	}
	if flags.Changed(maxDepthFlagName) {
		maxDepth := flagValues.maxDepth
		invocation.MaxDepth = &maxDepth
	}
	if flagValues.outputFormat.supplied {
		outputFormat := flagValues.outputFormat.selected
		invocation.Output = &outputFormat
	}
	if flags.Changed(outputFileFlagName) {
		outputFile := flagValues.outputFile
		invocation.OutputFile = &outputFile
	}
	if flags.Changed(threadsFlagName) {
		threads := flagValues.threads
		invocation.Threads = &threads
	}
	if flagValues.tokenizerKind.supplied {
		tokenizerKind := flagValues.tokenizerKind.selected
		invocation.Tokenizer = &tokenizerKind
	}
	if flags.Changed(modelFlagName) {
		model := flagValues.model
		invocation.Model = &model
	}
	if flags.Changed(tokenizerFileFlagName) {
		tokenizerFile := flagValues.tokenizerFile
		invocation.TokenizerFile = &tokenizerFile
	}
	if flags.Changed(pdfFlagName) {
		pdfPath := flagValues.pdfPath
		invocation.PDFPath = &pdfPath
	}
	return invocation, nil
}

// validatePaths confirms every candidate path exists. Values are kept exactly
// as supplied; the first missing one fails the invocation.
func validatePaths(paths []string) error {
	for _, candidatePath := range paths {
		_, statError := os.Stat(candidatePath)
		if statError == nil {
			continue
		}
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorPathMissingFormat, candidatePath)
		}
		return fmt.Errorf(errorStatFormat, candidatePath, statError)
	}
	return nil
}

// planCommandOptions carries the dependencies of one plan emission so tests
// can substitute writers, the clipboard service, and the profile location.
type planCommandOptions struct {
	Invocation      types.Invocation
	PlanFormat      string
	ProfileFilePath string
	Stdout          io.Writer
	Stderr          io.Writer
	Clipboard       output.Copier
}

// runPlanCommand resolves the invocation against the configuration profile
// and emits the run plan through the resolved destination.
func runPlanCommand(ctx context.Context, options planCommandOptions) error {
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if options.Invocation.ShowConfigPath {
		_, printError := fmt.Fprintln(stdout, effectiveProfilePath(options))
		return printError
	}

	profile, profileError := config.LoadProfile(config.LoadOptions{ExplicitFilePath: options.ProfileFilePath})
	if profileError != nil {
		return profileError
	}

	settings := resolve.Resolve(options.Invocation, profile)
	scanRequest := resolve.NewScanRequest(settings)
	renderRequest := resolve.NewRenderRequest(settings)

	var tokenizerSelection *output.TokenizerSelection
	if settings.Tokenizer != nil {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		_, encodingLabel, counterError := tokenizer.NewCounter(tokenizer.Config{
			Kind:             *settings.Tokenizer,
			Model:            settings.Model,
			TokenizerFile:    settings.TokenizerFile,
			WorkingDirectory: workingDirectory,
		})
		if counterError != nil {
			return counterError
		}
		tokenizerSelection = &output.TokenizerSelection{
			Kind:     *settings.Tokenizer,
			Encoding: encodingLabel,
		}
	}

	destination, destinationError := output.ResolveDestination(renderRequest, options.Clipboard, stdout, stderr)
	if destinationError != nil {
		return destinationError
	}

	plan := &output.Plan{
		Version:         utils.GetApplicationVersion(),
		ProfilePath:     effectiveProfilePath(options),
		Settings:        settings,
		Scan:            scanRequest,
		Render:          renderRequest,
		Tokenizer:       tokenizerSelection,
		Destination:     destination.Kind,
		DestinationPath: destination.Path,
	}

	var renderer output.PlanRenderer
	switch options.PlanFormat {
	case types.FormatJSON:
		renderer = output.NewJSONPlanRenderer(destination.Writer(), stderr)
	default:
		renderer = output.NewRawPlanRenderer(destination.Writer(), stderr)
	}

	if emitError := output.EmitPlan(ctx, plan, renderer); emitError != nil {
		return emitError
	}
	if flushError := renderer.Flush(); flushError != nil {
		return flushError
	}
	return destination.Finish()
}

// effectiveProfilePath reports the profile location the command operates on.
func effectiveProfilePath(options planCommandOptions) string {
	if options.ProfileFilePath != "" {
		return options.ProfileFilePath
	}
	return config.ProfilePath()
}
