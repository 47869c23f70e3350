// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/toai/internal/classify"
	"github.com/temirov/toai/internal/commands"
	"github.com/temirov/toai/internal/config"
	"github.com/temirov/toai/internal/execution"
	"github.com/temirov/toai/internal/services/clipboard"
	"github.com/temirov/toai/internal/tokenizer"
	"github.com/temirov/toai/internal/types"
	"github.com/temirov/toai/internal/utils"
)

const (
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	maxLinesFlagName      = "max-lines"
	fileLinesFlagName     = "file-lines"
	structureFlagName     = "structure"
	ignoreFlagName        = "ignore"
	ignoreFlagShorthand   = "e"
	noGitignoreFlagName   = "no-gitignore"
	configFlagName        = "config"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	journalFlagName       = "journal"
	verboseFlagName       = "verbose"
	versionFlagName       = "version"
	initGlobalFlagName    = "global"
	initForceFlagName     = "force"
	versionTemplate       = "toai version: %s\n"
	rootUse               = "toai"
	rootShortDescription  = "serialize the working directory into a single Markdown document"
	rootLongDescription   = `toai walks the current directory and writes toAI.md: a structure overview followed by
the content of every text file, ready to paste into an AI assistant.
Ignored entries, archives and binary files are skipped. Collection stops once the line budget is exceeded.`
	rootUsageExample = `  # Snapshot the current project
  toai

  # Raise the budget, skip the overview and copy the result
  toai --max-lines 5000 --structure=no --copy

  # Ignore a build directory and report the token count
  toai -e dist --tokens`
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to .toai.yaml in the working directory,
or to ~/.toai/config.yaml with --global. Existing files are kept unless --force is given.`

	outputFlagDescription      = "output document path"
	maxLinesFlagDescription    = "total line budget of the content section (0 disables)"
	fileLinesFlagDescription   = "maximum lines rendered per file (0 disables)"
	structureFlagDescription   = "include the project structure overview"
	ignoreFlagDescription      = "additional entry name to ignore"
	noGitignoreFlagDescription = "do not use .gitignore"
	configFlagDescription      = "configuration file replacing the local .toai.yaml"
	copyFlagDescription        = "copy the document to the clipboard"
	tokensFlagDescription      = "report the token count of the document"
	modelFlagDescription       = "tokenizer model to use for token counting"
	journalFlagDescription     = "append a Markdown status entry to this file"
	verboseFlagDescription     = "enable debug logging"
	versionFlagDescription     = "display application version"
	initGlobalFlagDescription  = "write the global configuration"
	initForceFlagDescription   = "overwrite an existing configuration"

	workingDirectoryErrorFormat  = "unable to determine working directory: %w"
	loadConfigurationErrorFormat = "load configuration: %w"
	writeDocumentErrorFormat     = "write document: %w"
	initCompletedFormat          = "Configuration written to %s\n"
	warningGitIgnoreMessage      = "unable to load .gitignore"
	warningTokenCountMessage     = "failed to count tokens"
	warningClipboardMessage      = "failed to copy document to clipboard"
	warningJournalMessage        = "failed to append journal entry"
	journalEntryTitle            = "toai snapshot"
)

// dependencies are the collaborators a run uses; tests replace them.
type dependencies struct {
	stdout         io.Writer
	logger         *zap.Logger
	newCounter     func(model string) (tokenizer.Counter, string, error)
	copier         clipboard.Copier
	runner         execution.Runner
	executablePath func() (string, error)
}

func defaultDependencies() dependencies {
	return dependencies{
		stdout:         os.Stdout,
		newCounter:     tokenizer.NewCounter,
		copier:         clipboard.NewService(),
		runner:         execution.NewProcessRunner(),
		executablePath: os.Executable,
	}
}

// snapshotOptions stores the values of the root command flags.
type snapshotOptions struct {
	outputPath       string
	maxTotalLines    int
	maxFileLines     int
	includeStructure bool
	ignoreNames      []string
	disableGitignore bool
	configPath       string
	copyToClipboard  bool
	tokensEnabled    bool
	tokenModel       string
	journalPath      string
	verbose          bool
}

// Execute runs the toai application.
func Execute(ctx context.Context) error {
	rootCommand := createRootCommand(defaultDependencies())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var showVersion bool
	var options snapshotOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				return printVersion(command.Context(), deps)
			}
			logger, loggerError := resolveLogger(deps.logger, options.verbose)
			if loggerError != nil {
				return loggerError
			}
			defer func() { _ = logger.Sync() }()
			return runSnapshot(command, options, deps, logger)
		},
	}
	if deps.stdout != nil {
		rootCommand.SetOut(deps.stdout)
	}

	flagSet := rootCommand.Flags()
	registerBooleanFlag(rootCommand.PersistentFlags(), &showVersion, versionFlagName, false, versionFlagDescription)
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flagSet.IntVar(&options.maxTotalLines, maxLinesFlagName, types.DefaultMaxTotalLines, maxLinesFlagDescription)
	flagSet.IntVar(&options.maxFileLines, fileLinesFlagName, types.DefaultMaxFileLines, fileLinesFlagDescription)
	registerBooleanFlag(flagSet, &options.includeStructure, structureFlagName, true, structureFlagDescription)
	flagSet.StringArrayVarP(&options.ignoreNames, ignoreFlagName, ignoreFlagShorthand, nil, ignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, types.DefaultTokenizerModel, modelFlagDescription)
	flagSet.StringVar(&options.journalPath, journalFlagName, "", journalFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, false, verboseFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), initCompletedFormat, writtenPath)
			return printError
		},
	}
	initCommand.Flags().BoolVar(&globalTarget, initGlobalFlagName, false, initGlobalFlagDescription)
	initCommand.Flags().BoolVar(&force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}

func resolveLogger(injected *zap.Logger, verbose bool) (*zap.Logger, error) {
	if injected != nil {
		return injected, nil
	}
	logger, loggerError := utils.NewApplicationLogger(verbose)
	if loggerError != nil {
		return nil, fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	return logger, nil
}

func printVersion(ctx context.Context, deps dependencies) error {
	version := utils.GetApplicationVersion(ctx, runnerCommandOutput(deps.runner))
	_, printError := fmt.Fprintf(outputWriter(deps), versionTemplate, version)
	return printError
}

// runnerCommandOutput adapts an execution.Runner to the version lookup.
func runnerCommandOutput(runner execution.Runner) utils.CommandOutputFunc {
	if runner == nil {
		return nil
	}
	return func(ctx context.Context, directory string, name string, arguments ...string) (string, int, error) {
		result, runError := runner.Run(ctx, directory, name, arguments...)
		return result.Stdout, result.ExitCode, runError
	}
}

func outputWriter(deps dependencies) io.Writer {
	if deps.stdout == nil {
		return os.Stdout
	}
	return deps.stdout
}

// resolveSettings layers command line flags over the loaded configuration.
func resolveSettings(command *cobra.Command, options snapshotOptions, workingDirectory string) (config.Settings, error) {
	loadedConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return config.Settings{}, fmt.Errorf(loadConfigurationErrorFormat, loadError)
	}

	flags := command.Flags()
	if flags.Changed(outputFlagName) {
		loadedConfiguration.Output = options.outputPath
	}
	if flags.Changed(journalFlagName) {
		loadedConfiguration.Journal = options.journalPath
	}
	settings := loadedConfiguration.Resolve(workingDirectory)

	if flags.Changed(maxLinesFlagName) {
		settings.MaxTotalLines = options.maxTotalLines
	}
	if flags.Changed(fileLinesFlagName) {
		settings.MaxFileLines = options.maxFileLines
	}
	if flags.Changed(structureFlagName) {
		settings.IncludeStructure = options.includeStructure
	}
	if options.disableGitignore {
		settings.UseGitignore = false
	}
	if flags.Changed(copyFlagName) {
		settings.Clipboard = options.copyToClipboard
	}
	if flags.Changed(tokensFlagName) {
		settings.TokensEnabled = options.tokensEnabled
	}
	if flags.Changed(modelFlagName) && strings.TrimSpace(options.tokenModel) != "" {
		settings.TokenModel = options.tokenModel
	}
	settings.IgnoreNames = utils.DeduplicateNames(append(settings.IgnoreNames, options.ignoreNames...))
	return settings, nil
}

// runSnapshot assembles the document for the working directory and fans it out to the sinks.
func runSnapshot(command *cobra.Command, options snapshotOptions, deps dependencies, logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	settings, settingsError := resolveSettings(command, options, workingDirectory)
	if settingsError != nil {
		return settingsError
	}

	ignoreSet := classify.NewIgnoreSet(settings.IgnoreNames...)
	if settings.UseGitignore {
		if gitIgnoreError := ignoreSet.LoadGitIgnore(workingDirectory); gitIgnoreError != nil {
			logger.Warn(warningGitIgnoreMessage, zap.Error(gitIgnoreError))
		}
	}
	classifier := classify.NewClassifier(classify.Options{
		IgnoreSet:         ignoreSet,
		ArchiveExtensions: settings.ArchiveExtensions,
		BinaryExtensions:  settings.BinaryExtensions,
		Logger:            logger,
	})

	selfPaths := []string{settings.OutputPath}
	if settings.JournalPath != "" {
		selfPaths = append(selfPaths, settings.JournalPath)
	}
	if deps.executablePath != nil {
		if executable, executableError := deps.executablePath(); executableError == nil {
			selfPaths = append(selfPaths, executable)
		}
	}

	assembler := commands.NewDocumentAssembler(commands.AssemblerOptions{
		IgnoreSet:        ignoreSet,
		Classifier:       classifier,
		Logger:           logger,
		MaxTotalLines:    settings.MaxTotalLines,
		MaxFileLines:     settings.MaxFileLines,
		IncludeStructure: settings.IncludeStructure,
		SelfPaths:        selfPaths,
	})
	result := assembler.Assemble(workingDirectory)

	var tokenCount *tokenizer.DocumentCount
	group, _ := errgroup.WithContext(command.Context())
	group.Go(func() error {
		if writeError := commands.WriteDocument(settings.OutputPath, result.Document); writeError != nil {
			return fmt.Errorf(writeDocumentErrorFormat, writeError)
		}
		return nil
	})
	if settings.TokensEnabled && deps.newCounter != nil {
		group.Go(func() error {
			counter, _, counterError := deps.newCounter(settings.TokenModel)
			if counterError != nil {
				logger.Warn(warningTokenCountMessage, zap.Error(counterError))
				return nil
			}
			counted, countError := tokenizer.CountDocument(counter, result.Document)
			if countError != nil {
				logger.Warn(warningTokenCountMessage, zap.Error(countError))
				return nil
			}
			tokenCount = &counted
			return nil
		})
	}
	var copied bool
	if settings.Clipboard && deps.copier != nil {
		group.Go(func() error {
			if copyError := deps.copier.Copy(result.Document); copyError != nil {
				logger.Warn(warningClipboardMessage, zap.Error(copyError))
				return nil
			}
			copied = true
			return nil
		})
	}
	sinkError := group.Wait()

	if settings.JournalPath != "" {
		entry := journalEntry(result, settings, sinkError)
		if journalError := execution.NewJournal(settings.JournalPath).Append(entry); journalError != nil {
			logger.Warn(warningJournalMessage, zap.Error(journalError))
		}
	}
	if sinkError != nil {
		return sinkError
	}

	summary := snapshotSummary{
		OutputPath:    utils.RelativePathOrSelf(settings.OutputPath, workingDirectory),
		Result:        result,
		MaxTotalLines: settings.MaxTotalLines,
		TokenCount:    tokenCount,
		Copied:        copied,
	}
	_, printError := io.WriteString(command.OutOrStdout(), summary.Render())
	return printError
}

func journalEntry(result types.AssemblyResult, settings config.Settings, sinkError error) execution.Entry {
	entry := execution.Entry{
		Title:     journalEntryTitle,
		Command:   strings.Join(append([]string{types.ApplicationName}, os.Args[1:]...), " "),
		Succeeded: sinkError == nil,
		Details: []string{
			fmt.Sprintf("%s: %d lines, %d files, %d skipped", filepath.Base(settings.OutputPath), result.TotalLines, result.IncludedFiles, result.ExcludedEntries),
		},
	}
	if result.Truncated {
		entry.Details = append(entry.Details, fmt.Sprintf("line budget exceeded at %s", result.StoppedAt))
	}
	if sinkError != nil {
		entry.Errors = sinkError.Error()
	}
	return entry
}
