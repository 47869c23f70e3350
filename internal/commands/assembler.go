package commands

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/toai/internal/classify"
	"github.com/temirov/toai/internal/content"
	"github.com/temirov/toai/internal/output"
	"github.com/temirov/toai/internal/types"
)

const (
	warningFileUnreadableMessage = "unable to read file"
	infoBudgetExceededMessage    = "line budget exceeded"
)

// AssemblerOptions configures a DocumentAssembler.
type AssemblerOptions struct {
	IgnoreSet  *classify.IgnoreSet
	Classifier *classify.Classifier
	Logger     *zap.Logger
	// MaxTotalLines is the cumulative budget of the content section; non-positive disables it.
	MaxTotalLines int
	// MaxFileLines caps each file; non-positive disables it.
	MaxFileLines     int
	IncludeStructure bool
	// SelfPaths are absolute paths never collected, such as the output document itself.
	SelfPaths []string
}

// DocumentAssembler walks a directory and renders the snapshot document.
type DocumentAssembler struct {
	options   AssemblerOptions
	reader    *content.Reader
	renderer  *output.StructureRenderer
	selfPaths map[string]struct{}
	logger    *zap.Logger
}

// budget tracks the cumulative rendered line count of one assembly.
type budget struct {
	maximum int
	total   int
}

// add accumulates lines and reports whether the maximum is now exceeded.
func (lineBudget *budget) add(lines int) bool {
	lineBudget.total += lines
	return lineBudget.maximum > 0 && lineBudget.total > lineBudget.maximum
}

// NewDocumentAssembler constructs a DocumentAssembler, filling missing collaborators with defaults.
func NewDocumentAssembler(options AssemblerOptions) *DocumentAssembler {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.IgnoreSet == nil {
		options.IgnoreSet = classify.NewIgnoreSet(classify.DefaultIgnoredNames...)
	}
	if options.Classifier == nil {
		options.Classifier = classify.NewClassifier(classify.Options{IgnoreSet: options.IgnoreSet, Logger: options.Logger})
	}
	selfPaths := make(map[string]struct{}, len(options.SelfPaths))
	for _, selfPath := range options.SelfPaths {
		if selfPath == "" {
			continue
		}
		if absolutePath, absoluteError := filepath.Abs(selfPath); absoluteError == nil {
			selfPaths[filepath.Clean(absolutePath)] = struct{}{}
		}
	}
	return &DocumentAssembler{
		options:   options,
		reader:    content.NewReader(),
		renderer:  output.NewStructureRenderer(),
		selfPaths: selfPaths,
		logger:    options.Logger,
	}
}

// Assemble collects root into a document. It never fails: unreadable files become placeholder
// content and the only early exit is the line budget.
func (assembler *DocumentAssembler) Assemble(root string) types.AssemblyResult {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		absoluteRoot = filepath.Clean(root)
	}
	view := walkTree(absoluteRoot, assembler.options.IgnoreSet, assembler.options.Classifier, assembler.selfPaths, assembler.logger)

	var document strings.Builder
	document.WriteString(output.DocumentHeader(absoluteRoot))
	if assembler.options.IncludeStructure {
		document.WriteString(assembler.renderer.Render(view.entries, view.excluded))
	}
	document.WriteString(output.ContentHeading())

	result := types.AssemblyResult{ExcludedEntries: view.excluded}
	lineBudget := budget{maximum: assembler.options.MaxTotalLines}
	for _, file := range view.files {
		rendered := assembler.render(file)
		document.WriteString(output.FileBlock(rendered))
		result.IncludedFiles++
		if lineBudget.add(rendered.Lines) {
			document.WriteString(output.LimitNotice(lineBudget.maximum, lineBudget.total, rendered.Path))
			result.Truncated = true
			result.StoppedAt = rendered.Path
			assembler.logger.Info(infoBudgetExceededMessage,
				zap.String("path", rendered.Path),
				zap.Int("lines", lineBudget.total),
				zap.Int("limit", lineBudget.maximum),
			)
			break
		}
	}

	result.TotalLines = lineBudget.total
	result.Document = document.String()
	return result
}

// render reads one file into a RenderedFile; the line count is newlines plus the final line.
func (assembler *DocumentAssembler) render(file includedFile) types.RenderedFile {
	readResult := assembler.reader.Read(file.absolutePath, assembler.options.MaxFileLines)
	if readResult.ReadError != nil {
		assembler.logger.Warn(warningFileUnreadableMessage, zap.String("path", file.relativePath), zap.Error(readResult.ReadError))
	}
	return types.RenderedFile{
		Path:      file.relativePath,
		Language:  output.LanguageTag(filepath.Base(file.absolutePath)),
		Content:   readResult.Content,
		Truncated: readResult.Truncated,
		Lines:     strings.Count(readResult.Content, "\n") + 1,
	}
}
