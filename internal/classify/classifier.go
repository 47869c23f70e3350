// Package classify decides whether traversed files are ignored, archive or binary, or text.
package classify

import (
	"go.uber.org/zap"

	"github.com/temirov/toai/internal/types"
)

const inconclusiveSniffMessage = "classification heuristic inconclusive"

// Options configures a Classifier.
type Options struct {
	IgnoreSet         *IgnoreSet
	ArchiveExtensions []string
	BinaryExtensions  []string
	Logger            *zap.Logger
}

// Classifier evaluates an ordered list of predicates; the first conclusive verdict wins.
type Classifier struct {
	predicates []Predicate
	logger     *zap.Logger
}

// NewClassifier builds the default predicate chain: ignored name, gitignore, extension,
// extension media type, NUL-byte sniff, archive signature sniff.
func NewClassifier(options Options) *Classifier {
	ignoreSet := options.IgnoreSet
	if ignoreSet == nil {
		ignoreSet = NewIgnoreSet(DefaultIgnoredNames...)
	}
	archiveExtensions := options.ArchiveExtensions
	if archiveExtensions == nil {
		archiveExtensions = DefaultArchiveExtensions
	}
	binaryExtensions := options.BinaryExtensions
	if binaryExtensions == nil {
		binaryExtensions = DefaultBinaryExtensions
	}
	extensions := make([]string, 0, len(archiveExtensions)+len(binaryExtensions))
	extensions = append(extensions, archiveExtensions...)
	extensions = append(extensions, binaryExtensions...)
	return NewClassifierWithPredicates(options.Logger,
		IgnoredNamePredicate(ignoreSet),
		GitIgnorePredicate(ignoreSet),
		ExtensionPredicate(extensions),
		ExtensionMediaTypePredicate(),
		NullBytePredicate(),
		MagicNumberPredicate(),
	)
}

// NewClassifierWithPredicates builds a Classifier from an explicit predicate order.
func NewClassifierWithPredicates(logger *zap.Logger, predicates ...Predicate) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{predicates: predicates, logger: logger}
}

// Classify returns the verdict for one file. Predicates failing on I/O are skipped.
func (classifier *Classifier) Classify(candidate *Candidate) types.Classification {
	for _, predicate := range classifier.predicates {
		verdict, evaluationError := predicate.Evaluate(candidate)
		if evaluationError != nil {
			classifier.logger.Debug(inconclusiveSniffMessage,
				zap.String("path", candidate.RelativePath),
				zap.String("predicate", predicate.Name()),
				zap.Error(evaluationError),
			)
			continue
		}
		if verdict.Conclusive {
			return verdict.Classification
		}
	}
	return types.ClassificationText
}

// ClassifyPath is a convenience wrapper building the Candidate from paths.
func (classifier *Classifier) ClassifyPath(relativePath string, absolutePath string) types.Classification {
	entry := types.TreeEntry{RelativePath: relativePath, Kind: types.EntryKindFile}
	return classifier.Classify(NewCandidate(relativePath, absolutePath, entry.Name()))
}
