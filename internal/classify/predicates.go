package classify

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/temirov/toai/internal/types"
)

// DefaultArchiveExtensions lists archive suffixes, compound forms included.
var DefaultArchiveExtensions = []string{
	".zip", ".tar", ".gz", ".bz2", ".xz", ".rar", ".7z",
	".tar.gz", ".tar.bz2", ".tar.xz", ".tgz", ".tbz2",
}

// DefaultBinaryExtensions lists executable, object, library, bytecode and package suffixes.
var DefaultBinaryExtensions = []string{
	".exe", ".dll", ".so", ".dylib", ".bin", ".pyc", ".pyo",
	".pyd", ".class", ".jar", ".war", ".ear", ".apk", ".ipa",
	".app", ".dmg", ".iso", ".img", ".o", ".obj", ".lib", ".a",
}

const (
	applicationMediaPrefix = "application/"
	octetStreamMediaType   = "application/octet-stream"
)

var archiveMediaMarkers = []string{"zip", "rar", "7z", "tar", "gzip"}

var archiveMagicMediaTypes = []string{
	"application/zip",
	"application/gzip",
	"application/x-bzip2",
	"application/x-xz",
	"application/x-7z-compressed",
	"application/x-rar-compressed",
	"application/x-tar",
}

// Verdict is what one predicate decided about a candidate.
type Verdict struct {
	Classification types.Classification
	Conclusive     bool
}

// Inconclusive lets the next predicate decide.
var Inconclusive = Verdict{}

func conclude(classification types.Classification) Verdict {
	return Verdict{Classification: classification, Conclusive: true}
}

// Predicate is one independent classification heuristic.
type Predicate interface {
	Name() string
	Evaluate(candidate *Candidate) (Verdict, error)
}

type predicateFunc struct {
	label    string
	evaluate func(candidate *Candidate) (Verdict, error)
}

func (predicate predicateFunc) Name() string { return predicate.label }

func (predicate predicateFunc) Evaluate(candidate *Candidate) (Verdict, error) {
	return predicate.evaluate(candidate)
}

// NewPredicate wraps evaluate into a named Predicate.
func NewPredicate(name string, evaluate func(candidate *Candidate) (Verdict, error)) Predicate {
	return predicateFunc{label: name, evaluate: evaluate}
}

// IgnoredNamePredicate matches candidates whose name is in the ignore set.
func IgnoredNamePredicate(set *IgnoreSet) Predicate {
	return NewPredicate("ignored-name", func(candidate *Candidate) (Verdict, error) {
		if set.MatchesName(candidate.Name) {
			return conclude(types.ClassificationIgnored), nil
		}
		return Inconclusive, nil
	})
}

// GitIgnorePredicate matches candidates excluded by the root .gitignore rules.
func GitIgnorePredicate(set *IgnoreSet) Predicate {
	return NewPredicate("gitignore", func(candidate *Candidate) (Verdict, error) {
		if set.MatchesGitIgnore(candidate.RelativePath, false) {
			return conclude(types.ClassificationIgnored), nil
		}
		return Inconclusive, nil
	})
}

// ExtensionPredicate matches candidates whose lower-cased name ends with one of extensions.
func ExtensionPredicate(extensions []string) Predicate {
	normalized := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		trimmed := strings.ToLower(strings.TrimSpace(extension))
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		normalized = append(normalized, trimmed)
	}
	return NewPredicate("extension", func(candidate *Candidate) (Verdict, error) {
		lowerName := strings.ToLower(candidate.Name)
		for _, extension := range normalized {
			if strings.HasSuffix(lowerName, extension) && len(lowerName) > len(extension) {
				return conclude(types.ClassificationArchiveOrBinary), nil
			}
		}
		return Inconclusive, nil
	})
}

// ExtensionMediaTypePredicate infers a media type from the extension and matches archives and
// generic binary content.
func ExtensionMediaTypePredicate() Predicate {
	return NewPredicate("mime-extension", func(candidate *Candidate) (Verdict, error) {
		extension := filepath.Ext(candidate.Name)
		if extension == "" {
			return Inconclusive, nil
		}
		mediaType := mime.TypeByExtension(strings.ToLower(extension))
		if isArchiveOrBinaryMediaType(mediaType) {
			return conclude(types.ClassificationArchiveOrBinary), nil
		}
		return Inconclusive, nil
	})
}

func isArchiveOrBinaryMediaType(mediaType string) bool {
	if mediaType == "" {
		return false
	}
	if strings.HasPrefix(mediaType, octetStreamMediaType) {
		return true
	}
	if !strings.HasPrefix(mediaType, applicationMediaPrefix) {
		return false
	}
	for _, marker := range archiveMediaMarkers {
		if strings.Contains(mediaType, marker) {
			return true
		}
	}
	return false
}

// NullBytePredicate matches candidates whose leading bytes contain a NUL byte.
func NullBytePredicate() Predicate {
	return NewPredicate("null-byte", func(candidate *Candidate) (Verdict, error) {
		head, headError := candidate.Head()
		if headError != nil {
			return Inconclusive, headError
		}
		if bytes.IndexByte(head, 0) >= 0 {
			return conclude(types.ClassificationArchiveOrBinary), nil
		}
		return Inconclusive, nil
	})
}

// MagicNumberPredicate matches candidates whose leading bytes carry an archive signature.
func MagicNumberPredicate() Predicate {
	return NewPredicate("magic", func(candidate *Candidate) (Verdict, error) {
		head, headError := candidate.Head()
		if headError != nil {
			return Inconclusive, headError
		}
		if len(head) == 0 {
			return Inconclusive, nil
		}
		for detected := mimetype.Detect(head); detected != nil; detected = detected.Parent() {
			for _, archiveMediaType := range archiveMagicMediaTypes {
				if detected.Is(archiveMediaType) {
					return conclude(types.ClassificationArchiveOrBinary), nil
				}
			}
		}
		return Inconclusive, nil
	})
}
