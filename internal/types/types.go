// Package types defines every cross‑package data structure used by the toai CLI.
package types

const (
	DefaultOutputFileName   = "toAI.md"
	DefaultMaxTotalLines    = 1000
	DefaultMaxFileLines     = 500
	DefaultLanguageTag      = "text"
	DefaultTokenizerModel   = "gpt-4o"
	ConfigFileName          = ".toai.yaml"
	IgnoreListFileName      = ".toaiignore"
	GlobalConfigDirectory   = ".toai"
	GlobalConfigFileName    = "config.yaml"
	ForwardSlashSeparator   = "/"
	RootRelativePath        = "."
	ApplicationName         = "toai"
)

// EntryKind distinguishes directories from files in a traversal.
type EntryKind string

const (
	EntryKindDirectory EntryKind = "directory"
	EntryKindFile      EntryKind = "file"
)

// TreeEntry is one visited path of a traversal. RelativePath always uses forward slashes.
type TreeEntry struct {
	RelativePath string
	Kind         EntryKind
	Depth        int
}

// Name returns the last path segment of the entry.
func (entry TreeEntry) Name() string {
	path := entry.RelativePath
	for index := len(path) - 1; index >= 0; index-- {
		if path[index] == '/' {
			return path[index+1:]
		}
	}
	return path
}

// Classification is the Classifier verdict for a file.
type Classification int

const (
	ClassificationText Classification = iota
	ClassificationIgnored
	ClassificationArchiveOrBinary
)

// String returns a lowercase label for the classification.
func (classification Classification) String() string {
	switch classification {
	case ClassificationIgnored:
		return "ignored"
	case ClassificationArchiveOrBinary:
		return "archive-or-binary"
	default:
		return "text"
	}
}

// RenderedFile is the content of one included file before it is appended to the document.
type RenderedFile struct {
	Path      string
	Language  string
	Content   string
	Truncated bool
	Lines     int
}

// AssemblyResult is the outcome of one document assembly.
type AssemblyResult struct {
	Document        string
	TotalLines      int
	Truncated       bool
	StoppedAt       string
	IncludedFiles   int
	ExcludedEntries int
}
