package classify

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/toai/internal/types"
)

const gitIgnoreFileName = ".gitignore"

// DefaultIgnoredNames lists version-control directories, dependency caches, virtual environments
// and OS metadata files skipped by default.
var DefaultIgnoredNames = []string{
	".git", ".svn", ".hg",
	"__pycache__", "node_modules",
	"venv", ".venv", "env", ".env",
	".DS_Store", "Thumbs.db", "desktop.ini",
	types.ConfigFileName, types.IgnoreListFileName,
}

// IgnoreSet decides which names and paths are excluded from traversal.
type IgnoreSet struct {
	names     map[string]struct{}
	gitIgnore *ignore.GitIgnore
}

// NewIgnoreSet builds an IgnoreSet from the provided entry names.
func NewIgnoreSet(names ...string) *IgnoreSet {
	set := &IgnoreSet{names: make(map[string]struct{}, len(names))}
	set.Add(names...)
	return set
}

// Add extends the set with more entry names. Trailing slashes are ignored.
func (set *IgnoreSet) Add(names ...string) {
	for _, name := range names {
		trimmedName := strings.TrimSuffix(strings.TrimSpace(name), types.ForwardSlashSeparator)
		if trimmedName == "" {
			continue
		}
		set.names[trimmedName] = struct{}{}
	}
}

// LoadGitIgnore compiles the .gitignore file found in rootDirectory, if any.
// A missing file leaves the set unchanged.
func (set *IgnoreSet) LoadGitIgnore(rootDirectory string) error {
	gitIgnorePath := filepath.Join(rootDirectory, gitIgnoreFileName)
	if _, statError := os.Stat(gitIgnorePath); statError != nil {
		if os.IsNotExist(statError) {
			return nil
		}
		return statError
	}
	compiled, compileError := ignore.CompileIgnoreFile(gitIgnorePath)
	if compileError != nil {
		return compileError
	}
	set.gitIgnore = compiled
	return nil
}

// UseGitIgnoreLines compiles gitignore-style lines directly.
func (set *IgnoreSet) UseGitIgnoreLines(lines ...string) {
	set.gitIgnore = ignore.CompileIgnoreLines(lines...)
}

// MatchesName reports whether an entry name is part of the set.
func (set *IgnoreSet) MatchesName(name string) bool {
	if set == nil {
		return false
	}
	_, matched := set.names[name]
	return matched
}

// MatchesGitIgnore reports whether the gitignore rules exclude the forward-slash relative path.
func (set *IgnoreSet) MatchesGitIgnore(relativePath string, isDirectory bool) bool {
	if set == nil || set.gitIgnore == nil {
		return false
	}
	if isDirectory {
		return set.gitIgnore.MatchesPath(relativePath + types.ForwardSlashSeparator)
	}
	return set.gitIgnore.MatchesPath(relativePath)
}

// ShouldPrune reports whether traversal must skip a directory without descending into it.
func (set *IgnoreSet) ShouldPrune(relativePath string) bool {
	entry := types.TreeEntry{RelativePath: relativePath, Kind: types.EntryKindDirectory}
	return set.MatchesName(entry.Name()) || set.MatchesGitIgnore(relativePath, true)
}
