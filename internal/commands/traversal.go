// Package commands contains the core logic collecting a directory into a snapshot document.
package commands

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/toai/internal/classify"
	"github.com/temirov/toai/internal/types"
	"github.com/temirov/toai/internal/utils"
)

const (
	warningAccessPathMessage    = "unable to access path"
	warningIrregularFileMessage = "skipping irregular file"
)

// includedFile is a Text file queued for content rendering.
type includedFile struct {
	relativePath string
	absolutePath string
}

// traversal is the pruned view produced by one depth-first walk.
type traversal struct {
	entries  []types.TreeEntry
	files    []includedFile
	excluded int
}

// walkTree performs the single depth-first traversal of root. Ignored directories are pruned
// before descent, so their contents are never visited.
func walkTree(root string, ignoreSet *classify.IgnoreSet, classifier *classify.Classifier, selfPaths map[string]struct{}, logger *zap.Logger) traversal {
	var view traversal

	walkFunction := func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			logger.Warn(warningAccessPathMessage, zap.String("path", walkedPath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() && walkedPath != root {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, root)
		if relativePath == types.RootRelativePath {
			return nil
		}
		depth := utils.PathDepth(relativePath)

		if directoryEntry.IsDir() {
			if ignoreSet.ShouldPrune(relativePath) {
				view.excluded++
				return filepath.SkipDir
			}
			view.entries = append(view.entries, types.TreeEntry{RelativePath: relativePath, Kind: types.EntryKindDirectory, Depth: depth})
			return nil
		}

		if !isReadableFile(walkedPath, directoryEntry) {
			logger.Debug(warningIrregularFileMessage, zap.String("path", relativePath))
			view.excluded++
			return nil
		}
		if _, isSelf := selfPaths[filepath.Clean(walkedPath)]; isSelf {
			view.excluded++
			return nil
		}

		candidate := classify.NewCandidate(relativePath, walkedPath, directoryEntry.Name())
		if classifier.Classify(candidate) != types.ClassificationText {
			view.excluded++
			return nil
		}
		view.entries = append(view.entries, types.TreeEntry{RelativePath: relativePath, Kind: types.EntryKindFile, Depth: depth})
		view.files = append(view.files, includedFile{relativePath: relativePath, absolutePath: walkedPath})
		return nil
	}

	if walkError := filepath.WalkDir(root, walkFunction); walkError != nil {
		logger.Warn(warningAccessPathMessage, zap.String("path", root), zap.Error(walkError))
	}
	return view
}

// isReadableFile accepts regular files and symbolic links resolving to regular files.
// Devices, sockets and pipes are rejected since reading them may block.
func isReadableFile(path string, directoryEntry fs.DirEntry) bool {
	entryType := directoryEntry.Type()
	if entryType.IsRegular() {
		return true
	}
	if entryType&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(path)
	return statError == nil && targetInfo.Mode().IsRegular()
}
