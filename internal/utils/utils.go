// Package utils contains general helper functions used across the toai tool.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicateNames removes empty and duplicate names from a slice while preserving order.
// The first occurrence of each unique name is kept.
func DeduplicateNames(names []string) []string {
	encounteredNames := make(map[string]struct{})
	result := make([]string, 0, len(names))
	for _, name := range names {
		trimmedName := strings.TrimSpace(name)
		if trimmedName == "" {
			continue
		}
		if _, exists := encounteredNames[trimmedName]; !exists {
			encounteredNames[trimmedName] = struct{}{}
			result = append(result, trimmedName)
		}
	}
	return result
}

// RelativePathOrSelf calculates the forward-slash relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)
	if cleanPath == cleanAbsoluteRoot {
		return "."
	}
	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// PathDepth returns the number of segments in a forward-slash relative path.
func PathDepth(relativePath string) int {
	if relativePath == "" || relativePath == "." {
		return 0
	}
	return strings.Count(relativePath, "/") + 1
}
