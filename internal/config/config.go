// Package config loads toai configuration files and ignore lists.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const ignoreListCommentPrefix = "#"

// LoadIgnoreList reads entry names, one per line, from an ignore list file.
// Blank lines and lines starting with # are skipped; a missing file yields no names.
//
// #nosec G304
func LoadIgnoreList(ignoreListPath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreListPath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ignore list %s: %w", ignoreListPath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreListPath, closeError)
		}
	}()

	var names []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, ignoreListCommentPrefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(trimmedLine, "/"))
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("read ignore list %s: %w", ignoreListPath, scanError)
	}
	return names, nil
}
