package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	// UnknownVersion is reported when no version source is available.
	UnknownVersion   = "unknown"
	develVersion     = "(devel)"
	gitExecutable    = "git"
	gitDirectoryName = ".git"
)

// CommandOutputFunc runs a program inside directory and returns its trimmed stdout and exit status.
type CommandOutputFunc func(ctx context.Context, directory string, name string, arguments ...string) (string, int, error)

// GetApplicationVersion attempts to determine the application version using various methods.
// It checks Go build info first, then falls back to git describe in the enclosing repository.
func GetApplicationVersion(ctx context.Context, runCommand CommandOutputFunc) string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	if runCommand == nil {
		return UnknownVersion
	}
	gitDirectoryPath, gitDirectoryError := findGitDirectory(".")
	if gitDirectoryError != nil {
		return UnknownVersion
	}
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		output, exitCode, runError := runCommand(ctx, gitDirectoryPath, gitExecutable, arguments...)
		if runError == nil && exitCode == 0 && strings.TrimSpace(output) != "" {
			return strings.TrimSpace(output)
		}
	}
	return UnknownVersion
}

// findGitDirectory searches upward from the provided starting directory
// until it locates a directory containing the .git folder.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, errorAbsolute)
	}
	currentDirectory := absoluteStartDirectory
	for {
		fileInformation, errorStat := os.Stat(filepath.Join(currentDirectory, gitDirectoryName))
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}
	return "", fmt.Errorf(".git directory not found in or above %s", absoluteStartDirectory)
}
