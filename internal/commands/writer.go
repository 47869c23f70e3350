package commands

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	temporaryFilePatternFormat = ".%s.*.tmp"
	documentFileMode           = 0o644

	errorCreateTemporaryFormat = "create temporary file for %s: %w"
	errorWriteDocumentFormat   = "write document %s: %w"
	errorReplaceDocumentFormat = "replace document %s: %w"
)

// WriteDocument replaces destinationPath with document in a single atomic rename.
func WriteDocument(destinationPath string, document string) (err error) {
	directory := filepath.Dir(destinationPath)
	temporaryFile, createError := os.CreateTemp(directory, fmt.Sprintf(temporaryFilePatternFormat, filepath.Base(destinationPath)))
	if createError != nil {
		return fmt.Errorf(errorCreateTemporaryFormat, destinationPath, createError)
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.WriteString(document); writeError != nil {
		_ = temporaryFile.Close()
		return fmt.Errorf(errorWriteDocumentFormat, destinationPath, writeError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorWriteDocumentFormat, destinationPath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, documentFileMode); chmodError != nil {
		return fmt.Errorf(errorWriteDocumentFormat, destinationPath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, destinationPath); renameError != nil {
		return fmt.Errorf(errorReplaceDocumentFormat, destinationPath, renameError)
	}
	return nil
}
