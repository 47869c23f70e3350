package execution

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/temirov/toai/internal/utils"
)

const (
	statusSucceeded           = "✅ Succeeded"
	statusFailed              = "❌ Failed"
	errorOpenJournalFormat    = "open journal %s: %w"
	errorWriteJournalFormat   = "write journal %s: %w"
	errorCloseJournalFormat   = "close journal %s: %w"
	journalEntryHeadingFormat = "\n## %s\n"
)

// Entry is one Markdown status record.
type Entry struct {
	Title     string
	Command   string
	Succeeded bool
	ExitCode  *int
	Details   []string
	Errors    string
	Timestamp time.Time
}

// Journal appends Markdown status entries to a fixed path.
type Journal struct {
	Path string
	now  func() time.Time
}

// NewJournal constructs a Journal writing to path.
func NewJournal(path string) *Journal {
	return &Journal{Path: path, now: time.Now}
}

// EntryFromResult builds an entry describing a finished command.
func EntryFromResult(title string, commandLine string, result CommandResult) Entry {
	exitCode := result.ExitCode
	entry := Entry{
		Title:     title,
		Command:   commandLine,
		Succeeded: result.Succeeded(),
		ExitCode:  &exitCode,
		Errors:    result.Stderr,
	}
	if result.Stdout != "" {
		entry.Details = []string{result.Stdout}
	}
	return entry
}

// Format renders entry as Markdown.
func (entry Entry) Format() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, journalEntryHeadingFormat, entry.Title)
	if !entry.Timestamp.IsZero() {
		fmt.Fprintf(&builder, "**Time:** %s\n", utils.FormatJournalTimestamp(entry.Timestamp))
	}
	if entry.Command != "" {
		fmt.Fprintf(&builder, "**Command:** `%s`\n", entry.Command)
	}
	status := statusFailed
	if entry.Succeeded {
		status = statusSucceeded
	}
	fmt.Fprintf(&builder, "**Status:** %s\n", status)
	if entry.ExitCode != nil {
		fmt.Fprintf(&builder, "**Exit code:** %d\n", *entry.ExitCode)
	}
	for _, detail := range entry.Details {
		fmt.Fprintf(&builder, "**Details:** %s\n", detail)
	}
	if entry.Errors != "" {
		fmt.Fprintf(&builder, "**Errors:** %s\n", entry.Errors)
	}
	return builder.String()
}

// Append writes entry to the end of the journal, creating the file when it does not exist.
//
// #nosec G304
func (journal *Journal) Append(entry Entry) (err error) {
	if entry.Timestamp.IsZero() && journal.now != nil {
		entry.Timestamp = journal.now()
	}
	fileHandle, openError := os.OpenFile(journal.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if openError != nil {
		return fmt.Errorf(errorOpenJournalFormat, journal.Path, openError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseJournalFormat, journal.Path, closeError)
		}
	}()
	if _, writeError := fileHandle.WriteString(entry.Format()); writeError != nil {
		return fmt.Errorf(errorWriteJournalFormat, journal.Path, writeError)
	}
	return nil
}
