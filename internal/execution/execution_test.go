package execution

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestProcessRunnerReportsExitStatus(testingInstance *testing.T) {
	if _, lookupError := exec.LookPath("sh"); lookupError != nil {
		testingInstance.Skip("sh not available")
	}
	testCases := []struct {
		name           string
		script         string
		expectedStdout string
		expectedStderr string
		expectedExit   int
	}{
		{name: "success", script: "echo out", expectedStdout: "out", expectedExit: 0},
		{name: "failure is a result", script: "echo out; echo err >&2; exit 3", expectedStdout: "out", expectedStderr: "err", expectedExit: 3},
	}
	runner := NewProcessRunner()
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingHandle *testing.T) {
			result, runError := runner.Run(context.Background(), testingHandle.TempDir(), "sh", "-c", testCase.script)
			if runError != nil {
				testingHandle.Fatalf("Run error: %v", runError)
			}
			if result.Stdout != testCase.expectedStdout || result.Stderr != testCase.expectedStderr {
				testingHandle.Fatalf("unexpected output %q / %q", result.Stdout, result.Stderr)
			}
			if result.ExitCode != testCase.expectedExit {
				testingHandle.Fatalf("expected exit %d, got %d", testCase.expectedExit, result.ExitCode)
			}
			if result.Succeeded() != (testCase.expectedExit == 0) {
				testingHandle.Fatalf("Succeeded disagrees with exit code %d", result.ExitCode)
			}
		})
	}
}

func TestProcessRunnerRejectsMissingPrograms(testingInstance *testing.T) {
	runner := NewProcessRunner()
	if _, runError := runner.Run(context.Background(), "", "toai-definitely-missing-program"); runError == nil {
		testingInstance.Fatalf("expected error for a program that cannot start")
	}
	if _, runError := runner.Run(context.Background(), "", "  "); runError == nil {
		testingInstance.Fatalf("expected error for an empty command name")
	}
}

func TestEntryFormat(testingInstance *testing.T) {
	exitCode := 1
	entry := Entry{
		Title:     "Container smoke test",
		Command:   "docker run image",
		Succeeded: false,
		ExitCode:  &exitCode,
		Details:   []string{"health endpoint unreachable"},
		Errors:    "connection refused",
	}
	expected := "\n## Container smoke test\n" +
		"**Command:** `docker run image`\n" +
		"**Status:** ❌ Failed\n" +
		"**Exit code:** 1\n" +
		"**Details:** health endpoint unreachable\n" +
		"**Errors:** connection refused\n"
	if formatted := entry.Format(); formatted != expected {
		testingInstance.Fatalf("unexpected entry:\n%s", formatted)
	}
}

func TestEntryFromResult(testingInstance *testing.T) {
	entry := EntryFromResult("build", "go build ./...", CommandResult{Stdout: "ok", ExitCode: 0})
	if !entry.Succeeded || entry.ExitCode == nil || *entry.ExitCode != 0 {
		testingInstance.Fatalf("unexpected entry %+v", entry)
	}
	if len(entry.Details) != 1 || entry.Details[0] != "ok" {
		testingInstance.Fatalf("expected stdout as details, got %v", entry.Details)
	}
}

func TestJournalAppendAccumulatesEntries(testingInstance *testing.T) {
	journalPath := filepath.Join(testingInstance.TempDir(), "journal.md")
	journal := NewJournal(journalPath)
	fixedTime := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.Local)
	journal.now = func() time.Time { return fixedTime }

	for _, title := range []string{"first", "second"} {
		if appendError := journal.Append(Entry{Title: title, Succeeded: true}); appendError != nil {
			testingInstance.Fatalf("Append error: %v", appendError)
		}
	}
	content, readError := os.ReadFile(journalPath)
	if readError != nil {
		testingInstance.Fatalf("read journal: %v", readError)
	}
	text := string(content)
	firstIndex := strings.Index(text, "## first")
	secondIndex := strings.Index(text, "## second")
	if firstIndex < 0 || secondIndex < firstIndex {
		testingInstance.Fatalf("entries missing or out of order:\n%s", text)
	}
	if strings.Count(text, "**Time:** 2024-03-05 10:30:00") != 2 {
		testingInstance.Fatalf("expected timestamps on both entries:\n%s", text)
	}
	if strings.Count(text, "**Status:** ✅ Succeeded") != 2 {
		testingInstance.Fatalf("expected success status on both entries:\n%s", text)
	}
}

func TestJournalAppendFailsForMissingDirectory(testingInstance *testing.T) {
	journal := NewJournal(filepath.Join(testingInstance.TempDir(), "missing", "journal.md"))
	if appendError := journal.Append(Entry{Title: "x"}); appendError == nil {
		testingInstance.Fatalf("expected error for missing directory")
	}
}
