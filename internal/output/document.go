package output

import (
	"fmt"
	"strings"

	"github.com/temirov/toai/internal/types"
)

const (
	documentHeadingFormat = "# Project Snapshot\n\n**Directory:** `%s`\n\n"
	contentHeading        = "## File Contents\n\n"
	fileDelimiterWidth    = 60
	fileHeaderFormat      = "### File: `%s`\n\n"
	limitNoticeFormat     = "\n## ⚠️ WARNING: line limit of %d exceeded\n" +
		"Current line count: %d\n" +
		"Collection stopped at file: `%s`\n"
)

// DocumentHeader renders the document title naming the collected directory.
func DocumentHeader(directory string) string {
	return fmt.Sprintf(documentHeadingFormat, directory)
}

// ContentHeading opens the file contents section.
func ContentHeading() string {
	return contentHeading
}

// FileBlock renders one file: delimiter, path header and a fenced block tagged with its language.
func FileBlock(file types.RenderedFile) string {
	fence := fenceFor(file.Content)
	var builder strings.Builder
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("=", fileDelimiterWidth))
	builder.WriteString("\n")
	fmt.Fprintf(&builder, fileHeaderFormat, file.Path)
	builder.WriteString(fence)
	builder.WriteString(file.Language)
	builder.WriteString("\n")
	builder.WriteString(file.Content)
	if !strings.HasSuffix(file.Content, "\n") {
		builder.WriteString("\n")
	}
	builder.WriteString(fence)
	builder.WriteString("\n\n")
	return builder.String()
}

// LimitNotice renders the single notice emitted when the line budget is exceeded.
func LimitNotice(maxTotalLines int, totalLines int, path string) string {
	return fmt.Sprintf(limitNoticeFormat, maxTotalLines, totalLines, path)
}

// fenceFor returns a backtick fence longer than any backtick run inside text.
func fenceFor(text string) string {
	longestRun := 0
	currentRun := 0
	for index := 0; index < len(text); index++ {
		if text[index] == '`' {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
			continue
		}
		currentRun = 0
	}
	if longestRun < len(codeFence) {
		return codeFence
	}
	return strings.Repeat("`", longestRun+1)
}
