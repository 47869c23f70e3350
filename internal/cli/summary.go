package cli

import (
	"fmt"
	"strings"

	"github.com/temirov/toai/internal/tokenizer"
	"github.com/temirov/toai/internal/types"
	"github.com/temirov/toai/internal/utils"
)

const (
	summaryWrittenFormat      = "Wrote %s\n"
	summaryLinesFormat        = "  lines:   %d\n"
	summaryFilesFormat        = "  files:   %d included, %d skipped\n"
	summarySizeFormat         = "  size:    %s\n"
	summaryTokensFormat       = "  tokens:  %d (%s)\n"
	summaryBudgetOKFormat     = "  budget:  within limit of %d lines\n"
	summaryBudgetStopFormat   = "  budget:  limit of %d lines exceeded, stopped at %s\n"
	summaryBudgetDisabledText = "  budget:  unlimited\n"
	summaryClipboardText      = "  copied to clipboard\n"
)

// snapshotSummary is the console report printed after a successful run.
type snapshotSummary struct {
	OutputPath    string
	Result        types.AssemblyResult
	MaxTotalLines int
	TokenCount    *tokenizer.DocumentCount
	Copied        bool
}

// Render formats the summary for the terminal.
func (summary snapshotSummary) Render() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, summaryWrittenFormat, summary.OutputPath)
	fmt.Fprintf(&builder, summaryLinesFormat, summary.Result.TotalLines)
	fmt.Fprintf(&builder, summaryFilesFormat, summary.Result.IncludedFiles, summary.Result.ExcludedEntries)
	switch {
	case summary.Result.Truncated:
		fmt.Fprintf(&builder, summaryBudgetStopFormat, summary.MaxTotalLines, summary.Result.StoppedAt)
	case summary.MaxTotalLines <= 0:
		builder.WriteString(summaryBudgetDisabledText)
	default:
		fmt.Fprintf(&builder, summaryBudgetOKFormat, summary.MaxTotalLines)
	}
	fmt.Fprintf(&builder, summarySizeFormat, utils.FormatByteSize(len(summary.Result.Document)))
	if summary.TokenCount != nil {
		fmt.Fprintf(&builder, summaryTokensFormat, summary.TokenCount.Tokens, summary.TokenCount.Encoder)
	}
	if summary.Copied {
		builder.WriteString(summaryClipboardText)
	}
	return builder.String()
}
