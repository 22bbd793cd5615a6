package report

import (
	"fmt"
	"io"

	"github.com/buildkite/lexan/lexer"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// WriteSummary prints the closing lines of an analysis run: how many tokens
// were processed and, if a file was written, where.
func WriteSummary(w io.Writer, stats lexer.Stats, outputPath string) {
	fmt.Fprintf(w, "\nAnalysis complete: %s %s processed (%s %s, %s %s, %s %s)\n",
		humanize.Comma(int64(stats.Total)), english.PluralWord(stats.Total, "token", ""),
		humanize.Comma(int64(stats.Keywords)), english.PluralWord(stats.Keywords, "keyword", ""),
		humanize.Comma(int64(stats.Identifiers)), english.PluralWord(stats.Identifiers, "identifier", ""),
		humanize.Comma(int64(stats.Errors)), english.PluralWord(stats.Errors, "lexical error", ""),
	)
	if outputPath != "" {
		fmt.Fprintf(w, "Results saved to: %s\n", outputPath)
	}
}
