package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/gopak/mgrep/internal/search"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintSummary writes the --stats table for a finished run.
func PrintSummary(w io.Writer, sum search.Summary) error {
	_, err := fmt.Fprint(w, renderSummary(sum))
	return err
}

func renderSummary(sum search.Summary) string {
	var b strings.Builder
	b.WriteString(text.Bold.Sprint("Summary") + "\n")
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"File", "Lines"})
	for _, f := range sum.Files {
		tw.AppendRow(table.Row{f.Path, f.Reported})
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d files, %d errors", len(sum.Files), sum.Errors), sum.Reported})
	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}
