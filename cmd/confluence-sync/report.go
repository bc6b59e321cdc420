package main

import (
	"fmt"
	"io"

	"github.com/toothbrush/confluence-sync/internal/termfmt"
	"github.com/toothbrush/confluence-sync/publish"
)

// printLinks writes one "Title: URL" line per page.  In colour, the URL is also a terminal hyperlink.
func printLinks(w io.Writer, links []publish.Link, color bool) {
	for _, link := range links {
		fmt.Fprintf(w, "%s: %s\n",
			termfmt.Bold().Enabled(color).V(link.Title),
			termfmt.Linked(link.URL).Enabled(color).V(link.URL))
	}
}

func printSummary(w io.Writer, report *publish.Report, color bool) {
	count := func(a publish.Action, c termfmt.C16Name) termfmt.Style {
		return termfmt.Fg(c).Enabled(color).V(report.Count(a))
	}

	fmt.Fprintf(w, "Synced %d documents: %d created, %d updated, %d unchanged, %d failed",
		len(report.Results),
		count(publish.Created, termfmt.Green),
		count(publish.Updated, termfmt.Cyan),
		count(publish.Unchanged, termfmt.DefaultColor),
		count(publish.Failed, termfmt.Red))

	if skipped := report.Count(publish.Skipped); skipped > 0 {
		fmt.Fprintf(w, ", %d skipped (dry run)", skipped)
	}
	fmt.Fprintln(w, ".")
}
