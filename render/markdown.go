package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iand/ddx/text"
)

// MarkdownEncoder writes a report as a markdown document with one section per disease.
type MarkdownEncoder struct {
	Title string // heading for the document, defaults to "Probable diseases"
}

func (e *MarkdownEncoder) Encode(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	title := e.Title
	if title == "" {
		title = "Probable diseases"
	}
	bw.WriteString("# " + title + "\n\n")

	if len(r.Reported) > 0 {
		bw.WriteString("Reported symptoms: " + text.JoinList(r.Reported) + "\n\n")
	}
	if len(r.Ignored) > 0 {
		bw.WriteString("Ignored symptoms: " + ignoredList(r) + "\n\n")
	}

	if len(r.Results) == 0 {
		bw.WriteString("No diseases found.\n")
		return bw.Flush()
	}

	for _, res := range r.Results {
		fmt.Fprintf(bw, "## %d. %s\n\n", res.Rank, res.Name)
		item(bw, "Probability", text.Percent(res.Probability))
		if len(res.Matched) > 0 {
			item(bw, "Matched symptoms", strings.Join(res.Matched, ", "))
		}
		item(bw, "Treatments", res.Treatments)
		item(bw, "Contagious", res.Contagious)
		item(bw, "Chronic", res.Chronic)
		bw.WriteString("\n")
	}

	return bw.Flush()
}

func item(bw *bufio.Writer, label string, value string) {
	bw.WriteString("- **" + label + ":** " + text.RemoveRedundantWhitespace(value) + "\n")
}
