package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iand/ddx/text"
)

const ruleWidth = 60

// TextEncoder writes a report as plain lines suitable for a terminal.
type TextEncoder struct{}

func (e *TextEncoder) Encode(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	if len(r.Ignored) > 0 {
		fmt.Fprintf(bw, "Ignored symptoms: %s\n", ignoredList(r))
	}

	fmt.Fprintf(bw, "\nTop %d probable diseases with details:\n\n", len(r.Results))
	for _, res := range r.Results {
		fmt.Fprintf(bw, "Disease: %s\n", res.Name)
		fmt.Fprintf(bw, "Probability: %s\n", text.Percent(res.Probability))
		fmt.Fprintf(bw, "Treatments: %s\n", res.Treatments)
		fmt.Fprintf(bw, "Contagious: %s\n", res.Contagious)
		fmt.Fprintf(bw, "Chronic: %s\n", res.Chronic)
		bw.WriteString(strings.Repeat("-", ruleWidth))
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// ignoredList describes the ignored symptoms along with any suggested alternatives.
func ignoredList(r *Report) string {
	items := make([]string, 0, len(r.Ignored))
	for _, s := range r.Ignored {
		if sugg := r.Suggestions[s]; len(sugg) > 0 {
			s += " (did you mean " + text.JoinListOr(sugg) + "?)"
		}
		items = append(items, s)
	}
	return strings.Join(items, ", ")
}
