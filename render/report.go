package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/iand/ddx/infer"
	"github.com/iand/ddx/model"
)

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

var Formats = []string{FormatText, FormatMarkdown, FormatJSON}

// Report is everything a presentation needs about one query.
type Report struct {
	Reported    []string            // symptoms as the user entered them, after alias resolution
	Ignored     []string            // symptoms not known to the knowledge base
	Suggestions map[string][]string // ignored symptom to similar known symptoms
	Results     []Result
}

type Result struct {
	Rank        int
	Name        string
	Probability float64
	Matched     []string // reported symptoms listed by this disease
	Symptoms    []string // all symptoms listed by this disease
	Treatments  string
	Contagious  string
	Chronic     string
}

// NewReport joins ranked diagnoses with their records from kb.
func NewReport(reported []string, kb *model.KnowledgeBase, diagnoses []model.Diagnosis) *Report {
	known, unknown := infer.Partition(reported, kb)
	r := &Report{
		Reported: reported,
		Ignored:  unknown,
	}

	for i, dg := range diagnoses {
		res := Result{
			Rank:        i + 1,
			Name:        dg.Name,
			Probability: dg.Probability,
			Treatments:  model.DefaultTreatments,
			Contagious:  model.NotApplicable,
			Chronic:     model.NotApplicable,
		}
		if d, ok := kb.Get(dg.Name); ok {
			res.Matched = infer.Matched(d, known)
			res.Symptoms = d.SymptomNames()
			res.Treatments = d.Treatments
			res.Contagious = d.Contagious
			res.Chronic = d.Chronic
		}
		r.Results = append(r.Results, res)
	}

	return r
}

// AddSuggestions records up to n similar known symptoms for each ignored symptom.
func (r *Report) AddSuggestions(kb *model.KnowledgeBase, n int) {
	for _, s := range r.Ignored {
		sugg := infer.Suggest(s, kb, n)
		if len(sugg) == 0 {
			continue
		}
		if r.Suggestions == nil {
			r.Suggestions = make(map[string][]string)
		}
		r.Suggestions[s] = sugg
	}
}

type Encoder interface {
	Encode(w io.Writer, r *Report) error
}

func NewEncoder(format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return &TextEncoder{}, nil
	case FormatMarkdown, "md":
		return &MarkdownEncoder{}, nil
	case FormatJSON:
		return &JSONEncoder{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q, expected one of %s", format, strings.Join(Formats, ", "))
	}
}
