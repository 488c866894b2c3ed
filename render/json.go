package render

import (
	"encoding/json"
	"io"
)

type JSONEncoder struct {
	Indent string
}

type reportJSON struct {
	Reported    []string            `json:"reported"`
	Ignored     []string            `json:"ignored,omitempty"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
	Results     []resultJSON        `json:"results"`
}

type resultJSON struct {
	Rank        int      `json:"rank"`
	Disease     string   `json:"disease"`
	Probability float64  `json:"probability"`
	Matched     []string `json:"matched_symptoms,omitempty"`
	Symptoms    []string `json:"symptoms"`
	Treatments  string   `json:"treatments"`
	Contagious  string   `json:"contagious"`
	Chronic     string   `json:"chronic"`
}

func (e *JSONEncoder) Encode(w io.Writer, r *Report) error {
	rj := reportJSON{
		Reported:    r.Reported,
		Ignored:     r.Ignored,
		Suggestions: r.Suggestions,
		Results:     make([]resultJSON, 0, len(r.Results)),
	}
	if rj.Reported == nil {
		rj.Reported = []string{}
	}
	for _, res := range r.Results {
		symptoms := res.Symptoms
		if symptoms == nil {
			symptoms = []string{}
		}
		rj.Results = append(rj.Results, resultJSON{
			Rank:        res.Rank,
			Disease:     res.Name,
			Probability: res.Probability,
			Matched:     res.Matched,
			Symptoms:    symptoms,
			Treatments:  res.Treatments,
			Contagious:  res.Contagious,
			Chronic:     res.Chronic,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	return enc.Encode(rj)
}
