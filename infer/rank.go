package infer

import (
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/iand/ddx/model"
)

// Rank scores every disease in kb against the reported symptoms and returns the
// most probable, at most p.TopN, in descending order of probability. Diseases with
// equal probability keep the order in which they appear in the knowledge base.
//
// Reported symptoms are trimmed and lowercased; those not listed by any disease are
// ignored. With no recognised symptoms every disease is scored on its prior alone.
func Rank(reported []string, kb *model.KnowledgeBase, p model.Params) []model.Diagnosis {
	known, _ := Partition(reported, kb)

	diagnoses := make([]model.Diagnosis, 0, kb.Len())
	raw := make([]float64, 0, kb.Len())
	total := 0.0

	kb.Each(func(d *model.Disease) {
		score := d.Prior * product(d, known, p.UnassociatedLikelihood)
		raw = append(raw, score)
		total += score
		diagnoses = append(diagnoses, model.Diagnosis{Name: d.Name})
	})

	for i := range diagnoses {
		if total == 0 {
			diagnoses[i].Probability = 0
			continue
		}
		diagnoses[i].Probability = round(raw[i]/total, p.Precision)
	}

	slices.SortStableFunc(diagnoses, func(a, b model.Diagnosis) bool {
		return a.Probability > b.Probability
	})

	if p.TopN > 0 && len(diagnoses) > p.TopN {
		diagnoses = diagnoses[:p.TopN]
	}
	return diagnoses
}

// product multiplies the likelihoods of the known symptoms for d. An empty list
// of symptoms carries no information and yields 1.
func product(d *model.Disease, known []string, fallback float64) float64 {
	prod := 1.0
	for _, s := range known {
		prod *= d.Likelihood(s, fallback)
	}
	return prod
}

// round rounds the exact binary value of v to the given number of decimal places.
// Exact ties go to the even digit.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Partition normalizes the reported symptoms and splits them into those present in
// the knowledge base and those that are not. Blank entries are dropped. Known symptoms
// are returned normalized and in reported order, including repeats.
func Partition(reported []string, kb *model.KnowledgeBase) (known []string, unknown []string) {
	for _, r := range reported {
		s := model.NormalizeSymptom(r)
		if s == "" {
			continue
		}
		if kb.HasSymptom(s) {
			known = append(known, s)
		} else {
			unknown = append(unknown, s)
		}
	}
	return known, unknown
}

// Matched returns the known symptoms that the named disease lists, without repeats.
func Matched(d *model.Disease, known []string) []string {
	var matched []string
	seen := make(map[string]bool)
	for _, s := range known {
		if seen[s] || !d.HasSymptom(s) {
			continue
		}
		seen[s] = true
		matched = append(matched, s)
	}
	return matched
}
