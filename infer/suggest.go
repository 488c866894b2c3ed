package infer

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/exp/slices"

	"github.com/iand/ddx/model"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for a known symptom to be
// offered as an alternative spelling.
const SuggestThreshold = 0.85

type suggestion struct {
	symptom    string
	similarity float64
}

// Suggest returns up to n symptoms from kb that closely resemble s, most similar first.
// It returns nothing when s is already a known symptom.
func Suggest(s string, kb *model.KnowledgeBase, n int) []string {
	s = model.NormalizeSymptom(s)
	if s == "" || n < 1 || kb.HasSymptom(s) {
		return nil
	}

	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false

	var candidates []suggestion
	for _, known := range kb.Symptoms() {
		sim := strutil.Similarity(s, known, jw)
		if sim >= SuggestThreshold {
			candidates = append(candidates, suggestion{symptom: known, similarity: sim})
		}
	}

	// Symptoms() is sorted so equal similarities stay in alphabetical order
	slices.SortStableFunc(candidates, func(a, b suggestion) bool {
		return a.similarity > b.similarity
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.symptom
	}
	return out
}
