package model

const (
	DefaultTreatments = "Consult a healthcare provider for diagnosis and treatment."
	NotApplicable     = "N/A"
)

type Disease struct {
	Name       string             // unique key, case-sensitive as it appears in the source table
	Symptoms   map[string]float64 // lowercase symptom name mapped to the likelihood of seeing it with this disease
	Prior      float64            // baseline weight before any symptom evidence is considered
	Treatments string             // free text, DefaultTreatments when the source has none
	Contagious string             // free text, NotApplicable when the source has none
	Chronic    string             // free text, NotApplicable when the source has none

	symptomOrder []string // symptoms in the order they were listed in the source
}

// Likelihood returns the weight for symptom s, or fallback when this disease does not list it.
func (d *Disease) Likelihood(s string, fallback float64) float64 {
	if l, ok := d.Symptoms[s]; ok {
		return l
	}
	return fallback
}

func (d *Disease) HasSymptom(s string) bool {
	_, ok := d.Symptoms[s]
	return ok
}

// SymptomNames returns the disease's symptoms in the order they were listed in the source.
func (d *Disease) SymptomNames() []string {
	names := make([]string, len(d.symptomOrder))
	copy(names, d.symptomOrder)
	return names
}

func (d *Disease) clone() *Disease {
	c := *d
	c.Symptoms = make(map[string]float64, len(d.Symptoms))
	for k, v := range d.Symptoms {
		c.Symptoms[k] = v
	}
	c.symptomOrder = d.SymptomNames()
	return &c
}

// Diagnosis is a single ranked candidate produced by scoring a knowledge base.
type Diagnosis struct {
	Name        string
	Probability float64 // normalized across all diseases in the knowledge base, rounded
}
