package model

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// KnowledgeBase maps disease names to their records. It is created by a Builder
// and never changes afterwards.
type KnowledgeBase struct {
	diseases map[string]*Disease
	order    []string        // disease names in order of first appearance
	universe map[string]bool // every symptom listed by any disease
}

func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.order)
}

// Get returns a copy of the named disease record.
func (kb *KnowledgeBase) Get(name string) (*Disease, bool) {
	if kb == nil {
		return nil, false
	}
	d, ok := kb.diseases[name]
	if !ok {
		return nil, false
	}
	return d.clone(), true
}

// Names returns the disease names in the order they were first added.
func (kb *KnowledgeBase) Names() []string {
	if kb == nil {
		return nil
	}
	names := make([]string, len(kb.order))
	copy(names, kb.order)
	return names
}

// Symptoms returns the sorted universe of symptom names known to the knowledge base.
func (kb *KnowledgeBase) Symptoms() []string {
	if kb == nil {
		return nil
	}
	syms := make([]string, 0, len(kb.universe))
	for s := range kb.universe {
		syms = append(syms, s)
	}
	slices.Sort(syms)
	return syms
}

func (kb *KnowledgeBase) HasSymptom(s string) bool {
	if kb == nil {
		return false
	}
	return kb.universe[s]
}

// Each calls fn for every disease in insertion order. The disease must not be modified.
func (kb *KnowledgeBase) Each(fn func(d *Disease)) {
	if kb == nil {
		return
	}
	for _, name := range kb.order {
		fn(kb.diseases[name])
	}
}

// DiseaseInput is the raw description of one disease as read from a source.
type DiseaseInput struct {
	Name       string
	Symptoms   []string
	Treatments string
	Contagious string
	Chronic    string
}

// Builder accumulates disease records and produces a KnowledgeBase.
type Builder struct {
	params   Params
	diseases map[string]*Disease
	order    []string
}

func NewBuilder(p Params) *Builder {
	return &Builder{
		params:   p,
		diseases: make(map[string]*Disease),
	}
}

// Add adds a disease, replacing any earlier disease with the same name while keeping
// the earlier position. It reports whether an earlier disease was replaced.
func (b *Builder) Add(in DiseaseInput) (bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return false, fmt.Errorf("disease has no name")
	}

	d := &Disease{
		Name:       name,
		Symptoms:   make(map[string]float64, len(in.Symptoms)),
		Prior:      b.params.Prior,
		Treatments: withDefault(in.Treatments, DefaultTreatments),
		Contagious: withDefault(in.Contagious, NotApplicable),
		Chronic:    withDefault(in.Chronic, NotApplicable),
	}

	for _, s := range in.Symptoms {
		s = NormalizeSymptom(s)
		if s == "" {
			continue
		}
		if _, dup := d.Symptoms[s]; !dup {
			d.symptomOrder = append(d.symptomOrder, s)
		}
		d.Symptoms[s] = b.params.Likelihood
	}

	_, replaced := b.diseases[name]
	if !replaced {
		b.order = append(b.order, name)
	}
	b.diseases[name] = d
	return replaced, nil
}

func (b *Builder) Len() int {
	return len(b.order)
}

// Build returns the knowledge base. The builder must not be used afterwards.
func (b *Builder) Build() *KnowledgeBase {
	kb := &KnowledgeBase{
		diseases: b.diseases,
		order:    b.order,
		universe: make(map[string]bool),
	}
	for _, d := range kb.diseases {
		for s := range d.Symptoms {
			kb.universe[s] = true
		}
	}
	b.diseases = nil
	b.order = nil
	return kb
}

// NormalizeSymptom trims and lowercases a symptom name.
func NormalizeSymptom(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func withDefault(s string, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
