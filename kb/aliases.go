package kb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"golang.org/x/exp/slices"

	"github.com/iand/ddx/model"
)

// Aliases maps alternative symptom names to the name used in the knowledge base,
// for example "high temperature" to "fever".
type Aliases struct {
	canonical map[string]string
}

func (a *Aliases) Add(alias string, canonical string) error {
	alias = model.NormalizeSymptom(alias)
	canonical = model.NormalizeSymptom(canonical)
	if alias == "" || canonical == "" {
		return fmt.Errorf("alias and symptom must not be empty")
	}
	if a.canonical == nil {
		a.canonical = make(map[string]string)
	}
	if alias == canonical {
		return nil
	}
	a.canonical[alias] = canonical
	return nil
}

// Resolve returns the normalized symptom that s stands for.
func (a *Aliases) Resolve(s string) string {
	s = model.NormalizeSymptom(s)
	if a == nil {
		return s
	}
	if c, ok := a.canonical[s]; ok {
		return c
	}
	return s
}

// ResolveAll resolves every symptom in ss, keeping their order.
func (a *Aliases) ResolveAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = a.Resolve(s)
	}
	return out
}

func (a *Aliases) Len() int {
	if a == nil {
		return 0
	}
	return len(a.canonical)
}

// Names returns the sorted list of aliases.
func (a *Aliases) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.canonical))
	for n := range a.canonical {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ParseAliases reads a YAML mapping of alias to symptom name.
func ParseAliases(data []byte) (*Aliases, error) {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	var a Aliases
	for alias, canonical := range m {
		if err := a.Add(alias, canonical); err != nil {
			return nil, fmt.Errorf("alias %q: %w", alias, err)
		}
	}
	return &a, nil
}

func LoadAliases(filename string) (*Aliases, error) {
	var a Aliases
	if filename == "" {
		return &a, nil
	}

	slog.Info("reading aliases", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &a, nil
		}
		return nil, fmt.Errorf("open: %w", err)
	}

	parsed, err := ParseAliases(data)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return parsed, nil
}
