package kb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iand/ddx/model"
)

type stubLoader struct {
	inputs []model.DiseaseInput
	err    error
}

func (s *stubLoader) Scope() string { return "stub" }

func (s *stubLoader) Load(b *model.Builder) error {
	if s.err != nil {
		return s.err
	}
	for _, in := range s.inputs {
		if _, err := b.Add(in); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	testCases := []struct {
		name string
		dir  string
	}{
		{name: "no config dir", dir: ""},
		{name: "empty config dir", dir: t.TempDir()},
		{name: "config dir does not exist", dir: filepath.Join(t.TempDir(), "missing")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(tc.dir)
			if err != nil {
				t.Fatalf("got unexpected error: %v", err)
			}
			if diff := cmp.Diff(model.DefaultParams(), cfg.Params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
			if cfg.Aliases.Len() != 0 {
				t.Errorf("got %d aliases, want 0", cfg.Aliases.Len())
			}
		})
	}
}

func TestLoadConfigFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ParamsFilename, "prior: 0.02\ntop: 3\n")
	writeFile(t, dir, AliasesFilename, "High Temperature: Fever\nthrowing up: vomiting\n")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	want := model.DefaultParams()
	want.Prior = 0.02
	want.TopN = 3
	if diff := cmp.Diff(want, cfg.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	if got := cfg.Aliases.Resolve("  high temperature "); got != "fever" {
		t.Errorf("got %q, want %q", got, "fever")
	}
	if diff := cmp.Diff([]string{"high temperature", "throwing up"}, cfg.Aliases.Names()); diff != "" {
		t.Errorf("alias names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigBadParams(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "unknown field", content: "priors: 0.5\n"},
		{name: "wrong type", content: "top: many\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ParamsFilename, tc.content)
			if _, err := LoadConfig(dir); err == nil {
				t.Fatalf("missing expected error")
			}
		})
	}
}

func TestLoadKnowledgeBase(t *testing.T) {
	cfg := &Config{Params: model.DefaultParams()}
	cfg.Params.Likelihood = 0.6
	l := &stubLoader{
		inputs: []model.DiseaseInput{
			{Name: "A", Symptoms: []string{"fever"}},
			{Name: "B", Symptoms: []string{"cough"}},
		},
	}

	kb, err := LoadKnowledgeBase(cfg, l)
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, kb.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	a, _ := kb.Get("A")
	if got := a.Symptoms["fever"]; got != 0.6 {
		t.Errorf("got likelihood %v, want 0.6", got)
	}
}

func TestLoadKnowledgeBaseInvalidParams(t *testing.T) {
	cfg := &Config{Params: model.DefaultParams()}
	cfg.Params.TopN = 0

	_, err := LoadKnowledgeBase(cfg, &stubLoader{})
	if !errors.Is(err, model.ErrInvalidParams) {
		t.Fatalf("got error %v, want ErrInvalidParams", err)
	}
}

func TestLoadKnowledgeBaseLoaderError(t *testing.T) {
	sentinel := errors.New("boom")
	cfg := &Config{Params: model.DefaultParams()}

	_, err := LoadKnowledgeBase(cfg, &stubLoader{err: sentinel})
	if !errors.Is(err, sentinel) {
		t.Fatalf("got error %v, want wrapped loader error", err)
	}
}

func TestAliases(t *testing.T) {
	a, err := ParseAliases([]byte("temperature: fever\nFever: fever\n"))
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	if a.Len() != 1 {
		t.Errorf("got %d aliases, want 1", a.Len())
	}

	got := a.ResolveAll([]string{"Temperature", " cough ", "fever"})
	if diff := cmp.Diff([]string{"fever", "cough", "fever"}, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}

	var none *Aliases
	if got := none.Resolve(" COUGH"); got != "cough" {
		t.Errorf("got %q, want %q", got, "cough")
	}

	if _, err := ParseAliases([]byte("temperature: \"\"\n")); err == nil {
		t.Errorf("missing expected error for empty symptom")
	}
}

func TestCheckAliases(t *testing.T) {
	b := model.NewBuilder(model.DefaultParams())
	for _, in := range []model.DiseaseInput{
		{Name: "Flu", Symptoms: []string{"fever", "cough"}},
		{Name: "Cold", Symptoms: []string{"sneezing"}},
	} {
		if _, err := b.Add(in); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	base := b.Build()

	a, err := ParseAliases([]byte("temperature: fever\nitchy eyes: hay fever\ncough: sneezing\n"))
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	dangling, shadowing := checkAliases(a, base)
	if diff := cmp.Diff([]string{"itchy eyes"}, dangling); diff != "" {
		t.Errorf("dangling mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cough"}, shadowing); diff != "" {
		t.Errorf("shadowing mismatch (-want +got):\n%s", diff)
	}

	dangling, shadowing = checkAliases(nil, base)
	if len(dangling) != 0 || len(shadowing) != 0 {
		t.Errorf("got %v and %v for no aliases, want none", dangling, shadowing)
	}
}
