package kb

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iand/ddx/logging"
	"github.com/iand/ddx/model"
)

const (
	ParamsFilename  = "params.yaml"
	AliasesFilename = "aliases.yaml"
)

func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ddx")
}

type Loader interface {
	Load(*model.Builder) error
	Scope() string
}

type Config struct {
	Params  model.Params
	Aliases *Aliases
}

// LoadConfig reads the scoring parameters and symptom aliases from configDir. Files
// that do not exist leave the defaults in place and an empty configDir reads nothing.
func LoadConfig(configDir string) (*Config, error) {
	var paramsFilename string
	var aliasesFilename string
	if configDir != "" {
		paramsFilename = filepath.Join(configDir, ParamsFilename)
		aliasesFilename = filepath.Join(configDir, AliasesFilename)
	}

	p, err := LoadParams(paramsFilename)
	if err != nil {
		return nil, fmt.Errorf("load params: %w", err)
	}

	a, err := LoadAliases(aliasesFilename)
	if err != nil {
		return nil, fmt.Errorf("load aliases: %w", err)
	}

	return &Config{
		Params:  p,
		Aliases: a,
	}, nil
}

// LoadKnowledgeBase validates the configured parameters and builds a knowledge base
// from the loader.
func LoadKnowledgeBase(cfg *Config, loader Loader) (*model.KnowledgeBase, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	b := model.NewBuilder(cfg.Params)
	if err := loader.Load(b); err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}
	kb := b.Build()

	dangling, shadowing := checkAliases(cfg.Aliases, kb)
	for _, alias := range dangling {
		logging.Warn("alias refers to a symptom that no disease lists", "alias", alias, "symptom", cfg.Aliases.Resolve(alias), "scope", loader.Scope())
	}
	for _, alias := range shadowing {
		logging.Warn("alias replaces a symptom that a disease lists", "alias", alias, "symptom", cfg.Aliases.Resolve(alias), "scope", loader.Scope())
	}

	slog.Info("knowledge base ready", "diseases", kb.Len(), "symptoms", len(kb.Symptoms()), "scope", loader.Scope())
	return kb, nil
}

// checkAliases reports the aliases whose symptom no disease lists and the aliases
// that are themselves listed symptoms and so hide them from scoring.
func checkAliases(a *Aliases, kb *model.KnowledgeBase) (dangling []string, shadowing []string) {
	for _, alias := range a.Names() {
		if !kb.HasSymptom(a.Resolve(alias)) {
			dangling = append(dangling, alias)
		}
		if kb.HasSymptom(alias) {
			shadowing = append(shadowing, alias)
		}
	}
	return dangling, shadowing
}
