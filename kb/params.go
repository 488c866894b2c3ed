package kb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/iand/ddx/model"
)

// paramsFile mirrors model.Params with optional fields so a file only needs to
// mention the values it changes.
type paramsFile struct {
	Prior                  *float64 `yaml:"prior"`
	Likelihood             *float64 `yaml:"likelihood"`
	UnassociatedLikelihood *float64 `yaml:"unassociated_likelihood"`
	TopN                   *int     `yaml:"top"`
	Precision              *int     `yaml:"precision"`
}

func (pf *paramsFile) apply(p *model.Params) {
	if pf.Prior != nil {
		p.Prior = *pf.Prior
	}
	if pf.Likelihood != nil {
		p.Likelihood = *pf.Likelihood
	}
	if pf.UnassociatedLikelihood != nil {
		p.UnassociatedLikelihood = *pf.UnassociatedLikelihood
	}
	if pf.TopN != nil {
		p.TopN = *pf.TopN
	}
	if pf.Precision != nil {
		p.Precision = *pf.Precision
	}
}

// ParseParams overlays the YAML document in data onto the default parameters.
func ParseParams(data []byte) (model.Params, error) {
	p := model.DefaultParams()
	var pf paramsFile
	if err := yaml.UnmarshalWithOptions(data, &pf, yaml.DisallowUnknownField()); err != nil {
		return p, err
	}
	pf.apply(&p)
	return p, nil
}

func LoadParams(filename string) (model.Params, error) {
	if filename == "" {
		return model.DefaultParams(), nil
	}

	slog.Info("reading params", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultParams(), nil
		}
		return model.Params{}, fmt.Errorf("open: %w", err)
	}

	p, err := ParseParams(data)
	if err != nil {
		return model.Params{}, fmt.Errorf("read: %w", err)
	}
	return p, nil
}
