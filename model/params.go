package model

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid scoring parameters")

// MaxPrecision is the largest number of decimal places a probability can keep.
const MaxPrecision = 15

// Params holds the heuristic constants used to build and score a knowledge base.
// None of them are learned from data.
type Params struct {
	Prior                  float64 `yaml:"prior"`                   // prior assigned to every disease
	Likelihood             float64 `yaml:"likelihood"`              // likelihood of a symptom the disease lists
	UnassociatedLikelihood float64 `yaml:"unassociated_likelihood"` // likelihood of a reported symptom the disease does not list
	TopN                   int     `yaml:"top"`                     // maximum number of ranked results
	Precision              int     `yaml:"precision"`               // decimal places kept in each probability
}

func DefaultParams() Params {
	return Params{
		Prior:                  0.01,
		Likelihood:             0.8,
		UnassociatedLikelihood: 0.1,
		TopN:                   5,
		Precision:              4,
	}
}

func (p Params) Validate() error {
	if p.Prior < 0 {
		return fmt.Errorf("%w: prior must not be negative, got %v", ErrInvalidParams, p.Prior)
	}
	if p.Likelihood < 0 || p.Likelihood > 1 {
		return fmt.Errorf("%w: likelihood must be between 0 and 1, got %v", ErrInvalidParams, p.Likelihood)
	}
	if p.UnassociatedLikelihood < 0 || p.UnassociatedLikelihood > 1 {
		return fmt.Errorf("%w: unassociated likelihood must be between 0 and 1, got %v", ErrInvalidParams, p.UnassociatedLikelihood)
	}
	if p.TopN < 1 {
		return fmt.Errorf("%w: top must be at least 1, got %d", ErrInvalidParams, p.TopN)
	}
	if p.Precision < 0 || p.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision must be between 0 and %d, got %d", ErrInvalidParams, MaxPrecision, p.Precision)
	}
	return nil
}
