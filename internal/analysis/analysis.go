// Package analysis runs the comparison workflow: guard the inputs,
// align the pair, extract variants, and score the result.
package analysis

import (
	"github.com/varwatch/varwatch/internal/align"
	"github.com/varwatch/varwatch/internal/config"
	"github.com/varwatch/varwatch/internal/errors"
	"github.com/varwatch/varwatch/internal/genome"
	"github.com/varwatch/varwatch/internal/risk"
	"github.com/varwatch/varwatch/internal/variant"
)

// Input contains the two normalized sequences for one analysis.
type Input struct {
	Reference genome.Sequence // required
	Sample    genome.Sequence // required
}

// Summary aggregates the comparison counts and the risk score.
type Summary struct {
	TotalVariants   int `json:"total_variants"`
	Substitutions   int `json:"substitutions"`
	Indels          int `json:"indels"`
	ReferenceLength int `json:"reference_length"`
	RiskScore       int `json:"risk_score"`
}

// Result is the full analysis output. Variants is never nil so an
// identical pair serializes as an empty list.
type Result struct {
	Variants []variant.Variant `json:"variants"`
	Summary  Summary           `json:"summary"`
}

// Analyze compares a sample sequence against a reference. Both inputs
// must be non-empty and within the configured per-sequence cap. The
// reported reference length is the raw input length, before any
// alignment gaps are introduced.
func Analyze(cfg *config.Config, input Input) (*Result, error) {
	if len(input.Reference) == 0 || len(input.Sample) == 0 {
		return nil, errors.NewMissingInput()
	}

	if cfg.MaxSequenceChars > 0 {
		if n := len(input.Reference); n > cfg.MaxSequenceChars {
			return nil, errors.NewSequenceTooLarge("reference", n, cfg.MaxSequenceChars)
		}
		if n := len(input.Sample); n > cfg.MaxSequenceChars {
			return nil, errors.NewSequenceTooLarge("sample", n, cfg.MaxSequenceChars)
		}
	}

	pair := align.Align(input.Reference, input.Sample)

	extraction, err := variant.Extract(pair)
	if err != nil {
		return nil, errors.NewComputation(err)
	}

	score := risk.Score(extraction.Variants, extraction.Substitutions, extraction.Indels, len(input.Reference))

	return &Result{
		Variants: extraction.Variants,
		Summary: Summary{
			TotalVariants:   len(extraction.Variants),
			Substitutions:   extraction.Substitutions,
			Indels:          extraction.Indels,
			ReferenceLength: len(input.Reference),
			RiskScore:       score,
		},
	}, nil
}
