// Package variant extracts positional differences from an aligned
// sequence pair.
package variant

import (
	"fmt"

	"github.com/varwatch/varwatch/internal/genome"
)

// Type classifies a variant.
type Type string

const (
	TypeSubstitution Type = "substitution"
	TypeIndel        Type = "indel"
)

// Variant is one difference between the reference and the sample, in
// 1-based reference coordinates. Exactly one of Ref/Alt is the gap marker
// for an indel; neither is for a substitution.
type Variant struct {
	Pos  int    `json:"pos"`
	Ref  string `json:"ref"`
	Alt  string `json:"alt"`
	Type Type   `json:"type"`
}

// Extraction bundles the variant list with its per-type tallies.
// Substitutions + Indels always equals len(Variants).
type Extraction struct {
	Variants      []Variant
	Substitutions int
	Indels        int
}

// Extract scans an aligned pair in lockstep and reports every position
// where the two sides disagree. A pair whose sides differ in length is an
// invariant violation and aborts the call.
//
// pos counts reference residues consumed so far, so a variant's
// coordinate is pos+1: the reference residue at the current column, or,
// when the reference side holds a gap, the next reference residue.
// Variants are emitted in column order; coordinates never decrease.
func Extract(pair genome.AlignedPair) (Extraction, error) {
	ref, sample := string(pair.Ref), string(pair.Sample)
	if len(ref) != len(sample) {
		return Extraction{}, fmt.Errorf("aligned pair length mismatch: reference %d, sample %d", len(ref), len(sample))
	}

	ext := Extraction{Variants: make([]Variant, 0)}
	pos := 0
	for i := 0; i < len(ref); i++ {
		r, s := ref[i], sample[i]
		if r == s {
			if r != genome.Gap {
				pos++
			}
			continue
		}

		v := Variant{
			Pos: pos + 1,
			Ref: string(r),
			Alt: string(s),
		}
		if r == genome.Gap || s == genome.Gap {
			v.Type = TypeIndel
			ext.Indels++
		} else {
			v.Type = TypeSubstitution
			ext.Substitutions++
		}
		ext.Variants = append(ext.Variants, v)

		if r != genome.Gap {
			pos++
		}
	}
	return ext, nil
}
