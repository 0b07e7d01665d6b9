// Package genome holds the sequence value types shared by the alignment,
// variant, and scoring packages.
package genome

import (
	"strings"
	"unicode"
)

// Gap is the reserved marker inserted by alignment for an insertion or
// deletion. Input sequences never contain it; aligned sequences may.
const Gap byte = '-'

// Sequence is an immutable run of uppercase nucleotide symbols.
// Values are normalized once at construction; the analysis packages
// assume normalization has already happened.
type Sequence string

// NewSequence normalizes raw text into a Sequence: every whitespace
// character is dropped and letters are uppercased. Other symbols pass
// through untouched; the comparison stages treat them literally.
func NewSequence(raw string) Sequence {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return Sequence(b.String())
}

// String returns the underlying symbols.
func (s Sequence) String() string {
	return string(s)
}

// AlignedPair is a reference/sample pair padded to equal length with gap
// markers. Produced by align.Align, either via the identity path (equal
// input lengths, no gaps) or via the global alignment.
type AlignedPair struct {
	Ref    Sequence
	Sample Sequence
}
