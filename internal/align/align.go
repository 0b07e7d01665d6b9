// Package align produces gapped global alignments of two sequences.
//
// The alignment maximizes the number of positions where both sequences
// carry the same symbol. Matches reward 1; mismatches and gaps cost
// nothing. With no penalties there are usually many optimal paths, so
// traceback applies a fixed preference order to keep output reproducible:
// diagonal first, then consuming a reference symbol (gap in the sample),
// then consuming a sample symbol (gap in the reference).
package align

import (
	"github.com/varwatch/varwatch/internal/genome"
)

// Align pads ref and sample to a common length with gap markers so that
// the count of agreeing positions is maximal.
//
// Equal-length inputs are returned unchanged, mismatches and all; the
// dynamic program only runs when an insertion or deletion must exist.
// An empty side comes back fully gapped against the other, and two empty
// inputs yield an empty pair.
func Align(ref, sample genome.Sequence) genome.AlignedPair {
	if len(ref) == len(sample) {
		return genome.AlignedPair{Ref: ref, Sample: sample}
	}

	r, s := string(ref), string(sample)
	score := buildScoreTable(r, s)
	alignedRef, alignedSample := traceback(r, s, score)

	return genome.AlignedPair{
		Ref:    genome.Sequence(alignedRef),
		Sample: genome.Sequence(alignedSample),
	}
}

// buildScoreTable fills the (m+1)x(n+1) match-count table. Cell [i][j]
// holds the best number of matches attainable aligning r[:i] with s[:j].
// Rows slice one backing array to keep this a single allocation; scores
// never exceed min(m, n), so int32 cells are plenty.
func buildScoreTable(r, s string) [][]int32 {
	m, n := len(r), len(s)

	cells := make([]int32, (m+1)*(n+1))
	score := make([][]int32, m+1)
	for i := range score {
		score[i] = cells[i*(n+1) : (i+1)*(n+1)]
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			best := score[i-1][j-1]
			if r[i-1] == s[j-1] {
				best++
			}
			if up := score[i-1][j]; up > best {
				best = up
			}
			if left := score[i][j-1]; left > best {
				best = left
			}
			score[i][j] = best
		}
	}
	return score
}

// traceback rebuilds one optimal path from the bottom-right cell. Where
// several moves reach the cell's score it prefers diagonal, then up
// (reference symbol against a sample gap), then left (sample symbol
// against a reference gap).
func traceback(r, s string, score [][]int32) (string, string) {
	m, n := len(r), len(s)

	refBuf := make([]byte, 0, m+n)
	smpBuf := make([]byte, 0, m+n)

	i, j := m, n
	for i > 0 && j > 0 {
		diag := score[i-1][j-1]
		if r[i-1] == s[j-1] {
			diag++
		}
		switch {
		case score[i][j] == diag:
			refBuf = append(refBuf, r[i-1])
			smpBuf = append(smpBuf, s[j-1])
			i--
			j--
		case score[i][j] == score[i-1][j]:
			refBuf = append(refBuf, r[i-1])
			smpBuf = append(smpBuf, genome.Gap)
			i--
		default:
			refBuf = append(refBuf, genome.Gap)
			smpBuf = append(smpBuf, s[j-1])
			j--
		}
	}
	for i > 0 {
		refBuf = append(refBuf, r[i-1])
		smpBuf = append(smpBuf, genome.Gap)
		i--
	}
	for j > 0 {
		refBuf = append(refBuf, genome.Gap)
		smpBuf = append(smpBuf, s[j-1])
		j--
	}

	reverse(refBuf)
	reverse(smpBuf)
	return string(refBuf), string(smpBuf)
}

func reverse(b []byte) {
	for lo, hi := 0, len(b)-1; lo < hi; lo, hi = lo+1, hi-1 {
		b[lo], b[hi] = b[hi], b[lo]
	}
}
