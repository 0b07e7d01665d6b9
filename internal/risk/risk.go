// Package risk turns a variant list into a bounded heuristic score.
package risk

import (
	"sort"

	"github.com/varwatch/varwatch/internal/variant"
)

// clusterWindow is the width, in reference coordinates, of the sliding
// window used to measure spatial concentration. Positions within 50
// units of each other count as one cluster.
const clusterWindow = 50

// Score rates a variant set on a 0..100 scale. The score grows with
// variant density (indels weigh twice substitutions) and with spatial
// clustering: the same variants packed into one window outscore them
// spread across the reference.
//
// The scale is a surveillance heuristic, not a calibrated biological
// metric. A zero-length reference scores 0.
func Score(variants []variant.Variant, substitutions, indels, referenceLength int) int {
	if referenceLength == 0 {
		return 0
	}

	base := float64(substitutions+2*indels) / float64(max(1, referenceLength))
	factor := clusterFactor(variants)

	raw := base * factor * 200
	return clamp(int(raw), 0, 100)
}

// clusterFactor measures how tightly the variants group. With fewer
// than two variants there is nothing to cluster and the factor is 1.
// Otherwise it is 1 + maxWithin/total, where maxWithin is the largest
// number of variants falling inside any one window.
func clusterFactor(variants []variant.Variant) float64 {
	if len(variants) < 2 {
		return 1.0
	}

	positions := make([]int, len(variants))
	for i, v := range variants {
		positions[i] = v.Pos
	}
	sort.Ints(positions)

	maxWithin := 0
	j := 0
	for i := range positions {
		if j < i {
			j = i
		}
		for j < len(positions) && positions[j]-positions[i] <= clusterWindow {
			j++
		}
		if j-i > maxWithin {
			maxWithin = j - i
		}
	}

	return 1.0 + float64(maxWithin)/float64(len(positions))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
