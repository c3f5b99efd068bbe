// Package scoring computes pairwise read-similarity weights for a column of
// reads covering one variant position. Positive weights mean the two reads
// likely originate from the same haplotype, negative weights the opposite.
// Pairs without enough shared positions are absent from the result, which is
// distinct from a zero weight.
package scoring

import (
	"math"

	"github.com/haplotools/polyphase/readset"
)

// Pair is an unordered pair of column-local read indices, stored with A < B.
type Pair struct {
	A, B int
}

// MakePair normalizes (i, j) into canonical order.
func MakePair(i, j int) Pair {
	if i < j {
		return Pair{i, j}
	}
	return Pair{j, i}
}

// Similarities is a sparse mapping from read-index pairs to similarity
// weights. An absent pair means no similarity was computed for it.
type Similarities map[Pair]float64

// Set records the weight for the unordered pair (i, j).
func (s Similarities) Set(i, j int, w float64) { s[MakePair(i, j)] = w }

// Get returns the weight for the unordered pair (i, j) and whether one was
// computed.
func (s Similarities) Get(i, j int) (float64, bool) {
	w, ok := s[MakePair(i, j)]
	return w, ok
}

// sharedAlleles merge-joins the variant lists of two reads and returns the
// number of shared positions and, of those, the number with matching alleles.
func sharedAlleles(a, b *readset.Read) (shared, matches int) {
	i, j := 0, 0
	for i < len(a.Variants) && j < len(b.Variants) {
		va, vb := a.Variants[i], b.Variants[j]
		switch {
		case va.Position < vb.Position:
			i++
		case va.Position > vb.Position:
			j++
		default:
			shared++
			if va.Allele == vb.Allele {
				matches++
			}
			i++
			j++
		}
	}
	return shared, matches
}

// Score computes calibrated similarity weights for all read pairs in the
// column that share at least minOverlap positions. The weight is the
// log-likelihood ratio of the two reads stemming from the same haplotype
// versus different haplotypes, given a per-allele error rate, plus a prior
// term for the chance of two random reads sharing one of ploidy haplotypes.
func Score(column *readset.ReadSet, ploidy int, errorRate float64, minOverlap int) Similarities {
	e := errorRate
	if e < 1e-6 {
		e = 1e-6
	}
	if e > 0.49 {
		e = 0.49
	}
	// Probability that two reads agree at a shared position, given that they
	// come from the same haplotype (both correct or both wrong the same way)
	// versus from two haplotypes with distinct alleles.
	pMatchSame := (1-e)*(1-e) + e*e
	pMatchDiff := 2 * e * (1 - e)
	matchTerm := math.Log(pMatchSame / pMatchDiff)
	mismatchTerm := math.Log((1 - pMatchSame) / (1 - pMatchDiff))
	prior := 0.0
	if ploidy > 1 {
		pSame := 1 / float64(ploidy)
		prior = math.Log(pSame / (1 - pSame))
	}

	sims := Similarities{}
	for i := 0; i < column.Len(); i++ {
		for j := i + 1; j < column.Len(); j++ {
			shared, matches := sharedAlleles(column.Get(i), column.Get(j))
			if shared < minOverlap {
				continue
			}
			w := float64(matches)*matchTerm + float64(shared-matches)*mismatchTerm + prior
			sims.Set(i, j, w)
		}
	}
	return sims
}

// DefaultOracle computes similarities with the package's Score and
// LocalitySensitiveScore functions. It satisfies transform.Oracle.
type DefaultOracle struct{}

// Score implements the calibrated error-model scorer.
func (DefaultOracle) Score(column *readset.ReadSet, ploidy int, errorRate float64, minOverlap int) Similarities {
	return Score(column, ploidy, errorRate, minOverlap)
}

// LocalitySensitiveScore implements the approximate fallback scorer.
func (DefaultOracle) LocalitySensitiveScore(column *readset.ReadSet, ploidy, minOverlap int) Similarities {
	return LocalitySensitiveScore(column, ploidy, minOverlap)
}
