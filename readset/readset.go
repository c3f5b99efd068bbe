// Package readset provides the in-memory model for sequencing reads reduced
// to their variant observations: a Read is an ordered list of
// (position, allele, quality) tuples, and a ReadSet is a collection of Reads
// supporting the subsetting and position-enumeration operations needed by the
// matrix transformation.
package readset

import (
	"sort"
	"strings"

	"github.com/grailbio/base/log"
)

// Variant is one observation of a read at a genomic position. For input
// reads, Allele is the observed allele index and Quality typically holds a
// single phred-scaled entry. For transformed reads, Allele is the assigned
// cluster id and Quality is the per-cluster cost vector.
type Variant struct {
	Position int
	Allele   int
	Quality  []int
}

// Read is an ordered sequence of variant observations for one sequencing
// fragment. Variant positions are strictly increasing; Covers relies on this.
type Read struct {
	Name     string
	MapQ     int
	SourceID int
	SampleID int
	Variants []Variant
}

// NewRead returns an empty Read with the given identity attributes.
func NewRead(name string, mapQ, sourceID, sampleID int) *Read {
	return &Read{Name: name, MapQ: mapQ, SourceID: sourceID, SampleID: sampleID}
}

// AddVariant appends an observation. Callers must add variants in ascending
// position order; AddVariant does not reorder. Ordering violations are
// detected downstream, when the read is assembled into a ReadSet output.
func (r *Read) AddVariant(position, allele int, quality []int) {
	r.Variants = append(r.Variants, Variant{Position: position, Allele: allele, Quality: quality})
}

// Len returns the number of variants in the read.
func (r *Read) Len() int { return len(r.Variants) }

// FirstPosition returns the position of the read's first variant.
func (r *Read) FirstPosition() int {
	if len(r.Variants) == 0 {
		log.Panicf("readset: FirstPosition on empty read %q", r.Name)
	}
	return r.Variants[0].Position
}

// Covers reports whether the read has a variant at the given position.
func (r *Read) Covers(position int) bool {
	i := sort.Search(len(r.Variants), func(i int) bool {
		return r.Variants[i].Position >= position
	})
	return i < len(r.Variants) && r.Variants[i].Position == position
}

// ReadSet is a collection of Reads. The zero value is not usable; call New.
type ReadSet struct {
	reads []*Read
}

// New returns an empty ReadSet.
func New() *ReadSet { return &ReadSet{} }

// Add appends a read to the set.
func (s *ReadSet) Add(r *Read) { s.reads = append(s.reads, r) }

// Len returns the number of reads in the set.
func (s *ReadSet) Len() int { return len(s.reads) }

// Get returns the i-th read.
func (s *ReadSet) Get(i int) *Read { return s.reads[i] }

// Subset returns a new ReadSet holding the reads at the given indices, in the
// given order. The reads themselves are shared, not copied.
func (s *ReadSet) Subset(indices []int) *ReadSet {
	sub := &ReadSet{reads: make([]*Read, 0, len(indices))}
	for _, i := range indices {
		sub.reads = append(sub.reads, s.reads[i])
	}
	return sub
}

// Positions returns all distinct variant positions across all reads, in
// ascending order.
func (s *ReadSet) Positions() []int {
	seen := map[int]bool{}
	for _, r := range s.reads {
		for _, v := range r.Variants {
			seen[v.Position] = true
		}
	}
	positions := make([]int, 0, len(seen))
	for p := range seen {
		positions = append(positions, p)
	}
	sort.Ints(positions)
	return positions
}

// Sort orders the set canonically: by sample id, then source id, then first
// variant position, then name. Empty reads sort before non-empty ones with
// the same identity.
func (s *ReadSet) Sort() {
	sort.SliceStable(s.reads, func(i, j int) bool {
		ri, rj := s.reads[i], s.reads[j]
		if ri.SampleID != rj.SampleID {
			return ri.SampleID < rj.SampleID
		}
		if ri.SourceID != rj.SourceID {
			return ri.SourceID < rj.SourceID
		}
		pi, pj := -1, -1
		if len(ri.Variants) > 0 {
			pi = ri.Variants[0].Position
		}
		if len(rj.Variants) > 0 {
			pj = rj.Variants[0].Position
		}
		if pi != pj {
			return pi < pj
		}
		return strings.Compare(ri.Name, rj.Name) < 0
	})
}
