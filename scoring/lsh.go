package scoring

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
	"github.com/minio/highwayhash"

	"github.com/haplotools/polyphase/readset"
)

// Minhash signature layout: lshBands bands of lshRows rows each. Reads whose
// signatures collide in at least one band become candidate pairs.
const (
	lshBands = 6
	lshRows  = 4
	lshFuncs = lshBands * lshRows
)

// Fixed key for the band hash. Any 32 bytes work; determinism is what
// matters.
var lshBandKey = [32]byte{
	0x68, 0x61, 0x70, 0x6c, 0x6f, 0x74, 0x6f, 0x6f,
	0x6c, 0x73, 0x2f, 0x70, 0x6f, 0x6c, 0x79, 0x70,
	0x68, 0x61, 0x73, 0x65, 0x2f, 0x6c, 0x73, 0x68,
	0x2f, 0x62, 0x61, 0x6e, 0x64, 0x6b, 0x65, 0x79,
}

// minhashSignature computes the read's minhash signature over its
// (position, allele) tokens. Hash function h is farm hash seeded with h.
func minhashSignature(r *readset.Read, sig *[lshFuncs]uint64) {
	var token [12]byte
	for h := 0; h < lshFuncs; h++ {
		sig[h] = ^uint64(0)
	}
	for _, v := range r.Variants {
		binary.LittleEndian.PutUint64(token[:8], uint64(v.Position))
		binary.LittleEndian.PutUint32(token[8:], uint32(v.Allele))
		for h := 0; h < lshFuncs; h++ {
			hash := farm.Hash64WithSeed(token[:], uint64(h)*0x9e3779b97f4a7c15+1)
			if hash < sig[h] {
				sig[h] = hash
			}
		}
	}
}

// LocalitySensitiveScore approximates Score without an error model: minhash
// signatures over (position, allele) tokens select candidate pairs, and each
// candidate sharing at least minOverlap positions is weighted by its allele
// agreement (matches minus mismatches). Reads never bucketed together are
// absent from the result. The error-rate parameter of the calibrated scorer
// has no counterpart here.
func LocalitySensitiveScore(column *readset.ReadSet, ploidy, minOverlap int) Similarities {
	signatures := make([][lshFuncs]uint64, column.Len())
	for i := 0; i < column.Len(); i++ {
		minhashSignature(column.Get(i), &signatures[i])
	}

	// Bucket reads per band; reads sharing a bucket become candidates.
	candidates := map[Pair]bool{}
	var bandBuf [8 * (lshRows + 1)]byte
	for band := 0; band < lshBands; band++ {
		buckets := map[uint64][]int{}
		for i := 0; i < column.Len(); i++ {
			binary.LittleEndian.PutUint64(bandBuf[:8], uint64(band))
			for row := 0; row < lshRows; row++ {
				binary.LittleEndian.PutUint64(bandBuf[8*(row+1):], signatures[i][band*lshRows+row])
			}
			key := highwayhash.Sum64(bandBuf[:], lshBandKey[:])
			buckets[key] = append(buckets[key], i)
		}
		for _, members := range buckets {
			for x := 0; x < len(members); x++ {
				for y := x + 1; y < len(members); y++ {
					candidates[MakePair(members[x], members[y])] = true
				}
			}
		}
	}

	sims := Similarities{}
	for pair := range candidates {
		shared, matches := sharedAlleles(column.Get(pair.A), column.Get(pair.B))
		if shared < minOverlap {
			continue
		}
		sims[pair] = float64(matches - (shared - matches))
	}
	return sims
}
