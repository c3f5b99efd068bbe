package scoring

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haplotools/polyphase/readset"
)

func testRead(name string, alleles map[int]int) *readset.Read {
	r := readset.NewRead(name, 60, 0, 0)
	positions := make([]int, 0, len(alleles))
	for p := range alleles {
		positions = append(positions, p)
	}
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if positions[j] < positions[i] {
				positions[i], positions[j] = positions[j], positions[i]
			}
		}
	}
	for _, p := range positions {
		r.AddVariant(p, alleles[p], []int{30})
	}
	return r
}

func testColumn(reads ...*readset.Read) *readset.ReadSet {
	s := readset.New()
	for _, r := range reads {
		s.Add(r)
	}
	return s
}

func TestMakePair(t *testing.T) {
	expect.EQ(t, MakePair(3, 1), Pair{1, 3})
	expect.EQ(t, MakePair(1, 3), Pair{1, 3})
}

func TestSimilaritiesSetGet(t *testing.T) {
	sims := Similarities{}
	sims.Set(4, 2, 1.5)
	w, ok := sims.Get(2, 4)
	expect.True(t, ok)
	expect.EQ(t, w, 1.5)
	_, ok = sims.Get(0, 1)
	expect.False(t, ok)
}

func TestScoreAgreement(t *testing.T) {
	hapA := testRead("a", map[int]int{1: 0, 2: 0, 3: 0})
	hapA2 := testRead("a2", map[int]int{1: 0, 2: 0, 3: 0})
	hapB := testRead("b", map[int]int{1: 1, 2: 1, 3: 1})
	sims := Score(testColumn(hapA, hapA2, hapB), 2, 0.05, 2)

	same, ok := sims.Get(0, 1)
	require.True(t, ok)
	assert.True(t, same > 0, "agreeing reads must score positive, got %v", same)

	diff, ok := sims.Get(0, 2)
	require.True(t, ok)
	assert.True(t, diff < 0, "disagreeing reads must score negative, got %v", diff)
}

func TestScoreMinOverlap(t *testing.T) {
	left := testRead("left", map[int]int{1: 0, 2: 0})
	right := testRead("right", map[int]int{2: 0, 3: 0})
	// One shared position only.
	sims := Score(testColumn(left, right), 2, 0.05, 2)
	_, ok := sims.Get(0, 1)
	expect.False(t, ok)

	sims = Score(testColumn(left, right), 2, 0.05, 1)
	_, ok = sims.Get(0, 1)
	expect.True(t, ok)
}

func TestScoreDeterministic(t *testing.T) {
	column := testColumn(
		testRead("a", map[int]int{1: 0, 2: 1, 3: 0}),
		testRead("b", map[int]int{1: 0, 2: 1, 4: 1}),
		testRead("c", map[int]int{2: 0, 3: 1, 4: 0}),
	)
	first := Score(column, 2, 0.1, 2)
	second := Score(column, 2, 0.1, 2)
	assert.Equal(t, first, second)
}
