package readset

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
)

func testRead(name string, positions ...int) *Read {
	r := NewRead(name, 60, 0, 0)
	for _, p := range positions {
		r.AddVariant(p, 0, []int{30})
	}
	return r
}

func TestReadCovers(t *testing.T) {
	r := testRead("r1", 100, 150, 170)
	expect.True(t, r.Covers(100))
	expect.True(t, r.Covers(150))
	expect.True(t, r.Covers(170))
	expect.False(t, r.Covers(99))
	expect.False(t, r.Covers(120))
	expect.False(t, r.Covers(171))
	expect.EQ(t, r.FirstPosition(), 100)
	expect.EQ(t, r.Len(), 3)
}

func TestPositions(t *testing.T) {
	s := New()
	s.Add(testRead("r1", 100, 150))
	s.Add(testRead("r2", 150, 170))
	s.Add(testRead("r3", 90))
	expect.EQ(t, s.Positions(), []int{90, 100, 150, 170})

	empty := New()
	expect.EQ(t, len(empty.Positions()), 0)
}

func TestSubset(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		s.Add(testRead(name, 100))
	}
	sub := s.Subset([]int{2, 0})
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, "c", sub.Get(0).Name)
	assert.Equal(t, "a", sub.Get(1).Name)
	// Reads are shared, not copied.
	assert.True(t, sub.Get(0) == s.Get(2))
}

func TestSort(t *testing.T) {
	s := New()
	late := testRead("zz", 500)
	early := testRead("aa", 100)
	samePos := testRead("bb", 100)
	otherSample := testRead("aa", 50)
	otherSample.SampleID = 1
	s.Add(late)
	s.Add(samePos)
	s.Add(otherSample)
	s.Add(early)
	s.Sort()

	var names []string
	for i := 0; i < s.Len(); i++ {
		names = append(names, s.Get(i).Name)
	}
	// Sample 0 first; within it ascending first position, then name.
	assert.Equal(t, []string{"aa", "bb", "zz", "aa"}, names)
	assert.Equal(t, 1, s.Get(3).SampleID)
}
