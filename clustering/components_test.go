package clustering

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestComponentFinder(t *testing.T) {
	f := NewComponentFinder()
	expect.EQ(t, f.Find(10), 10)

	f.Merge(10, 20)
	f.Merge(20, 30)
	expect.EQ(t, f.Find(30), 10)
	expect.EQ(t, f.Find(20), 10)

	// Separate component stays separate.
	f.Merge(100, 200)
	expect.EQ(t, f.Find(200), 100)
	expect.EQ(t, f.Find(10), 10)

	// The smaller representative wins regardless of merge order.
	f.Merge(5, 10)
	expect.EQ(t, f.Find(30), 5)
	f.Merge(100, 30)
	expect.EQ(t, f.Find(200), 5)
}

func TestComponentFinderIdempotentMerge(t *testing.T) {
	f := NewComponentFinder()
	f.Merge(1, 2)
	f.Merge(1, 2)
	f.Merge(2, 1)
	expect.EQ(t, f.Find(2), 1)
}
