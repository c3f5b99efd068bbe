package clustering

// ComponentFinder is a union-find over arbitrary integer keys, used to group
// variant positions into connected components. The representative of a
// component is its smallest merged-in key, so component ids are stable across
// runs regardless of merge order.
type ComponentFinder struct {
	parent map[int]int
}

// NewComponentFinder returns an empty finder.
func NewComponentFinder() *ComponentFinder {
	return &ComponentFinder{parent: map[int]int{}}
}

// Find returns the representative of x's component, registering x as its own
// component if unseen.
func (f *ComponentFinder) Find(x int) int {
	root, ok := f.parent[x]
	if !ok {
		f.parent[x] = x
		return x
	}
	if root == x {
		return x
	}
	root = f.Find(root)
	f.parent[x] = root // path compression
	return root
}

// Merge joins the components of a and b. The smaller representative wins.
func (f *ComponentFinder) Merge(a, b int) {
	ra, rb := f.Find(a), f.Find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	f.parent[rb] = ra
}
