// Package kdtree is a bounding-volume tree over the bounded shapes of a scene.
// It only prunes candidates; callers still run the exact intersection test on
// everything a query visits.
package kdtree

import (
	"math"
	"math/rand"

	"lumen/aabox"
)

type KDElement struct {
	// A handle back into some other storage array.
	Ref int

	// The bounds of this element.
	Bounds aabox.AABox
}

type KDNode struct {
	Bounds aabox.AABox

	Elements []KDElement

	LoChild *KDNode
	HiChild *KDNode
}

// trialCuts is the number of random split planes tried on each axis.
const trialCuts = 5

type split struct {
	objective float64
	lo, hi    []KDElement
	loB, hiB  aabox.AABox
}

func evaluateSplit(elements []KDElement, axis int, cut float64) split {
	s := split{
		loB: aabox.AccumZeroAABox(),
		hiB: aabox.AccumZeroAABox(),
	}
	for _, element := range elements {
		if element.Bounds.Center()[axis] < cut {
			s.lo = append(s.lo, element)
			s.loB = aabox.MinContainingAABox(s.loB, element.Bounds)
		} else {
			s.hi = append(s.hi, element)
			s.hiB = aabox.MinContainingAABox(s.hiB, element.Bounds)
		}
	}

	if len(s.lo) == 0 || len(s.hi) == 0 {
		// Doesn't divide anything.
		s.objective = math.Inf(1)
		return s
	}

	s.objective = float64(len(s.lo))*s.loB.SurfaceArea() + float64(len(s.hi))*s.hiB.SurfaceArea()
	return s
}

func (cur *KDNode) refineViaSurfaceAreaHeuristic(splitCost, terminationThreshold float64, rng *rand.Rand) {
	best := split{objective: math.Inf(1)}

	for axis := 0; axis < 3; axis++ {
		for i := 0; i < trialCuts; i++ {
			trialCut := cur.Elements[rng.Intn(len(cur.Elements))].Bounds.Center()[axis]
			candidate := evaluateSplit(cur.Elements, axis, trialCut)
			if candidate.objective < best.objective {
				best = candidate
			}
		}
	}

	if math.IsInf(best.objective, 1) {
		return
	}

	// Only split if it is a good-enough improvement over leaving the node as
	// a leaf.
	parentObjective := float64(len(cur.Elements)) * cur.Bounds.SurfaceArea()
	if best.objective+splitCost >= terminationThreshold*parentObjective {
		return
	}

	cur.LoChild = &KDNode{
		Bounds:   best.loB,
		Elements: best.lo,
	}
	cur.HiChild = &KDNode{
		Bounds:   best.hiB,
		Elements: best.hi,
	}

	// All of cur's elements have been divided among its children.
	cur.Elements = nil
}

type KDTree struct {
	Root *KDNode
}

func NewKDTree(elements []KDElement) *KDTree {
	tree := &KDTree{}

	maxBox := aabox.AccumZeroAABox()
	for _, element := range elements {
		maxBox = aabox.MinContainingAABox(maxBox, element.Bounds)
	}

	tree.Root = &KDNode{
		Bounds:   maxBox,
		Elements: elements,
	}

	return tree
}

// RefineViaSurfaceAreaHeuristic splits leaves while the surface area
// heuristic says a split is cheaper to query than the leaf.  The trial cuts
// come from a fixed seed, so the same elements always give the same tree.
func (t *KDTree) RefineViaSurfaceAreaHeuristic(splitCost, threshold float64) {
	rng := rand.New(rand.NewSource(12345))

	workStack := []*KDNode{t.Root}
	for len(workStack) != 0 {
		cur := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		if len(cur.Elements) < 2 {
			continue
		}

		cur.refineViaSurfaceAreaHeuristic(splitCost, threshold, rng)

		if cur.LoChild != nil {
			workStack = append(workStack, cur.LoChild)
		}
		if cur.HiChild != nil {
			workStack = append(workStack, cur.HiChild)
		}
	}
}

// Size returns the number of elements stored in the tree.
func (t *KDTree) Size() int {
	count := 0
	workStack := []*KDNode{t.Root}
	for len(workStack) != 0 {
		cur := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		count += len(cur.Elements)
		if cur.LoChild != nil {
			workStack = append(workStack, cur.LoChild)
		}
		if cur.HiChild != nil {
			workStack = append(workStack, cur.HiChild)
		}
	}
	return count
}

type KDSelector func(b aabox.AABox) bool
type KDVisitor func(i int)

// Query calls visitor with the Ref of every element whose bounds, and whose
// ancestors' bounds, pass selector.  selector is re-evaluated as the query
// proceeds, so it may tighten between calls.
func (t *KDTree) Query(selector KDSelector, visitor KDVisitor) {
	workStack := []*KDNode{t.Root}
	for len(workStack) != 0 {
		cur := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		if !selector(cur.Bounds) {
			continue
		}

		for i := range cur.Elements {
			if !selector(cur.Elements[i].Bounds) {
				continue
			}
			visitor(cur.Elements[i].Ref)
		}

		if cur.LoChild != nil {
			workStack = append(workStack, cur.LoChild)
		}
		if cur.HiChild != nil {
			workStack = append(workStack, cur.HiChild)
		}
	}
}
