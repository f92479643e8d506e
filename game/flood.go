package game

import (
	"github.com/gammazero/deque"
	"github.com/they4kman/minesweep/util/collections"
)

type NeighborGetter func(*Cell) []*Cell

// Visitor handles one cell of the flood, returning whether the flood should
// continue through its neighbours
type Visitor func(*Cell) bool

// flood walks outward from cell breadth-first, visiting each cell at most once
func flood(cell *Cell, visit Visitor, getNeighbors NeighborGetter) {
	visited := make(collections.Set[int])
	var visitQueue deque.Deque

	visited.Add(cell.idx)
	visitQueue.PushBack(cell)

	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(*Cell)
		if !visit(cell) {
			continue
		}

		for _, neighbor := range getNeighbors(cell) {
			if visited.Contains(neighbor.idx) {
				continue
			}
			visited.Add(neighbor.idx)
			visitQueue.PushBack(neighbor)
		}
	}
}
