package constraint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/they4kman/minesweep/director/random"
	"github.com/they4kman/minesweep/game"
	"github.com/they4kman/minesweep/util/collections"
)

// Passes of subset splitting performed per action
const simplifyPasses = 4

// Director plays from what revealed numbers say about their covered
// neighbours: certain mines are flagged, certain safe cells clicked, and
// otherwise it guesses the least likely mine.
type Director struct {
	board  *game.Board
	random random.Director

	observations []*Observation
}

// Observation states that exactly numMines of cells are mines
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[*game.Cell]
}

func (observation Observation) String() string {
	cells := make([]string, 0, len(observation.cells))
	for _, cell := range sortedCells(observation.cells) {
		cells = append(cells, fmt.Sprintf("(%d, %d)", cell.Row(), cell.Col()))
	}

	var originRepr string
	if observation.origin == nil {
		originRepr = "?"
	} else {
		originRepr = fmt.Sprintf("(%d, %d)", observation.origin.Row(), observation.origin.Col())
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cells, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.observations = nil
	director.random.Init(board)
}

func (director *Director) Act() (game.CellAction, bool) {
	if director.board == nil || director.board.State().IsOver() {
		return game.CellAction{}, false
	}

	director.observe()
	for i := 0; i < simplifyPasses; i++ {
		if !director.simplifyObservations() {
			break
		}
	}

	actors := []func() (game.CellAction, bool){
		director.actDeliberate,
		director.actLowestProbability,
		director.random.Act,
	}
	for _, actor := range actors {
		if cellAction, ok := actor(); ok {
			return cellAction, true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) End() {
	director.board = nil
	director.observations = nil
	director.random.End()
}

// observe records one observation per revealed number bordering covered cells
func (director *Director) observe() {
	director.observations = director.observations[:0]

	for _, cell := range director.board.Cells() {
		state := cell.State()
		if !cell.IsRevealed() || !state.IsNumber() {
			continue
		}

		observation := &Observation{
			origin:   cell,
			numMines: int(state),
			cells:    make(collections.Set[*game.Cell]),
		}
		for _, neighbor := range cell.Neighbors() {
			if neighbor.IsRevealed() {
				continue
			}
			if neighbor.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(neighbor)
			}
		}

		director.addObservation(observation)
	}
}

// simplifyObservations splits observations containing another, so that
// {a,b,c}=2 and {a,b}=1 also yield {c}=1. It reports whether anything was added.
func (director *Director) simplifyObservations() bool {
	added := false
	observations := director.observations

	for _, observation := range observations {
		for _, containing := range observations {
			if containing == observation || len(containing.cells) <= len(observation.cells) {
				continue
			}
			if !observation.cells.IsSubset(containing.cells) {
				continue
			}

			split := &Observation{
				numMines: containing.numMines - observation.numMines,
				cells:    containing.cells.Difference(observation.cells),
			}
			if director.addObservation(split) {
				added = true
			}
		}
	}
	return added
}

func (director *Director) addObservation(observation *Observation) bool {
	// Don't add vacuous observations
	if len(observation.cells) == 0 {
		return false
	}
	// Don't add duplicates
	for _, other := range director.observations {
		if other.cells.Equal(observation.cells) {
			return false
		}
	}

	director.observations = append(director.observations, observation)
	return true
}

func (director *Director) actDeliberate() (game.CellAction, bool) {
	for _, observation := range director.observations {
		switch {
		case observation.numMines == len(observation.cells):
			return sortedCells(observation.cells)[0].RightClick(), true
		case observation.numMines == 0:
			return sortedCells(observation.cells)[0].Click(), true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) actLowestProbability() (game.CellAction, bool) {
	cellProbabilities := make(map[*game.Cell]float64)
	for _, observation := range director.observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if past, ok := cellProbabilities[cell]; !ok || probability > past {
				// A cell is only as safe as its most pessimistic observation
				cellProbabilities[cell] = probability
			}
		}
	}

	lowestProbability := math.Inf(1)
	var lowestProbabilityCells []*game.Cell
	for cell, probability := range cellProbabilities {
		switch {
		case probability < lowestProbability:
			lowestProbability = probability
			lowestProbabilityCells = []*game.Cell{cell}
		case probability == lowestProbability:
			lowestProbabilityCells = append(lowestProbabilityCells, cell)
		}
	}
	if len(lowestProbabilityCells) == 0 {
		return game.CellAction{}, false
	}

	sort.Slice(lowestProbabilityCells, func(i, j int) bool {
		return lowestProbabilityCells[i].Idx() < lowestProbabilityCells[j].Idx()
	})
	pick := director.board.Rand().Intn(len(lowestProbabilityCells))
	return lowestProbabilityCells[pick].Click(), true
}

func sortedCells(cells collections.Set[*game.Cell]) []*game.Cell {
	sorted := make([]*game.Cell, 0, len(cells))
	for cell := range cells {
		sorted = append(sorted, cell)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Idx() < sorted[j].Idx()
	})
	return sorted
}
