package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Difficulty is a named board configuration
type Difficulty struct {
	Name  string
	Rows  int
	Cols  int
	Mines int
}

var (
	Easy   = Difficulty{Name: "easy", Rows: 6, Cols: 6, Mines: 4}
	Medium = Difficulty{Name: "medium", Rows: 16, Cols: 16, Mines: 40}
	Hard   = Difficulty{Name: "hard", Rows: 16, Cols: 30, Mines: 99}
)

// Difficulties lists the built-in presets, easiest first
var Difficulties = []Difficulty{Easy, Medium, Hard}

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// LookupDifficulty finds a preset by name, case-insensitively
func LookupDifficulty(name string) (Difficulty, error) {
	for _, difficulty := range Difficulties {
		if strings.EqualFold(difficulty.Name, name) {
			return difficulty, nil
		}
	}
	return Difficulty{}, errors.Wrapf(ErrUnknownDifficulty, "%q", name)
}

func (difficulty Difficulty) NumCells() int {
	return difficulty.Rows * difficulty.Cols
}

func (difficulty Difficulty) String() string {
	return difficulty.Name
}
