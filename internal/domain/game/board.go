package game

import "fmt"

// Stone is the state of a single board intersection.
type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Cell addresses one intersection of the grid.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Board is a square grid of stones. The zero value is unusable,
// construct with NewBoard.
type Board struct {
	size  int
	cells []Stone // flat, index col*size+row
}

const minBoardSize = 2

func NewBoard(size int) (*Board, error) {
	if size < minBoardSize {
		return nil, fmt.Errorf("board size %d is below the minimum of %d", size, minBoardSize)
	}
	return &Board{
		size:  size,
		cells: make([]Stone, size*size),
	}, nil
}

func (b *Board) Size() int {
	return b.size
}

// Contains reports whether the cell lies on the board.
func (b *Board) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < b.size && c.Row >= 0 && c.Row < b.size
}

// At returns the stone at a cell. Cells off the board read as Empty.
func (b *Board) At(c Cell) Stone {
	if !b.Contains(c) {
		return Empty
	}
	return b.cells[c.Col*b.size+c.Row]
}

func (b *Board) set(c Cell, s Stone) {
	b.cells[c.Col*b.size+c.Row] = s
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Stone, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether two boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// IsValidMove reports whether a stone may be placed at (col, row):
// the cell must be on the board and empty. Suicide is not considered
// here; it can only be decided after capture resolution.
func (b *Board) IsValidMove(col, row int) bool {
	c := Cell{Col: col, Row: row}
	if !b.Contains(c) {
		return false
	}
	return b.At(c) == Empty
}

// neighbors appends the in-bounds orthogonal neighbors of c to dst
// and returns the extended slice.
func (b *Board) neighbors(c Cell, dst []Cell) []Cell {
	if c.Col > 0 {
		dst = append(dst, Cell{Col: c.Col - 1, Row: c.Row})
	}
	if c.Col < b.size-1 {
		dst = append(dst, Cell{Col: c.Col + 1, Row: c.Row})
	}
	if c.Row > 0 {
		dst = append(dst, Cell{Col: c.Col, Row: c.Row - 1})
	}
	if c.Row < b.size-1 {
		dst = append(dst, Cell{Col: c.Col, Row: c.Row + 1})
	}
	return dst
}

// groupAt flood-fills the maximal same-colored group containing start.
// Returns nil if start is empty or off the board. The returned group
// always contains start.
func (b *Board) groupAt(start Cell) []Cell {
	color := b.At(start)
	if color == Empty {
		return nil
	}
	seen := make(map[Cell]bool, 8)
	seen[start] = true
	group := []Cell{start}
	frontier := []Cell{start}
	var scratch [4]Cell
	for len(frontier) > 0 {
		c := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, adj := range b.neighbors(c, scratch[:0]) {
			if seen[adj] || b.At(adj) != color {
				continue
			}
			seen[adj] = true
			group = append(group, adj)
			frontier = append(frontier, adj)
		}
	}
	return group
}

// StoneGroups partitions all stones of the given color into maximal
// 4-connected groups. Every stone of that color appears in exactly one
// group; order of groups and of cells within a group is unspecified.
func (b *Board) StoneGroups(color Stone) [][]Cell {
	if color == Empty {
		return nil
	}
	assigned := make(map[Cell]bool)
	var groups [][]Cell
	for col := 0; col < b.size; col++ {
		for row := 0; row < b.size; row++ {
			c := Cell{Col: col, Row: row}
			if b.At(c) != color || assigned[c] {
				continue
			}
			group := b.groupAt(c)
			for _, member := range group {
				assigned[member] = true
			}
			groups = append(groups, group)
		}
	}
	return groups
}

// HasNoLiberties reports whether no cell of the group has an in-bounds
// empty orthogonal neighbor. Edge and corner cells simply have fewer
// neighbors to check; off-board never counts as a liberty.
func (b *Board) HasNoLiberties(group []Cell) bool {
	var scratch [4]Cell
	for _, c := range group {
		for _, adj := range b.neighbors(c, scratch[:0]) {
			if b.At(adj) == Empty {
				return false
			}
		}
	}
	return true
}
