package game

// Prisoners holds the number of stones each side has captured.
type Prisoners struct {
	Black int `json:"black" bson:"black"`
	White int `json:"white" bson:"white"`
}

func (p *Prisoners) add(captor Stone, n int) {
	switch captor {
	case Black:
		p.Black += n
	case White:
		p.White += n
	}
}

// RejectReason says why AttemptMove refused a placement.
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectOutOfBounds
	RejectOccupied
	RejectSuicide
)

func (r RejectReason) String() string {
	switch r {
	case RejectOutOfBounds:
		return "out_of_bounds"
	case RejectOccupied:
		return "occupied"
	case RejectSuicide:
		return "suicide"
	}
	return ""
}

// MoveResult is what AttemptMove reports back to the caller. The engine
// never decides feedback itself; the presentation layer picks accept or
// reject cues from this.
type MoveResult struct {
	Accepted  bool
	Reason    RejectReason
	Cell      Cell
	Color     Stone
	Captured  []Cell
	Prisoners Prisoners
}

// GameState owns one game: the board, the side to move, and the
// prisoner counters. It is mutated exclusively through AttemptMove.
type GameState struct {
	board     *Board
	toMove    Stone
	prisoners Prisoners
}

// NewGameState starts a game on an empty size×size board, Black to
// move, no prisoners. Fails for size < 2.
func NewGameState(size int) (*GameState, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &GameState{board: board, toMove: Black}, nil
}

// Snapshot returns a copy of the current board for rendering. Mutating
// the copy does not affect the game.
func (g *GameState) Snapshot() *Board {
	return g.board.Clone()
}

// At returns the stone currently at a cell.
func (g *GameState) At(c Cell) Stone {
	return g.board.At(c)
}

func (g *GameState) Size() int {
	return g.board.size
}

// ToMove returns the side whose turn it is.
func (g *GameState) ToMove() Stone {
	return g.toMove
}

// Prisoners returns the current capture counters.
func (g *GameState) Prisoners() Prisoners {
	return g.prisoners
}

// AttemptMove places a stone of the side to move at (col, row) and
// resolves the consequences. Rejected moves (out of bounds, occupied,
// suicide) leave the game completely unchanged. Capture resolution runs
// before the suicide check: a placement that captures can never be
// suicide, because removing the captured stones vacates at least one
// adjacent liberty for the placed group. There is no Ko detection; a
// position may legally repeat.
func (g *GameState) AttemptMove(col, row int) MoveResult {
	color := g.toMove
	cell := Cell{Col: col, Row: row}
	res := MoveResult{Cell: cell, Color: color, Prisoners: g.prisoners}

	if !g.board.Contains(cell) {
		res.Reason = RejectOutOfBounds
		return res
	}
	if g.board.At(cell) != Empty {
		res.Reason = RejectOccupied
		return res
	}

	// Tentative placement.
	g.board.set(cell, color)

	// Phase 1: remove every opposing group that lost its last liberty.
	// Zero, one, or several groups may go at once.
	for _, group := range g.board.StoneGroups(color.Opponent()) {
		if !g.board.HasNoLiberties(group) {
			continue
		}
		for _, c := range group {
			g.board.set(c, Empty)
		}
		g.prisoners.add(color, len(group))
		res.Captured = append(res.Captured, group...)
	}

	// Phase 2: only when nothing was captured can the placement be
	// suicide. The flood fill starts at the placed cell, so the placed
	// cell is in its own group by construction.
	if len(res.Captured) == 0 {
		own := g.board.groupAt(cell)
		if g.board.HasNoLiberties(own) {
			g.board.set(cell, Empty)
			res.Reason = RejectSuicide
			return res
		}
	}

	g.toMove = color.Opponent()
	res.Accepted = true
	res.Prisoners = g.prisoners
	return res
}
