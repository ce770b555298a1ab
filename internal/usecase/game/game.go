package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/statuses"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string)
	PutMatch(ctx context.Context, match game.Match) error
	GetMatchByGameKey(ctx context.Context, gameKey string) (game.Match, error)
	GetMatchByPublicKey(ctx context.Context, gameKeyPublic string) (game.Match, error)
	SetPlayer(ctx context.Context, gameKey string, color game.Stone, playerID string) (game.Match, error)
	UpdatePrisoners(ctx context.Context, gameKey string, prisoners game.Prisoners) error
	HasPlayerActiveGame(ctx context.Context, playerID string) (bool, error)
}

// liveMatch pairs one engine state with its match record. The mutex is
// the turn-gate: every move attempt and every state read of a live
// match runs under it, so AttemptMove is atomic with respect to
// concurrent queries from the other client.
type liveMatch struct {
	mu    sync.Mutex
	match game.Match
	state *game.GameState
}

type GameUseCase struct {
	store GameStore
	log   *zap.SugaredLogger

	mu   sync.RWMutex
	live map[string]*liveMatch
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		store: store,
		log:   log,
		live:  make(map[string]*liveMatch),
	}
}

func (g *GameUseCase) CreateMatch(ctx context.Context, req game.CreateMatchRequest, creatorID string) (game.Match, error) {
	// Fail fast on a board the engine would refuse.
	if _, err := game.NewGameState(req.BoardSize); err != nil {
		return game.Match{}, fmt.Errorf("%w: %v", errs.ErrCreateGameFailed, err)
	}

	busy, err := g.store.HasPlayerActiveGame(ctx, creatorID)
	if err != nil {
		return game.Match{}, err
	}
	if busy {
		return game.Match{}, fmt.Errorf("%w: player already has an active game", errs.ErrCreateGameFailed)
	}

	gameKeySecret, gameKeyPublic := g.store.GenerateGameKeys(ctx)

	match := game.Match{
		BoardSize:     req.BoardSize,
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		Status:        statuses.StatusWaitOpponent,
		CreatedAt:     time.Now(),
	}
	if req.IsCreatorBlack {
		match.PlayerBlack = creatorID
	} else {
		match.PlayerWhite = creatorID
	}

	if err := g.store.PutMatch(ctx, match); err != nil {
		return game.Match{}, err
	}
	return match, nil
}

// JoinMatch adds the second player, by public code, to the free color slot.
func (g *GameUseCase) JoinMatch(ctx context.Context, gameKeyPublic string, playerID string) (game.Match, error) {
	match, err := g.store.GetMatchByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Match{}, err
	}

	if match.ColorOf(playerID) != game.Empty {
		return match, nil // already seated
	}
	if match.PlayerBlack != "" && match.PlayerWhite != "" {
		return game.Match{}, errs.ErrGameFull
	}

	color := game.Black
	if match.PlayerBlack != "" {
		color = game.White
	}

	updated, err := g.store.SetPlayer(ctx, match.GameKeySecret, color, playerID)
	if err != nil {
		return game.Match{}, err
	}
	return updated, nil
}

func (g *GameUseCase) GetMatchByPublicKey(ctx context.Context, gameKeyPublic string) (game.Match, error) {
	return g.store.GetMatchByPublicKey(ctx, gameKeyPublic)
}

func (g *GameUseCase) GetMatchByGameKey(ctx context.Context, gameKey string) (game.Match, error) {
	return g.store.GetMatchByGameKey(ctx, gameKey)
}

// SubmitMove runs one turn-gated move attempt: only the seated player
// whose color matches the engine's side-to-move gets through to
// AttemptMove. Engine rejections come back in the reply, not as errors.
func (g *GameUseCase) SubmitMove(ctx context.Context, gameKey string, playerID string, col, row int) (game.MoveReply, error) {
	lm, err := g.ensureLive(ctx, gameKey)
	if err != nil {
		return game.MoveReply{}, err
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	color := lm.match.ColorOf(playerID)
	if color == game.Empty {
		return game.MoveReply{}, errs.ErrNotInGame
	}
	if color != lm.state.ToMove() {
		return game.MoveReply{}, errs.ErrNotYourTurn
	}

	res := lm.state.AttemptMove(col, row)

	if res.Accepted && len(res.Captured) > 0 {
		// Mirror the counters into the match record, best effort.
		if err := g.store.UpdatePrisoners(ctx, gameKey, res.Prisoners); err != nil {
			g.log.Warnf("prisoner counters for game %s not mirrored: %v", gameKey, err)
		}
	}

	reply := game.MoveReply{
		Accepted:  res.Accepted,
		Reason:    res.Reason.String(),
		Color:     res.Color.String(),
		Cell:      res.Cell,
		Captured:  res.Captured,
		Prisoners: res.Prisoners,
		ToMove:    lm.state.ToMove().String(),
	}
	return reply, nil
}

// MatchState returns a rendering snapshot of a live match.
func (g *GameUseCase) MatchState(ctx context.Context, gameKey string) (game.MatchState, error) {
	lm, err := g.ensureLive(ctx, gameKey)
	if err != nil {
		return game.MatchState{}, err
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	board := lm.state.Snapshot()
	size := board.Size()
	cells := make([][]string, size)
	for col := 0; col < size; col++ {
		cells[col] = make([]string, size)
		for row := 0; row < size; row++ {
			if s := board.At(game.Cell{Col: col, Row: row}); s != game.Empty {
				cells[col][row] = s.String()
			}
		}
	}

	return game.MatchState{
		BoardSize: size,
		Cells:     cells,
		ToMove:    lm.state.ToMove().String(),
		Prisoners: lm.state.Prisoners(),
	}, nil
}

func (g *GameUseCase) IsPlayerInMatch(ctx context.Context, gameKey string, playerID string) bool {
	match, err := g.store.GetMatchByGameKey(ctx, gameKey)
	if err != nil {
		return false
	}
	return match.ColorOf(playerID) != game.Empty
}

// ensureLive returns the in-memory engine for a match, creating it on
// first use. Board state lives only here and dies with the process.
func (g *GameUseCase) ensureLive(ctx context.Context, gameKey string) (*liveMatch, error) {
	g.mu.RLock()
	lm, ok := g.live[gameKey]
	g.mu.RUnlock()
	if ok {
		return lm, nil
	}

	match, err := g.store.GetMatchByGameKey(ctx, gameKey)
	if err != nil {
		return nil, err
	}
	if match.Status != statuses.StatusActive {
		return nil, errs.ErrGameNotActive
	}

	state, err := game.NewGameState(match.BoardSize)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if existing, ok := g.live[gameKey]; ok {
		return existing, nil
	}
	lm = &liveMatch{match: match, state: state}
	g.live[gameKey] = lm
	return lm, nil
}
