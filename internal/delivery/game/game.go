package game

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	"goban/internal/delivery/auth"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	repo "goban/internal/repository"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

type GameHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	gameUC      *gameuc.GameUseCase
	authHandler *auth.AuthHandler

	connsMu sync.Mutex
	conns   map[string]*matchConns // by secret game key
}

// matchConns tracks the two live sockets of one match.
type matchConns struct {
	black *websocket.Conn
	white *websocket.Conn
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, authHandler *auth.AuthHandler) *GameHandler {
	return &GameHandler{
		cfg:         cfg,
		log:         log,
		gameUC:      gameuc.NewGameUseCase(repo.NewGameRepository(cfg, log, mongoAdapter.Database), log),
		authHandler: authHandler,
		conns:       make(map[string]*matchConns),
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	playerID := g.authHandler.GetPlayerID(w, r)
	if playerID == "" {
		return
	}

	var req game.CreateMatchRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("NewGame: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	if req.BoardSize == 0 {
		req.BoardSize = g.cfg.DefaultBoardSize
	}

	match, err := g.gameUC.CreateMatch(r.Context(), req, playerID)
	if err != nil {
		g.log.Error("NewGame: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	g.log.Infof("new game %s created by %s", match.GameKeyPublic, playerID)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.CreateMatchResponse{
		GameKeyPublic: match.GameKeyPublic,
		GameKeySecret: match.GameKeySecret,
	})
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	playerID := g.authHandler.GetPlayerID(w, r)
	if playerID == "" {
		return
	}

	var req game.JoinMatchRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JoinGame: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	if req.GameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	match, err := g.gameUC.JoinMatch(r.Context(), req.GameKey, playerID)
	if err != nil {
		g.log.Error("JoinGame: ", err)
		status := http.StatusBadRequest
		if errors.Is(err, errs.ErrGameNotFound) {
			status = http.StatusNotFound
		}
		httpresponse.WriteResponseWithStatus(w, status,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	g.log.Infof("player %s joined game %s", playerID, match.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, match)
}

// HandleGameState serves the rendering snapshot: board contents, side
// to move, prisoner counts.
func (g *GameHandler) HandleGameState(w http.ResponseWriter, r *http.Request) {
	playerID := g.authHandler.GetPlayerID(w, r)
	if playerID == "" {
		return
	}

	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	state, err := g.gameUC.MatchState(r.Context(), gameKey)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errs.ErrGameNotFound) {
			status = http.StatusNotFound
		}
		httpresponse.WriteResponseWithStatus(w, status,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

type wsError struct {
	Error string `json:"error"`
}

// HandlePlay upgrades to a websocket and runs the per-player move loop.
// Each submitted move goes through the turn-gated usecase; the reply is
// broadcast to both players so either client can play its accept or
// reject cue.
func (g *GameHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameKey := r.URL.Query().Get("game_key")
	playerID := g.authHandler.GetPlayerID(w, r)
	if playerID == "" {
		return
	}
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	if !g.gameUC.IsPlayerInMatch(ctx, gameKey, playerID) {
		g.log.Warnf("player %s is not part of game %s", playerID, gameKey)
		httpresponse.WriteResponseWithStatus(w, http.StatusForbidden,
			httpresponse.ErrorResponse{ErrorDescription: errs.ErrNotInGame.Error()})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}
	defer conn.Close()

	g.registerConn(ctx, gameKey, playerID, conn)
	defer g.unregisterConn(gameKey, conn)

	for {
		var req game.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			g.log.Infof("player %s left game %s: %v", playerID, gameKey, err)
			return
		}

		reply, err := g.gameUC.SubmitMove(ctx, gameKey, playerID, req.Col, req.Row)
		if err != nil {
			// Gate errors (not your turn, not active) go only to the
			// offending client; the game itself has not changed.
			if werr := g.send(conn, wsError{Error: err.Error()}); werr != nil {
				g.log.Error("write error: ", werr)
				return
			}
			continue
		}

		g.broadcast(gameKey, conn, reply)
	}
}

// send writes one frame under the same lock broadcast holds. A conn
// can be written to both from its own reader goroutine and from the
// opponent's broadcast; gorilla allows only one writer per conn.
func (g *GameHandler) send(conn *websocket.Conn, v any) error {
	g.connsMu.Lock()
	defer g.connsMu.Unlock()
	return conn.WriteJSON(v)
}

func (g *GameHandler) registerConn(ctx context.Context, gameKey, playerID string, conn *websocket.Conn) {
	g.connsMu.Lock()
	defer g.connsMu.Unlock()

	mc, ok := g.conns[gameKey]
	if !ok {
		mc = &matchConns{}
		g.conns[gameKey] = mc
	}

	match, err := g.gameUC.GetMatchByGameKey(ctx, gameKey)
	if err != nil {
		return
	}
	switch playerID {
	case match.PlayerBlack:
		if mc.black != nil {
			mc.black.Close()
		}
		mc.black = conn
	case match.PlayerWhite:
		if mc.white != nil {
			mc.white.Close()
		}
		mc.white = conn
	}
}

func (g *GameHandler) unregisterConn(gameKey string, conn *websocket.Conn) {
	g.connsMu.Lock()
	defer g.connsMu.Unlock()

	mc, ok := g.conns[gameKey]
	if !ok {
		return
	}
	if mc.black == conn {
		mc.black = nil
	}
	if mc.white == conn {
		mc.white = nil
	}
}

// broadcast sends the reply to both players; the mover's own socket is
// always written even if the opponent is not connected yet.
func (g *GameHandler) broadcast(gameKey string, from *websocket.Conn, reply game.MoveReply) {
	g.connsMu.Lock()
	defer g.connsMu.Unlock()

	mc, ok := g.conns[gameKey]
	if !ok {
		return
	}
	for _, conn := range []*websocket.Conn{mc.black, mc.white} {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(reply); err != nil {
			g.log.Error("broadcast write error: ", err)
			if conn != from {
				conn.Close()
			}
		}
	}
}
