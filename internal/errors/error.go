package errors

import "errors"

var (
	ErrPlayerNotFound   = errors.New("player with provided username was not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrSessionNotFound  = errors.New("session was not found")
	ErrPlayerExists     = errors.New("player already exists")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrJoinGameFailed   = errors.New("join game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFull         = errors.New("game already has two players")
	ErrGameNotActive    = errors.New("game is not active")
	ErrNotInGame        = errors.New("player is not part of this game")
	ErrNotYourTurn      = errors.New("it is not this player's turn")
	ErrInternal         = errors.New("internal error")
)
