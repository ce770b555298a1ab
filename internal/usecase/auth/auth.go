package auth

import (
	"context"

	"github.com/google/uuid"

	"goban/internal/domain/player"
	errs "goban/internal/errors"
)

type PlayerStorage interface {
	GetPlayer(ctx context.Context, username string) (player.Player, bool)
	GetPlayerByID(ctx context.Context, id string) (player.Player, bool)
	CreatePlayer(ctx context.Context, username, passwordHash string) (player.Player, error)
}

type SessionStorage interface {
	GetPlayerIDBySession(ctx context.Context, sessionID string) (string, bool)
	StoreSession(ctx context.Context, sessionID string, playerID string)
	DeleteSession(ctx context.Context, sessionID string) bool
}

type AuthUsecase struct {
	playerStorage  PlayerStorage
	sessionStorage SessionStorage
}

func NewAuthUsecase(p PlayerStorage, s SessionStorage) *AuthUsecase {
	return &AuthUsecase{
		playerStorage:  p,
		sessionStorage: s,
	}
}

func (a *AuthUsecase) Register(ctx context.Context, username, password string) (sessionID string, err error) {
	newPlayer, err := a.playerStorage.CreatePlayer(ctx, username, password)
	if err != nil {
		return "", err
	}

	sessionID = uuid.New().String()
	a.sessionStorage.StoreSession(ctx, sessionID, newPlayer.ID)
	return sessionID, nil
}

func (a *AuthUsecase) Login(ctx context.Context, username, password string) (sessionID string, err error) {
	found, ok := a.playerStorage.GetPlayer(ctx, username)
	if !ok {
		return "", errs.ErrPlayerNotFound
	}
	if password != found.PasswordHash {
		return "", errs.ErrWrongPassword
	}

	sessionID = uuid.New().String()
	a.sessionStorage.StoreSession(ctx, sessionID, found.ID)
	return sessionID, nil
}

func (a *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if _, ok := a.sessionStorage.GetPlayerIDBySession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	if ok := a.sessionStorage.DeleteSession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	return nil
}

func (a *AuthUsecase) PlayerIDFromSession(ctx context.Context, sessionID string) (string, error) {
	playerID, ok := a.sessionStorage.GetPlayerIDBySession(ctx, sessionID)
	if !ok {
		return "", errs.ErrSessionNotFound
	}
	return playerID, nil
}

func (a *AuthUsecase) GetPlayerByID(ctx context.Context, id string) (player.Player, error) {
	found, ok := a.playerStorage.GetPlayerByID(ctx, id)
	if !ok {
		return player.Player{}, errs.ErrPlayerNotFound
	}
	return found, nil
}
