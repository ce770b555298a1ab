package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/statuses"
)

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		mongo: mongo,
	}
}

// GenerateGameKeys returns a fresh secret key (uuid) and a short public
// code derived from it. Regenerates until the public code is unused.
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string) {
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)

		if g.checkPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameKeySecret, gameKeyPublic
		}
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) checkPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{
		"game_key_public": gameKeyPublic,
		"status":          bson.M{"$ne": statuses.StatusCompleted},
	}
	err := collection.FindOne(ctx, filter).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (g *GameRepository) PutMatch(ctx context.Context, match game.Match) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	_, err := collection.InsertOne(ctx, match)
	if err != nil {
		g.log.Errorf("failed to insert game: %v", err)
		return errs.ErrCreateGameFailed
	}

	g.log.Infof("game inserted with public key %s", match.GameKeyPublic)
	return nil
}

func (g *GameRepository) GetMatchByGameKey(ctx context.Context, gameKey string) (game.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKey}

	var match game.Match
	err := collection.FindOne(ctx, filter).Decode(&match)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Match{}, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.Match{}, err
	}

	return match, nil
}

func (g *GameRepository) GetMatchByPublicKey(ctx context.Context, gameKeyPublic string) (game.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{
		"game_key_public": gameKeyPublic,
		"status":          bson.M{"$ne": statuses.StatusCompleted},
	}

	var match game.Match
	err := collection.FindOne(ctx, filter).Decode(&match)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Match{}, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.Match{}, err
	}

	return match, nil
}

// SetPlayer fills the given color slot of a match and moves it to the
// active status once both slots are taken.
func (g *GameRepository) SetPlayer(ctx context.Context, gameKey string, color game.Stone, playerID string) (game.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	field := "player_black"
	if color == game.White {
		field = "player_white"
	}

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKey}
	update := bson.M{"$set": bson.M{field: playerID}}

	opts := options.Update().SetUpsert(false)
	res, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		g.log.Errorf("failed to update game %s: %v", gameKey, err)
		return game.Match{}, errs.ErrJoinGameFailed
	}
	if res.MatchedCount == 0 {
		return game.Match{}, errs.ErrGameNotFound
	}

	var match game.Match
	if err = collection.FindOne(ctx, filter).Decode(&match); err != nil {
		g.log.Errorf("failed to reload game %s: %v", gameKey, err)
		return game.Match{}, errs.ErrJoinGameFailed
	}

	if match.PlayerBlack != "" && match.PlayerWhite != "" && match.Status == statuses.StatusWaitOpponent {
		match.Status = statuses.StatusActive
		_, err = collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": statuses.StatusActive}}, opts)
		if err != nil {
			g.log.Errorf("failed to activate game %s: %v", gameKey, err)
		}
	}

	return match, nil
}

// UpdatePrisoners mirrors the engine's capture counters into the match
// record. Display metadata only; the live board never hits the database.
func (g *GameRepository) UpdatePrisoners(ctx context.Context, gameKey string, prisoners game.Prisoners) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKey}
	update := bson.M{"$set": bson.M{"prisoners": prisoners}}

	_, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		g.log.Errorf("failed to update prisoners for game %s: %v", gameKey, err)
	}
	return err
}

func (g *GameRepository) HasPlayerActiveGame(ctx context.Context, playerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"player_black": playerID},
					{"player_white": playerID},
				},
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}
	err := collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		g.log.Error(err)
		return false, err
	}

	return true, nil
}
