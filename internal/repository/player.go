package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/domain/player"
	errs "goban/internal/errors"
)

type MongoPlayerStorage struct {
	adapter *adapters.AdapterMongo
	log     *zap.SugaredLogger
}

func NewMongoPlayerStorage(adapter *adapters.AdapterMongo, log *zap.SugaredLogger) *MongoPlayerStorage {
	return &MongoPlayerStorage{adapter: adapter, log: log}
}

func (m *MongoPlayerStorage) GetPlayer(ctx context.Context, username string) (player.Player, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection("players")
	filter := bson.M{"username": username}

	var result player.Player
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			m.log.Error(err)
		}
		return player.Player{}, false
	}
	return result, true
}

func (m *MongoPlayerStorage) GetPlayerByID(ctx context.Context, id string) (player.Player, bool) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return player.Player{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection("players")
	filter := bson.M{"_id": objectID}

	var result player.Player
	err = collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			m.log.Error(err)
		}
		return player.Player{}, false
	}
	return result, true
}

func (m *MongoPlayerStorage) CreatePlayer(ctx context.Context, username, passwordHash string) (player.Player, error) {
	if _, found := m.GetPlayer(ctx, username); found {
		return player.Player{}, errs.ErrPlayerExists
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection("players")
	newPlayer := player.Player{
		Username:     username,
		CreatedAt:    time.Now(),
		Rating:       0,
		PasswordHash: passwordHash,
	}
	result, err := collection.InsertOne(ctx, newPlayer)
	if err != nil {
		m.log.Error(err)
		return player.Player{}, errs.ErrInternal
	}
	newPlayer.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return newPlayer, nil
}
