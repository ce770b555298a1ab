package game

import "time"

// Match is the lobby record of one game between two players. Only
// metadata lives here; the live board is held in memory by the match
// registry and never persisted.
type Match struct {
	BoardSize     int       `json:"board_size" bson:"board_size"`
	GameKeySecret string    `json:"game_key_secret,omitempty" bson:"game_key_secret"`
	GameKeyPublic string    `json:"game_key_public" bson:"game_key_public"`
	Status        string    `json:"status" bson:"status"`
	PlayerBlack   string    `json:"player_black" bson:"player_black"`
	PlayerWhite   string    `json:"player_white" bson:"player_white"`
	Prisoners     Prisoners `json:"prisoners" bson:"prisoners"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// ColorOf returns the stone color the player holds in this match, or
// Empty if the player is not part of it.
func (m Match) ColorOf(playerID string) Stone {
	switch playerID {
	case "":
		return Empty
	case m.PlayerBlack:
		return Black
	case m.PlayerWhite:
		return White
	}
	return Empty
}

type CreateMatchRequest struct {
	BoardSize      int  `json:"board_size"`
	IsCreatorBlack bool `json:"is_creator_black"`
}

type CreateMatchResponse struct {
	GameKeyPublic string `json:"game_key_public"`
	GameKeySecret string `json:"game_key_secret"`
}

type JoinMatchRequest struct {
	GameKey string `json:"game_key"`
}

// MoveRequest is one move submission from a client.
type MoveRequest struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// MoveReply is broadcast to both clients after a move attempt. Reason
// is empty for accepted moves; Captured carries the removed cells so
// clients can drive their capture cues.
type MoveReply struct {
	Accepted  bool      `json:"accepted"`
	Reason    string    `json:"reason,omitempty"`
	Color     string    `json:"color"`
	Cell      Cell      `json:"cell"`
	Captured  []Cell    `json:"captured,omitempty"`
	Prisoners Prisoners `json:"prisoners"`
	ToMove    string    `json:"to_move"`
}

// MatchState is the full rendering snapshot of a live match.
type MatchState struct {
	BoardSize int        `json:"board_size"`
	Cells     [][]string `json:"cells"`
	ToMove    string     `json:"to_move"`
	Prisoners Prisoners  `json:"prisoners"`
}
