package player

import "time"

type Player struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	Rating       int       `json:"rating" bson:"rating"`
	PasswordHash string    `json:"-" bson:"password_hash"`
}
