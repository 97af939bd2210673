package model

import "time"

type User struct {
	UserID    string    `bson:"user_id" json:"user_id"` // Unique ID number
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // argon2 salt$hash, never echoed
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
