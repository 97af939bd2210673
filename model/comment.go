package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username   string             `bson:"username" json:"username"`
	Comment    string             `bson:"comment" json:"comment"` // sanitized before insert
	NovelID    string             `bson:"novelId" json:"novelId"`
	ChapterNum int                `bson:"chapterNum" json:"chapterNum"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
