package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Novel mirrors the documents in the novels collection. The catalog only
// reads these; ingestion happens outside this service.
type Novel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TitleEnglish  string             `bson:"title_english" json:"title_english"`
	TitleOriginal string             `bson:"title_original,omitempty" json:"title_original,omitempty"`
	Author        string             `bson:"author,omitempty" json:"author,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Language      string             `bson:"language,omitempty" json:"language,omitempty"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
	Tags          []string           `bson:"tags" json:"tags"`
	Likes         int64              `bson:"likes" json:"likes"`
	Rating        float64            `bson:"rating" json:"rating"`

	// Ranking fields added by the search pipeline, never stored.
	TitleExactMatch     int `bson:"titleExactMatch,omitempty" json:"-"`
	TitleWholeWordMatch int `bson:"titleWholeWordMatch,omitempty" json:"-"`
	TitleLength         int `bson:"titleLength,omitempty" json:"-"`
}
