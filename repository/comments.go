package repository

import (
	"context"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CommentsRepo struct {
	MongoCollection *mongo.Collection
}

func GetCommentsRepo(client *mongo.Client) *CommentsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("COMMENTS_COLLECTION", "comments")
	return &CommentsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *CommentsRepo) CreateComment(ctx context.Context, comment *model.Comment) (string, error) {
	timer := utils.TrackDBOperation("insert", "comments")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.InsertOne(ctx, comment)
	if err != nil {
		utils.TrackError("database", "comment_creation_failed")
		return "", err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

// FindComment returns nil, nil for a malformed or unknown comment id.
func (r *CommentsRepo) FindComment(ctx context.Context, commentID string) (*model.Comment, error) {
	timer := utils.TrackDBOperation("find", "comments")
	defer timer.ObserveDuration()

	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, nil
	}

	var comment model.Comment
	err = r.MongoCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "comment_lookup_error")
		return nil, err
	}
	return &comment, nil
}

func (r *CommentsRepo) DeleteComment(ctx context.Context, commentID string) error {
	timer := utils.TrackDBOperation("delete", "comments")
	defer timer.ObserveDuration()

	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		utils.TrackError("database", "comment_delete_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListComments returns every comment for the novel/chapter pair in store
// order.
func (r *CommentsRepo) ListComments(ctx context.Context, novelID string, chapterNum int) ([]*model.Comment, error) {
	timer := utils.TrackDBOperation("find", "comments")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"novelId":    novelID,
		"chapterNum": chapterNum,
	})
	if err != nil {
		utils.TrackError("database", "comment_list_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []*model.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
