package repository

import (
	"context"
	"os"
	"regexp"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type NovelsRepo struct {
	MongoCollection *mongo.Collection
}

func GetNovelsRepo(client *mongo.Client) *NovelsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("NOVELS_COLLECTION", "novels")
	return &NovelsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// BuildRankedPipeline assembles the search aggregation: match the filter,
// derive the ranking fields, sort, then page. Exact title matches outrank
// everything, then likes, then whole-word matches, with shorter titles
// breaking remaining ties. titleLength counts code points, not bytes.
func BuildRankedPipeline(filter bson.M, titleQuery string, skip, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$addFields", Value: rankingFields(titleQuery, true)}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "titleExactMatch", Value: -1},
			{Key: "likes", Value: -1},
			{Key: "titleWholeWordMatch", Value: -1},
			{Key: "titleLength", Value: 1},
		}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
	}
}

// BuildLookupPipeline assembles the best-match lookup for a single novel:
// substring match on the title, ranked by exact match then title length,
// top result only.
func BuildLookupPipeline(name string) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"title_english": bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"},
		}}},
		bson.D{{Key: "$addFields", Value: rankingFields(name, false)}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "titleExactMatch", Value: -1},
			{Key: "titleLength", Value: 1},
		}}},
		bson.D{{Key: "$limit", Value: 1}},
	}
}

func rankingFields(titleQuery string, wholeWord bool) bson.M {
	fields := bson.M{
		"titleLength": bson.M{"$strLenCP": "$title_english"},
	}

	// Without a title query every record ranks equal on the title fields.
	if titleQuery == "" {
		fields["titleExactMatch"] = 0
		if wholeWord {
			fields["titleWholeWordMatch"] = 0
		}
		return fields
	}

	escaped := regexp.QuoteMeta(titleQuery)
	fields["titleExactMatch"] = regexMatchFlag("^" + escaped + "$")
	if wholeWord {
		fields["titleWholeWordMatch"] = regexMatchFlag(`\b` + escaped + `\b`)
	}
	return fields
}

func regexMatchFlag(pattern string) bson.M {
	return bson.M{
		"$cond": bson.M{
			"if": bson.M{
				"$regexMatch": bson.M{
					"input":   "$title_english",
					"regex":   pattern,
					"options": "i",
				},
			},
			"then": 1,
			"else": 0,
		},
	}
}

// Search runs the ranked, paginated aggregation.
func (r *NovelsRepo) Search(ctx context.Context, filter bson.M, titleQuery string, skip, limit int) ([]*model.Novel, error) {
	timer := utils.TrackDBOperation("aggregate", "novels")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Aggregate(ctx, BuildRankedPipeline(filter, titleQuery, skip, limit))
	if err != nil {
		utils.TrackError("database", "novel_search_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	novels := []*model.Novel{}
	if err = cursor.All(ctx, &novels); err != nil {
		return nil, err
	}
	return novels, nil
}

// Count returns the pre-pagination match total for page-count computation.
func (r *NovelsRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	timer := utils.TrackDBOperation("count", "novels")
	defer timer.ObserveDuration()

	return r.MongoCollection.CountDocuments(ctx, filter)
}

// FindBestMatch returns the top-ranked novel whose title contains name, or
// nil when nothing matches.
func (r *NovelsRepo) FindBestMatch(ctx context.Context, name string) (*model.Novel, error) {
	timer := utils.TrackDBOperation("aggregate", "novels")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Aggregate(ctx, BuildLookupPipeline(name))
	if err != nil {
		utils.TrackError("database", "novel_lookup_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var novels []*model.Novel
	if err = cursor.All(ctx, &novels); err != nil {
		return nil, err
	}
	if len(novels) == 0 {
		return nil, nil
	}
	return novels[0], nil
}

// Random samples one novel uniformly from the collection, or nil when the
// collection is empty.
func (r *NovelsRepo) Random(ctx context.Context) (*model.Novel, error) {
	timer := utils.TrackDBOperation("aggregate", "novels")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.M{"size": 1}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "novel_sample_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var novels []*model.Novel
	if err = cursor.All(ctx, &novels); err != nil {
		return nil, err
	}
	if len(novels) == 0 {
		return nil, nil
	}
	return novels[0], nil
}
