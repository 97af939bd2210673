package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func stage(t *testing.T, pipeline []bson.D, index int, name string) interface{} {
	t.Helper()
	if index >= len(pipeline) {
		t.Fatalf("pipeline has %d stages, wanted index %d", len(pipeline), index)
	}
	if pipeline[index][0].Key != name {
		t.Fatalf("stage %d is %q, want %q", index, pipeline[index][0].Key, name)
	}
	return pipeline[index][0].Value
}

func TestBuildRankedPipelineShape(t *testing.T) {
	filter := bson.M{"$and": []bson.M{{"likes": bson.M{"$gte": int64(0)}}}}
	pipeline := BuildRankedPipeline(filter, "Foo", 20, 10)

	if len(pipeline) != 5 {
		t.Fatalf("pipeline has %d stages, want 5", len(pipeline))
	}

	if got := stage(t, pipeline, 0, "$match"); !reflect.DeepEqual(got, filter) {
		t.Errorf("$match = %#v, want %#v", got, filter)
	}

	fields := stage(t, pipeline, 1, "$addFields").(bson.M)

	exact := fields["titleExactMatch"].(bson.M)["$cond"].(bson.M)["if"].(bson.M)["$regexMatch"].(bson.M)
	if exact["regex"] != "^Foo$" || exact["options"] != "i" || exact["input"] != "$title_english" {
		t.Errorf("titleExactMatch regexMatch = %#v", exact)
	}

	word := fields["titleWholeWordMatch"].(bson.M)["$cond"].(bson.M)["if"].(bson.M)["$regexMatch"].(bson.M)
	if word["regex"] != `\bFoo\b` {
		t.Errorf("titleWholeWordMatch regex = %v, want whole-word pattern", word["regex"])
	}

	if !reflect.DeepEqual(fields["titleLength"], bson.M{"$strLenCP": "$title_english"}) {
		t.Errorf("titleLength = %#v, want $strLenCP (code points, not bytes)", fields["titleLength"])
	}

	wantSort := bson.D{
		{Key: "titleExactMatch", Value: -1},
		{Key: "likes", Value: -1},
		{Key: "titleWholeWordMatch", Value: -1},
		{Key: "titleLength", Value: 1},
	}
	if got := stage(t, pipeline, 2, "$sort"); !reflect.DeepEqual(got, wantSort) {
		t.Errorf("$sort = %#v, want %#v", got, wantSort)
	}

	if got := stage(t, pipeline, 3, "$skip"); got != 20 {
		t.Errorf("$skip = %v, want 20", got)
	}
	if got := stage(t, pipeline, 4, "$limit"); got != 10 {
		t.Errorf("$limit = %v, want 10", got)
	}
}

func TestBuildRankedPipelineWithoutTitleQuery(t *testing.T) {
	pipeline := BuildRankedPipeline(bson.M{}, "", 0, 100)

	fields := stage(t, pipeline, 1, "$addFields").(bson.M)
	if fields["titleExactMatch"] != 0 || fields["titleWholeWordMatch"] != 0 {
		t.Errorf("title match flags should be constant 0 without a query: %#v", fields)
	}
	if !reflect.DeepEqual(fields["titleLength"], bson.M{"$strLenCP": "$title_english"}) {
		t.Errorf("titleLength missing without a query: %#v", fields)
	}
}

func TestBuildRankedPipelineEscapesTitleQuery(t *testing.T) {
	pipeline := BuildRankedPipeline(bson.M{}, "What? (Again)", 0, 100)

	fields := stage(t, pipeline, 1, "$addFields").(bson.M)
	exact := fields["titleExactMatch"].(bson.M)["$cond"].(bson.M)["if"].(bson.M)["$regexMatch"].(bson.M)
	if exact["regex"] != `^What\? \(Again\)$` {
		t.Errorf("regex = %v, want escaped pattern", exact["regex"])
	}
}

func TestBuildLookupPipelineShape(t *testing.T) {
	pipeline := BuildLookupPipeline("Foo")

	if len(pipeline) != 4 {
		t.Fatalf("pipeline has %d stages, want 4", len(pipeline))
	}

	match := stage(t, pipeline, 0, "$match").(bson.M)
	want := bson.M{"title_english": bson.M{"$regex": "Foo", "$options": "i"}}
	if !reflect.DeepEqual(match, want) {
		t.Errorf("$match = %#v, want substring title match %#v", match, want)
	}

	fields := stage(t, pipeline, 1, "$addFields").(bson.M)
	if _, hasWord := fields["titleWholeWordMatch"]; hasWord {
		t.Errorf("lookup pipeline should not rank on whole-word match: %#v", fields)
	}

	wantSort := bson.D{
		{Key: "titleExactMatch", Value: -1},
		{Key: "titleLength", Value: 1},
	}
	if got := stage(t, pipeline, 2, "$sort"); !reflect.DeepEqual(got, wantSort) {
		t.Errorf("$sort = %#v, want %#v", got, wantSort)
	}

	if got := stage(t, pipeline, 3, "$limit"); got != 1 {
		t.Errorf("$limit = %v, want 1", got)
	}
}
