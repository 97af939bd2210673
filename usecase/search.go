package usecase

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 100

	// adultTag is excluded from every search unless nsfw=true.
	adultTag = "Adult"
)

// Exclusion combinators for tags_exclude. The historical behavior combines
// the per-tag "does not have this tag" conditions with $or, which only drops
// a record carrying every excluded tag; "and" is the stricter reading where
// carrying any excluded tag drops the record. Selected via
// TAGS_EXCLUDE_COMBINATOR (or|and), default "or".
const (
	ExcludeCombinatorOr  = "or"
	ExcludeCombinatorAnd = "and"
)

// allowedTextFields is the allow-list of novel fields that accept free-text
// substring filters from query parameters. Unknown parameter names are
// ignored rather than becoming filters.
var allowedTextFields = []string{
	"title_english",
	"title_original",
	"author",
	"description",
	"language",
	"status",
}

// reservedParams are consumed by dedicated filter rules or paging and never
// treated as text filters.
var reservedParams = map[string]bool{
	"likes":        true,
	"rating":       true,
	"tags":         true,
	"tags_exclude": true,
	"nsfw":         true,
	"page":         true,
	"pageSize":     true,
}

// SearchOptions is a parsed search request: filter inputs plus paging.
type SearchOptions struct {
	Likes       string
	Rating      string
	Tags        []string
	TagsExclude []string
	NSFW        bool
	TextFilters map[string]string // allow-listed field -> substring
	TitleQuery  string            // drives relevance ranking
	Page        int
	PageSize    int

	// ExcludeCombinator selects how tags_exclude conditions combine.
	ExcludeCombinator string
}

// ParseSearchOptions builds SearchOptions from raw query parameters. Paging
// defaults to page 1 with up to MaxPageSize items.
func ParseSearchOptions(values url.Values) SearchOptions {
	opts := SearchOptions{
		Likes:             values.Get("likes"),
		Rating:            values.Get("rating"),
		Tags:              values["tags"],
		TagsExclude:       values["tags_exclude"],
		NSFW:              values.Get("nsfw") == "true",
		TextFilters:       make(map[string]string),
		TitleQuery:        values.Get("title_english"),
		Page:              1,
		PageSize:          DefaultPageSize,
		ExcludeCombinator: ExcludeCombinatorOr,
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if size, err := strconv.Atoi(values.Get("pageSize")); err == nil && size > 0 {
		opts.PageSize = size
	}
	if opts.PageSize > MaxPageSize {
		opts.PageSize = MaxPageSize
	}

	for _, field := range allowedTextFields {
		if reservedParams[field] {
			continue
		}
		// Only plain single values become filters, matching the historical
		// behavior of skipping array-valued parameters.
		if vals := values[field]; len(vals) == 1 && vals[0] != "" {
			opts.TextFilters[field] = vals[0]
		}
	}

	return opts
}

// Skip returns the zero-based offset for the requested page.
func (o SearchOptions) Skip() int {
	return (o.Page - 1) * o.PageSize
}

// TotalPages computes the page count for a pre-pagination match total.
func (o SearchOptions) TotalPages(totalCount int64) int {
	return int(math.Ceil(float64(totalCount) / float64(o.PageSize)))
}

// BuildFilter translates the options into a Mongo filter document: a $and of
// zero or more clauses, with an explicit match-all clause when nothing else
// applies so the clause list is never empty.
func (o SearchOptions) BuildFilter() bson.M {
	and := []bson.M{}

	// Unparsable numeric thresholds add no clause.
	if o.Likes != "" {
		if likes, err := strconv.ParseFloat(o.Likes, 64); err == nil {
			and = append(and, bson.M{"likes": bson.M{"$gte": int64(math.Floor(likes))}})
		}
	}

	if o.Rating != "" {
		if rating, err := strconv.ParseFloat(o.Rating, 64); err == nil {
			and = append(and, bson.M{"rating": bson.M{"$gte": rating}})
		}
	}

	// Tag inclusion: every requested tag must be present, exact and
	// case-insensitive.
	if tags := splitTags(o.Tags); len(tags) > 0 {
		tagFilters := make([]bson.M, 0, len(tags))
		for _, tag := range tags {
			tagFilters = append(tagFilters, bson.M{"tags": bson.M{"$regex": exactTagRegex(tag)}})
		}
		and = append(and, bson.M{"$and": tagFilters})
	}

	// Adult content is excluded unless explicitly opted in.
	if !o.NSFW {
		and = append(and, bson.M{"tags": bson.M{"$not": exactTagRegex(adultTag)}})
	}

	if excluded := splitTags(o.TagsExclude); len(excluded) > 0 {
		notFilters := make([]bson.M, 0, len(excluded))
		for _, tag := range excluded {
			notFilters = append(notFilters, bson.M{"tags": bson.M{"$not": exactTagRegex(tag)}})
		}
		if o.ExcludeCombinator == ExcludeCombinatorAnd {
			and = append(and, bson.M{"$and": notFilters})
		} else {
			and = append(and, bson.M{"$or": notFilters})
		}
	}

	// Allow-listed substring filters, in a fixed field order.
	for _, field := range allowedTextFields {
		if value, ok := o.TextFilters[field]; ok {
			and = append(and, bson.M{field: bson.M{"$regex": substringRegex(value)}})
		}
	}

	if len(and) == 0 {
		and = append(and, bson.M{"likes": bson.M{"$gte": int64(0)}})
	}

	return bson.M{"$and": and}
}

// splitTags normalizes repeated and comma-separated tag parameters into a
// flat list.
func splitTags(raw []string) []string {
	var tags []string
	for _, value := range raw {
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// exactTagRegex matches a whole tag, case-insensitively, with user input
// escaped so it cannot smuggle pattern syntax.
func exactTagRegex(tag string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(tag) + "$", Options: "i"}
}

// substringRegex matches the value anywhere in the field, case-insensitively.
func substringRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}
