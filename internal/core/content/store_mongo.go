// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/pagination"
)

// CollectionName is the MongoDB collection holding contents.
const CollectionName = "contents"

// MongoRepository stores contents in MongoDB.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(CollectionName)}
}

// EnsureIndexes creates the unique title index and the list indexes.
func (repository *MongoRepository) EnsureIndexes(context context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(context, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true).SetName("content_title_key")},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "genres", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "noOfViews", Value: -1}, {Key: "noOfSubscribers", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "chaptersUpdatedOn", Value: -1}}},
	})
	return dberr.WrapMongo(err, "ensure_content_indexes")
}

func (repository *MongoRepository) Create(context context.Context, content *Content) error {
	_, err := repository.collection.InsertOne(context, content)
	return dberr.WrapMongo(err, "insert_content")
}

func (repository *MongoRepository) Update(context context.Context, content *Content) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: content.Title},
		{Key: "slug", Value: content.Slug},
		{Key: "tags", Value: content.Tags},
		{Key: "status", Value: content.Status},
		{Key: "genres", Value: content.GenreIDs},
		{Key: "author", Value: content.Author},
		{Key: "synonyms", Value: content.Synonyms},
		{Key: "description", Value: content.Description},
		{Key: "thumbnail", Value: content.Thumbnail},
		{Key: "poster", Value: content.Poster},
		{Key: "imagesAndWallpapers", Value: content.ImagesAndWallpapers},
		{Key: "updatedAt", Value: content.UpdatedAt},
	}}}

	result, err := repository.collection.UpdateOne(context, bson.D{{Key: "_id", Value: content.ID}}, update)
	if err != nil {
		return dberr.WrapMongo(err, "update_content")
	}
	if result.MatchedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *MongoRepository) FindByID(context context.Context, id string) (*Content, error) {
	return repository.findOne(context, bson.D{{Key: "_id", Value: id}}, "find_content_by_id")
}

func (repository *MongoRepository) FindByTitle(context context.Context, title string) (*Content, error) {
	return repository.findOne(context, bson.D{{Key: "title", Value: title}}, "find_content_by_title")
}

func (repository *MongoRepository) List(context context.Context, query ListQuery) ([]*Summary, error) {
	findOptions := options.Find().SetProjection(mongoSummaryProjection())
	if sort := mongoSort(query.Sort); len(sort) > 0 {
		findOptions.SetSort(sort)
	}
	if query.Limit > 0 {
		findOptions.SetLimit(int64(query.Limit))
	}

	return repository.findSummaries(context, mongoFilter(query.Match), findOptions, "list_contents")
}

func (repository *MongoRepository) ListPage(context context.Context, params pagination.Params) ([]*Summary, int, error) {
	total, err := repository.collection.CountDocuments(context, bson.D{})
	if err != nil {
		return nil, 0, dberr.WrapMongo(err, "count_contents")
	}

	findOptions := options.Find().
		SetProjection(mongoSummaryProjection()).
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit))

	summaries, err := repository.findSummaries(context, bson.D{}, findOptions, "list_content_page")
	if err != nil {
		return nil, 0, err
	}
	return summaries, int(total), nil
}

func (repository *MongoRepository) findOne(context context.Context, filter bson.D, action string) (*Content, error) {
	content := &Content{}
	if err := repository.collection.FindOne(context, filter).Decode(content); err != nil {
		return nil, dberr.WrapMongo(err, action)
	}
	return content, nil
}

func (repository *MongoRepository) findSummaries(context context.Context, filter bson.D, findOptions *options.FindOptionsBuilder, action string) ([]*Summary, error) {
	cursor, err := repository.collection.Find(context, filter, findOptions)
	if err != nil {
		return nil, dberr.WrapMongo(err, action)
	}

	summaries := make([]*Summary, 0)
	if err := cursor.All(context, &summaries); err != nil {
		return nil, dberr.WrapMongo(err, action)
	}
	return summaries, nil
}

// # Query Translation

func mongoFilter(match Match) bson.D {
	switch match.Kind {
	case MatchTags:
		return bson.D{{Key: "tags", Value: bson.D{{Key: "$in", Value: nonNil(match.Values)}}}}
	case MatchStatus:
		status := ""
		if len(match.Values) > 0 {
			status = match.Values[0]
		}
		return bson.D{{Key: "status", Value: status}}
	case MatchGenres:
		return bson.D{{Key: "genres", Value: bson.D{{Key: "$in", Value: nonNil(match.Values)}}}}
	}
	return bson.D{}
}

func mongoSort(keys []SortKey) bson.D {
	sort := bson.D{}
	for _, key := range keys {
		direction := 1
		if key.Desc {
			direction = -1
		}
		sort = append(sort, bson.E{Key: string(key.Field), Value: direction})
	}
	return sort
}

func mongoSummaryProjection() bson.D {
	fields := []string{
		"_id", "title", "slug", "tags", "status", "genres", "rating", "noOfViews",
		"noOfSubscribers", "author", "thumbnail", "chaptersUpdatedOn", "createdAt", "updatedAt",
	}

	projection := make(bson.D, 0, len(fields))
	for _, field := range fields {
		projection = append(projection, bson.E{Key: field, Value: 1})
	}
	return projection
}

// nonNil keeps $in from receiving a BSON null.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
