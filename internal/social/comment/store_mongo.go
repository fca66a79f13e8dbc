// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/pagination"
)

// CollectionName is the MongoDB collection holding comments.
const CollectionName = "comments"

// MongoRepository stores comments in MongoDB.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(CollectionName)}
}

// EnsureIndexes creates the thread index used by root pages and the tree
// index used to load their replies.
func (repository *MongoRepository) EnsureIndexes(context context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(context, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "contentId", Value: 1},
				{Key: "chapterId", Value: 1},
				{Key: "parentId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("comment_thread_idx"),
		},
		{
			Keys:    bson.D{{Key: "rootId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("comment_tree_idx"),
		},
	})
	return dberr.WrapMongo(err, "ensure_comment_indexes")
}

func (repository *MongoRepository) Create(context context.Context, comment *Comment) error {
	_, err := repository.collection.InsertOne(context, comment)
	return dberr.WrapMongo(err, "insert_comment")
}

func (repository *MongoRepository) FindByID(context context.Context, id string) (*Comment, error) {
	var comment Comment
	err := repository.collection.FindOne(context, bson.D{{Key: "_id", Value: id}}).Decode(&comment)
	if err != nil {
		return nil, dberr.WrapMongo(err, "find_comment")
	}
	return &comment, nil
}

func (repository *MongoRepository) Update(context context.Context, comment *Comment) error {
	result, err := repository.collection.UpdateByID(context, comment.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "message", Value: comment.Message},
		{Key: "isEdited", Value: comment.IsEdited},
		{Key: "isReported", Value: comment.IsReported},
		{Key: "isDeleted", Value: comment.IsDeleted},
		{Key: "updatedAt", Value: comment.UpdatedAt},
	}}})
	if err != nil {
		return dberr.WrapMongo(err, "update_comment")
	}
	if result.MatchedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ListRoots ranks through an aggregation since BEST sorts on a computed score.
func (repository *MongoRepository) ListRoots(context context.Context, thread Thread, sortKey SortKey, params pagination.Params) ([]*Comment, error) {
	cursor, err := repository.collection.Aggregate(context, mongoRootsPipeline(thread, sortKey, params))
	if err != nil {
		return nil, dberr.WrapMongo(err, "list_root_comments")
	}

	comments := make([]*Comment, 0)
	if err := cursor.All(context, &comments); err != nil {
		return nil, dberr.WrapMongo(err, "decode_root_comments")
	}
	return comments, nil
}

func (repository *MongoRepository) ListReplies(context context.Context, rootIDs []string) ([]*Comment, error) {
	filter := bson.D{
		{Key: "rootId", Value: bson.D{{Key: "$in", Value: rootIDs}}},
		{Key: "parentId", Value: bson.D{{Key: "$ne", Value: RootParent}}},
	}

	cursor, err := repository.collection.Find(context, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, dberr.WrapMongo(err, "list_replies")
	}

	comments := make([]*Comment, 0)
	if err := cursor.All(context, &comments); err != nil {
		return nil, dberr.WrapMongo(err, "decode_replies")
	}
	return comments, nil
}

func (repository *MongoRepository) Count(context context.Context, thread Thread) (int, int, error) {
	total, err := repository.collection.CountDocuments(context, mongoThreadFilter(thread))
	if err != nil {
		return 0, 0, dberr.WrapMongo(err, "count_comments")
	}

	roots, err := repository.collection.CountDocuments(context,
		append(mongoThreadFilter(thread), bson.E{Key: "parentId", Value: RootParent}))
	if err != nil {
		return 0, 0, dberr.WrapMongo(err, "count_root_comments")
	}
	return int(roots), int(total), nil
}

// # Query Translation

// mongoThreadFilter matches a thread. Content-level comments have no chapterId.
func mongoThreadFilter(thread Thread) bson.D {
	filter := bson.D{{Key: "contentId", Value: thread.ContentID}}
	if thread.ChapterID == "" {
		return append(filter, bson.E{Key: "chapterId", Value: bson.D{{Key: "$exists", Value: false}}})
	}
	return append(filter, bson.E{Key: "chapterId", Value: thread.ChapterID})
}

func mongoRootsPipeline(thread Thread, sortKey SortKey, params pagination.Params) mongo.Pipeline {
	match := append(mongoThreadFilter(thread), bson.E{Key: "parentId", Value: RootParent})

	var sort bson.D
	switch sortKey {
	case SortBest:
		sort = bson.D{{Key: "score", Value: -1}, {Key: "createdAt", Value: -1}}
	case SortOldest:
		sort = bson.D{{Key: "createdAt", Value: 1}}
	default:
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$addFields", Value: bson.D{{Key: "score", Value: bson.D{{Key: "$subtract", Value: bson.A{"$upVotes", "$downVotes"}}}}}}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: int64(params.Offset())}},
		{{Key: "$limit", Value: int64(params.Limit)}},
		{{Key: "$project", Value: bson.D{{Key: "score", Value: 0}}}},
	}
}
