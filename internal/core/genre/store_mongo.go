// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taibuivan/readverse/internal/platform/dberr"
)

// CollectionName is the MongoDB collection holding genres.
const CollectionName = "genres"

// MongoRepository stores genres in MongoDB.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(CollectionName)}
}

// EnsureIndexes creates the unique name index.
func (repository *MongoRepository) EnsureIndexes(context context.Context) error {
	_, err := repository.collection.Indexes().CreateOne(context, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("genre_name_key"),
	})
	return dberr.WrapMongo(err, "ensure_genre_indexes")
}

func (repository *MongoRepository) Create(context context.Context, genre *Genre) error {
	_, err := repository.collection.InsertOne(context, genre)
	return dberr.WrapMongo(err, "insert_genre")
}

func (repository *MongoRepository) List(context context.Context) ([]*Genre, error) {
	return repository.find(context, bson.D{}, "list_genres")
}

func (repository *MongoRepository) FindByName(context context.Context, name string) (*Genre, error) {
	genre := &Genre{}
	err := repository.collection.FindOne(context, bson.D{{Key: "name", Value: name}}).Decode(genre)
	if err != nil {
		return nil, dberr.WrapMongo(err, "find_genre_by_name")
	}
	return genre, nil
}

func (repository *MongoRepository) FindByNames(context context.Context, names []string) ([]*Genre, error) {
	filter := bson.D{{Key: "name", Value: bson.D{{Key: "$in", Value: nonNil(names)}}}}
	return repository.find(context, filter, "find_genres_by_names")
}

func (repository *MongoRepository) FindByIDs(context context.Context, ids []string) ([]*Genre, error) {
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: nonNil(ids)}}}}
	return repository.find(context, filter, "find_genres_by_ids")
}

func (repository *MongoRepository) find(context context.Context, filter bson.D, action string) ([]*Genre, error) {
	cursor, err := repository.collection.Find(context, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, dberr.WrapMongo(err, action)
	}

	genres := make([]*Genre, 0)
	if err := cursor.All(context, &genres); err != nil {
		return nil, dberr.WrapMongo(err, action)
	}
	return genres, nil
}

// nonNil keeps $in from receiving a BSON null.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
