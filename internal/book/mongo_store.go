package book

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a books collection.
type MongoStore struct {
	coll *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("books")}
}

func (s *MongoStore) FindAll(ctx context.Context) ([]Book, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var out []Book
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (Book, bool, error) {
	var b Book
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Book{}, false, nil
	}
	if err != nil {
		return Book{}, false, err
	}
	return b, true, nil
}

func (s *MongoStore) FindByAuthor(ctx context.Context, authorID string, limit int) ([]Book, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, err
	}
	var out []Book
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) Insert(ctx context.Context, b Book) error {
	_, err := s.coll.InsertOne(ctx, b)
	return err
}

func (s *MongoStore) Replace(ctx context.Context, b Book) (int64, error) {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
