package author

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on an authors collection.
type MongoStore struct {
	coll *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("authors")}
}

func (s *MongoStore) FindAll(ctx context.Context) ([]Author, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var out []Author
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (Author, bool, error) {
	var a Author
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Author{}, false, nil
	}
	if err != nil {
		return Author{}, false, err
	}
	return a, true, nil
}

func (s *MongoStore) Insert(ctx context.Context, a Author) error {
	_, err := s.coll.InsertOne(ctx, a)
	return err
}

func (s *MongoStore) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
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

func (s *MongoStore) AppendBook(ctx context.Context, authorID, bookID string) (Author, bool, error) {
	var a Author
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": authorID},
		bson.M{"$inc": bson.M{"numOfBooks": 1}, "$push": bson.M{"books": bookID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Author{}, false, nil
	}
	if err != nil {
		return Author{}, false, err
	}
	return a, true, nil
}

func (s *MongoStore) AttachBook(ctx context.Context, authorID, bookID string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": authorID},
		bson.M{"$addToSet": bson.M{"books": bookID}, "$inc": bson.M{"numOfBooks": 1}},
	)
	return err
}

func (s *MongoStore) DetachBook(ctx context.Context, authorID, bookID string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": authorID},
		bson.M{"$pull": bson.M{"books": bookID}, "$inc": bson.M{"numOfBooks": -1}},
	)
	return err
}
