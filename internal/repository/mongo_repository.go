package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/storefront-api/internal/apperror"
)

// MongoRepo stores records in a MongoDB collection. Ids are ObjectIDs in the
// store and their hex form everywhere else; the record's string id field is
// tagged `bson:"_id,omitempty"` so the driver generates one on insert and
// decodes it back as hex.
type MongoRepo[E any, P Identifiable[E]] struct {
	coll *mongo.Collection
}

// NewMongoRepo binds a repository to coll. The collection handle comes from
// a client the caller owns and closes.
func NewMongoRepo[E any, P Identifiable[E]](coll *mongo.Collection) *MongoRepo[E, P] {
	return &MongoRepo[E, P]{coll: coll}
}

func (r *MongoRepo[E, P]) op(name string) string { return r.coll.Name() + "." + name }

func (r *MongoRepo[E, P]) List(ctx context.Context, filter Filter) ([]E, error) {
	q := bson.M{}
	for k, v := range filter {
		q[k] = v
	}
	cur, err := r.coll.Find(ctx, q)
	if err != nil {
		return nil, apperror.Upstream(r.op("find"), err)
	}
	out := make([]E, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperror.Upstream(r.op("decode"), err)
	}
	return out, nil
}

func (r *MongoRepo[E, P]) Get(ctx context.Context, id string) (E, error) {
	var out E
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return out, notFound(r.coll.Name(), id)
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, notFound(r.coll.Name(), id)
		}
		return out, apperror.Upstream(r.op("findOne"), err)
	}
	return out, nil
}

func (r *MongoRepo[E, P]) Create(ctx context.Context, item E) (E, error) {
	P(&item).SetID("")
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return item, apperror.Upstream(r.op("insertOne"), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return item, apperror.Upstream(r.op("insertOne"), errors.New("unexpected inserted id type"))
	}
	P(&item).SetID(oid.Hex())
	return item, nil
}

// Update applies a $set of the supplied fields and returns the document as
// it is after the update, in one round trip.
func (r *MongoRepo[E, P]) Update(ctx context.Context, id string, fields map[string]any) (E, error) {
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}
	var out E
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return out, notFound(r.coll.Name(), id)
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, notFound(r.coll.Name(), id)
		}
		return out, apperror.Upstream(r.op("findOneAndUpdate"), err)
	}
	return out, nil
}

func (r *MongoRepo[E, P]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notFound(r.coll.Name(), id)
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperror.Upstream(r.op("deleteOne"), err)
	}
	if res.DeletedCount == 0 {
		return notFound(r.coll.Name(), id)
	}
	return nil
}

func (r *MongoRepo[E, P]) Clear(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return apperror.Upstream(r.op("deleteMany"), err)
	}
	return nil
}

func (r *MongoRepo[E, P]) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, apperror.Upstream(r.op("countDocuments"), err)
	}
	return n, nil
}
