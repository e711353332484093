package odm

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by lookup operations when no document matches.
var ErrNotFound = errors.New("document not found")

// Model exposes the uniform CRUD and query contract over a single collection.
// T is the entity struct whose bson tags define the document layout; its id
// field must be a string tagged `bson:"_id"`. All reads decode into fresh
// struct values.
type Model[T any] struct {
	name   string
	schema Schema
	coll   *mongo.Collection
	idIdx  int
}

// NewModel builds a Model for the given collection name and schema. It fails
// when the schema declares an unsupported field kind or when T has no string
// `bson:"_id"` field; both are startup configuration errors.
func NewModel[T any](db *mongo.Database, name string, schema Schema) (*Model[T], error) {
	if _, err := schema.Validator(); err != nil {
		return nil, err
	}
	idx, err := idFieldIndex[T]()
	if err != nil {
		return nil, err
	}
	return &Model[T]{name: name, schema: schema, coll: db.Collection(name), idIdx: idx}, nil
}

// idFieldIndex locates the struct field tagged bson:"_id".
func idFieldIndex[T any]() (int, error) {
	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil || typ.Kind() != reflect.Struct {
		return -1, errors.New("odm: model type must be a struct")
	}
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("bson")
		if strings.Split(tag, ",")[0] == "_id" {
			if typ.Field(i).Type.Kind() != reflect.String {
				return -1, errors.New("odm: _id field must be a string")
			}
			return i, nil
		}
	}
	return -1, errors.New("odm: model type has no bson _id field")
}

// Name returns the collection name.
func (m *Model[T]) Name() string { return m.name }

// EnsureCollection installs the $jsonSchema validator and unique indexes.
// Existing collections get the validator applied via collMod so schema
// changes take effect on restart.
func (m *Model[T]) EnsureCollection(ctx context.Context) error {
	validator, err := m.schema.Validator()
	if err != nil {
		return err
	}
	db := m.coll.Database()
	createErr := db.CreateCollection(ctx, m.name, options.CreateCollection().SetValidator(validator))
	if createErr != nil {
		// NamespaceExists: apply the validator to the existing collection.
		var cmdErr mongo.CommandError
		if !errors.As(createErr, &cmdErr) || cmdErr.Code != 48 {
			return createErr
		}
		res := db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: m.name},
			{Key: "validator", Value: validator},
		})
		if res.Err() != nil {
			return res.Err()
		}
	}
	for _, field := range m.schema.uniqueFields() {
		_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the document, generating an id when none is supplied.
func (m *Model[T]) Create(ctx context.Context, doc *T) error {
	m.ensureID(doc)
	_, err := m.coll.InsertOne(ctx, doc)
	return err
}

func (m *Model[T]) ensureID(doc *T) {
	f := reflect.ValueOf(doc).Elem().Field(m.idIdx)
	if f.String() == "" {
		f.SetString(NewID())
	}
}

// Find returns all documents matching the filter.
func (m *Model[T]) Find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := m.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*T
	for cur.Next(ctx) {
		doc := new(T)
		if err := cur.Decode(doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}

// FindOne returns the first document matching the filter, or ErrNotFound.
func (m *Model[T]) FindOne(ctx context.Context, filter any) (*T, error) {
	doc := new(T)
	err := m.coll.FindOne(ctx, filter).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindByID returns the document with the given id, or ErrNotFound.
func (m *Model[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return m.FindOne(ctx, bson.M{"_id": id})
}

// FindByIDAndUpdate applies the update to the identified document and
// returns the post-update document, or ErrNotFound.
func (m *Model[T]) FindByIDAndUpdate(ctx context.Context, id string, update bson.M) (*T, error) {
	return m.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, false)
}

// FindOneAndUpdate applies the update to the first matching document and
// returns the post-update document. With upsert enabled a missing document
// is inserted with the schema's declared defaults and a generated id.
func (m *Model[T]) FindOneAndUpdate(ctx context.Context, filter, update bson.M, upsert bool) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if upsert {
		opts.SetUpsert(true)
		update = m.withInsertDefaults(filter, update)
	}
	doc := new(T)
	err := m.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// withInsertDefaults merges schema defaults and a generated id into the
// update's $setOnInsert, skipping any path already written by $set to avoid
// update path conflicts.
func (m *Model[T]) withInsertDefaults(filter, update bson.M) bson.M {
	set, _ := update["$set"].(bson.M)
	onInsert := bson.M{}
	if existing, ok := update["$setOnInsert"].(bson.M); ok {
		for k, v := range existing {
			onInsert[k] = v
		}
	}
	for k, v := range m.schema.Defaults() {
		if _, taken := set[k]; taken {
			continue
		}
		if _, taken := onInsert[k]; taken {
			continue
		}
		onInsert[k] = v
	}
	if _, hasID := filter["_id"]; !hasID {
		if _, taken := onInsert["_id"]; !taken {
			onInsert["_id"] = NewID()
		}
	}
	merged := bson.M{}
	for k, v := range update {
		merged[k] = v
	}
	if len(onInsert) > 0 {
		merged["$setOnInsert"] = onInsert
	}
	return merged
}

// UpdateMany applies the update to every document matching the filter and
// returns the number modified.
func (m *Model[T]) UpdateMany(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := m.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// FindByIDAndDelete removes and returns the identified document, or
// ErrNotFound.
func (m *Model[T]) FindByIDAndDelete(ctx context.Context, id string) (*T, error) {
	doc := new(T)
	err := m.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteOne removes the first document matching the filter. Deleting a
// missing document is not an error.
func (m *Model[T]) DeleteOne(ctx context.Context, filter any) error {
	_, err := m.coll.DeleteOne(ctx, filter)
	return err
}

// CountDocuments counts documents matching the filter.
func (m *Model[T]) CountDocuments(ctx context.Context, filter any) (int64, error) {
	return m.coll.CountDocuments(ctx, filter)
}
