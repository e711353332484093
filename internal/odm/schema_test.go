package odm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestValidatorTranslation(t *testing.T) {
	s := Schema{
		"name":   {Kind: String, Required: true},
		"status": {Kind: String, Enum: []string{"draft", "ready"}},
		"rent":   {Kind: Number},
		"tags":   {Kind: Array, Elem: &Field{Kind: String}},
		"owner": {Kind: Object, Fields: Schema{
			"id": {Kind: String, Required: true},
		}},
	}

	v, err := s.Validator()
	require.NoError(t, err)

	body, ok := v["$jsonSchema"].(bson.M)
	require.True(t, ok)
	require.Equal(t, "object", body["bsonType"])
	require.ElementsMatch(t, []string{"name"}, body["required"])

	props := body["properties"].(bson.M)
	require.Equal(t, bson.M{"bsonType": "string"}, props["name"])
	require.Equal(t, []string{"draft", "ready"}, props["status"].(bson.M)["enum"])

	tags := props["tags"].(bson.M)
	require.Equal(t, "array", tags["bsonType"])
	require.Equal(t, bson.M{"bsonType": "string"}, tags["items"])

	owner := props["owner"].(bson.M)
	require.ElementsMatch(t, []string{"id"}, owner["required"])
}

func TestValidatorRejectsUnknownKind(t *testing.T) {
	s := Schema{"broken": {Kind: Kind(99)}}
	_, err := s.Validator()
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken")
}

func TestValidatorOpenObject(t *testing.T) {
	// An Object without nested fields is an untyped bag; the validator must
	// not constrain its contents.
	s := Schema{"data": {Kind: Object}}
	v, err := s.Validator()
	require.NoError(t, err)
	props := v["$jsonSchema"].(bson.M)["properties"].(bson.M)
	require.Equal(t, bson.M{"bsonType": "object"}, props["data"])
}

func TestDefaults(t *testing.T) {
	s := Schema{
		"status": {Kind: String, Default: "draft"},
		"count":  {Kind: Number},
	}
	d := s.Defaults()
	require.Equal(t, bson.M{"status": "draft"}, d)
}

func TestUniqueFields(t *testing.T) {
	s := Schema{
		"email": {Kind: String, Unique: true},
		"name":  {Kind: String},
	}
	require.Equal(t, []string{"email"}, s.uniqueFields())
}
