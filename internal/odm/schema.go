// Package odm is a thin schema-mapping layer between declarative field
// definitions and the MongoDB driver. A Schema describes the shape of a
// collection with language-neutral field kinds; the package translates it
// into a native $jsonSchema validator plus unique indexes, and exposes a
// uniform model interface for CRUD and query operations. Documents are read
// "lean": plain structs decoded through bson tags, no live-object semantics.
package odm

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Kind enumerates the supported field types.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Date
	Object
	Array
)

var kindNames = map[Kind]string{
	String: "string",
	Number: "number",
	Bool:   "boolean",
	Date:   "date",
	Object: "object",
	Array:  "array",
}

// Field declares a single schema field. Object fields nest a Schema under
// Fields; Array fields describe their element under Elem. Default values are
// applied when an upsert inserts a new document. Unique fields get a unique
// index on the collection.
type Field struct {
	Kind     Kind
	Required bool
	Unique   bool
	Default  any
	Enum     []string
	Fields   Schema
	Elem     *Field
}

// Schema maps field names to their declarations.
type Schema map[string]Field

// Validator translates the schema into a MongoDB $jsonSchema document
// suitable for a collection validator. It returns an error when an
// unsupported kind is declared; this is a configuration error surfaced at
// startup, not a runtime user error.
func (s Schema) Validator() (bson.M, error) {
	body, err := s.jsonSchema()
	if err != nil {
		return nil, err
	}
	return bson.M{"$jsonSchema": body}, nil
}

func (s Schema) jsonSchema() (bson.M, error) {
	props := bson.M{}
	var required []string
	for name, f := range s {
		p, err := f.jsonSchema()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		props[name] = p
		if f.Required {
			required = append(required, name)
		}
	}
	out := bson.M{"bsonType": "object", "properties": props}
	if len(required) > 0 {
		out["required"] = required
	}
	return out, nil
}

func (f Field) jsonSchema() (bson.M, error) {
	switch f.Kind {
	case String:
		p := bson.M{"bsonType": "string"}
		if len(f.Enum) > 0 {
			p["enum"] = f.Enum
		}
		return p, nil
	case Number:
		return bson.M{"bsonType": []string{"double", "int", "long", "decimal"}}, nil
	case Bool:
		return bson.M{"bsonType": "bool"}, nil
	case Date:
		return bson.M{"bsonType": "date"}, nil
	case Object:
		if f.Fields == nil {
			// open object: an untyped bag validated at the boundary instead
			return bson.M{"bsonType": "object"}, nil
		}
		return f.Fields.jsonSchema()
	case Array:
		p := bson.M{"bsonType": "array"}
		if f.Elem != nil {
			item, err := f.Elem.jsonSchema()
			if err != nil {
				return nil, err
			}
			p["items"] = item
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %d", f.Kind)
	}
}

// Defaults collects the declared default values for top-level fields. The
// result is used as the $setOnInsert document for upserts.
func (s Schema) Defaults() bson.M {
	out := bson.M{}
	for name, f := range s {
		if f.Default != nil {
			out[name] = f.Default
		}
	}
	return out
}

// uniqueFields returns the names of fields declared Unique, for index
// creation at startup.
func (s Schema) uniqueFields() []string {
	var out []string
	for name, f := range s {
		if f.Unique {
			out = append(out, name)
		}
	}
	return out
}
