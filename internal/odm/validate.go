package odm

import (
	"fmt"
	"time"
)

// Issue describes a single validation failure at a field path. Handlers
// surface issues directly to the form as structured 400 payloads.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Validate checks a decoded JSON document against the schema and returns the
// list of issues found. In partial mode (deep-partial) missing fields are
// accepted at every nesting level and only present values are type-checked;
// in strict mode required fields must be present and non-empty. Unknown keys
// are ignored, matching the mapping layer which never persists undeclared
// fields.
func (s Schema) Validate(doc map[string]any, partial bool) []Issue {
	return s.validate("", doc, partial)
}

func (s Schema) validate(prefix string, doc map[string]any, partial bool) []Issue {
	var issues []Issue
	for name, f := range s {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		v, ok := doc[name]
		if !ok || v == nil {
			if f.Required && !partial {
				issues = append(issues, Issue{Path: path, Message: "required"})
			}
			continue
		}
		issues = append(issues, f.check(path, v, partial)...)
	}
	return issues
}

func (f Field) check(path string, v any, partial bool) []Issue {
	switch f.Kind {
	case String:
		str, ok := v.(string)
		if !ok {
			return []Issue{{Path: path, Message: "expected string"}}
		}
		if str == "" && f.Required && !partial {
			return []Issue{{Path: path, Message: "required"}}
		}
		if len(f.Enum) > 0 && str != "" {
			for _, e := range f.Enum {
				if str == e {
					return nil
				}
			}
			return []Issue{{Path: path, Message: fmt.Sprintf("must be one of %v", f.Enum)}}
		}
		return nil
	case Number:
		switch v.(type) {
		case float64, float32, int, int32, int64:
			return nil
		}
		return []Issue{{Path: path, Message: "expected number"}}
	case Bool:
		if _, ok := v.(bool); !ok {
			return []Issue{{Path: path, Message: "expected boolean"}}
		}
		return nil
	case Date:
		switch t := v.(type) {
		case time.Time:
			return nil
		case string:
			if _, err := time.Parse(time.RFC3339, t); err == nil {
				return nil
			}
			if _, err := time.Parse("2006-01-02", t); err == nil {
				return nil
			}
			return []Issue{{Path: path, Message: "expected date"}}
		default:
			return []Issue{{Path: path, Message: "expected date"}}
		}
	case Object:
		m, ok := v.(map[string]any)
		if !ok {
			return []Issue{{Path: path, Message: "expected object"}}
		}
		if f.Fields == nil {
			return nil
		}
		return f.Fields.validate(path, m, partial)
	case Array:
		arr, ok := v.([]any)
		if !ok {
			return []Issue{{Path: path, Message: "expected array"}}
		}
		if f.Elem == nil {
			return nil
		}
		var issues []Issue
		for i, item := range arr {
			issues = append(issues, f.Elem.check(fmt.Sprintf("%s.%d", path, i), item, partial)...)
		}
		return issues
	default:
		return []Issue{{Path: path, Message: "unsupported field kind"}}
	}
}
