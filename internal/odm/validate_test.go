package odm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var formSchema = Schema{
	"profile": {Kind: Object, Required: true, Fields: Schema{
		"name":  {Kind: String, Required: true},
		"phone": {Kind: String},
	}},
	"pricing": {Kind: Object, Required: true, Fields: Schema{
		"rent": {Kind: Number, Required: true},
	}},
	"kind":  {Kind: String, Enum: []string{"apartment", "house"}},
	"dates": {Kind: Object, Fields: Schema{"from": {Kind: Date}}},
}

func paths(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Path)
	}
	return out
}

func TestValidatePartialAcceptsMissingAtEveryLevel(t *testing.T) {
	// Half-filled drafts are fine: a whole step can be absent, and a present
	// step can miss required members.
	doc := map[string]any{
		"profile": map[string]any{"phone": "+33 6 00 00 00 00"},
	}
	require.Empty(t, formSchema.Validate(doc, true))
}

func TestValidatePartialStillChecksTypes(t *testing.T) {
	doc := map[string]any{
		"pricing": map[string]any{"rent": "not a number"},
	}
	issues := formSchema.Validate(doc, true)
	require.Equal(t, []string{"pricing.rent"}, paths(issues))
	require.Equal(t, "expected number", issues[0].Message)
}

func TestValidateStrictRequiresNestedFields(t *testing.T) {
	doc := map[string]any{
		"profile": map[string]any{"name": "Marie"},
	}
	issues := formSchema.Validate(doc, false)
	require.ElementsMatch(t, []string{"pricing"}, paths(issues))

	doc["pricing"] = map[string]any{}
	issues = formSchema.Validate(doc, false)
	require.ElementsMatch(t, []string{"pricing.rent"}, paths(issues))
}

func TestValidateStrictRejectsEmptyRequiredString(t *testing.T) {
	doc := map[string]any{
		"profile": map[string]any{"name": ""},
		"pricing": map[string]any{"rent": 900.0},
	}
	issues := formSchema.Validate(doc, false)
	require.Equal(t, []string{"profile.name"}, paths(issues))
}

func TestValidateEnum(t *testing.T) {
	doc := map[string]any{
		"profile": map[string]any{"name": "Marie"},
		"pricing": map[string]any{"rent": 900.0},
		"kind":    "castle",
	}
	issues := formSchema.Validate(doc, false)
	require.Equal(t, []string{"kind"}, paths(issues))

	doc["kind"] = "house"
	require.Empty(t, formSchema.Validate(doc, false))
}

func TestValidateDateFormats(t *testing.T) {
	for _, v := range []string{"2026-07-01", "2026-07-01T00:00:00Z"} {
		doc := map[string]any{"dates": map[string]any{"from": v}}
		require.Empty(t, formSchema.Validate(doc, true), v)
	}
	doc := map[string]any{"dates": map[string]any{"from": "next tuesday"}}
	require.Equal(t, []string{"dates.from"}, paths(formSchema.Validate(doc, true)))
}

func TestValidateIgnoresUnknownKeys(t *testing.T) {
	doc := map[string]any{
		"profile":   map[string]any{"name": "Marie", "extra": 42},
		"pricing":   map[string]any{"rent": 900.0},
		"legacyKey": "whatever",
	}
	require.Empty(t, formSchema.Validate(doc, false))
}

func TestValidateArrayElements(t *testing.T) {
	s := Schema{
		"images": {Kind: Array, Elem: &Field{Kind: Object, Fields: Schema{
			"url": {Kind: String, Required: true},
		}}},
	}
	doc := map[string]any{"images": []any{
		map[string]any{"url": "https://cdn.example/a.jpg"},
		map[string]any{"alt": "no url"},
	}}
	issues := s.Validate(doc, false)
	require.Equal(t, []string{"images.1.url"}, paths(issues))
}
