package submission

import (
	"encoding/json"
	"testing"

	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStripsEmptyFields(t *testing.T) {
	doc := Build(&Payload{
		Kind:        models.KindLost,
		AnimalName:  "Buddy",
		Colors:      StringList{"Brown"},
		Location:    "Riverside Park",
		Description: "",
	})

	assert.NotContains(t, doc, "breed", "empty breed never reaches the store")
	assert.NotContains(t, doc, "description")
	assert.NotContains(t, doc, "age")
	assert.Equal(t, []any{"Brown"}, doc["colors"])
	assert.Equal(t, "Riverside Park", doc["last_seen_location"])
}

func TestBuildGenderDefaultsToUnknown(t *testing.T) {
	doc := Build(&Payload{Kind: models.KindLost})
	assert.Equal(t, "unknown", doc["gender"])

	doc = Build(&Payload{Kind: models.KindLost, Gender: "female"})
	assert.Equal(t, "female", doc["gender"])
}

func TestBuildColorsAlwaysAList(t *testing.T) {
	doc := Build(&Payload{Kind: models.KindFound})
	colors, ok := doc["colors"].([]any)
	require.True(t, ok, "colors must be a list even when absent")
	assert.Empty(t, colors)
}

func TestBuildLocationKeyPerKind(t *testing.T) {
	cases := []struct {
		kind models.ReportKind
		key  string
	}{
		{models.KindLost, "last_seen_location"},
		{models.KindFound, "found_location"},
		{models.KindAbuse, "incident_location"},
	}
	for _, tc := range cases {
		doc := Build(&Payload{Kind: tc.kind, Location: "Main St"})
		assert.Equal(t, "Main St", doc[tc.key], "kind %s", tc.kind)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := &Payload{
		Kind:     models.KindAbuse,
		Colors:   StringList{"black", "white"},
		Location: "Dock 4",
		Date:     "2026-08-20",
	}
	first, err := json.Marshal(Build(p))
	require.NoError(t, err)
	second, err := json.Marshal(Build(p))
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestCleanRemovesNestedEmpties(t *testing.T) {
	doc := Clean(map[string]any{
		"keep":  "value",
		"empty": "",
		"null":  nil,
		"nested": map[string]any{
			"inner": "",
		},
		"list": []any{"a", "", nil, map[string]any{"x": ""}},
		"tags": []any{},
	})

	assert.Equal(t, map[string]any{
		"keep": "value",
		"list": []any{"a"},
		"tags": []any{},
	}, doc)
}

func TestStringListAcceptsBothShapes(t *testing.T) {
	var single StringList
	require.NoError(t, json.Unmarshal([]byte(`"brown"`), &single))
	assert.Equal(t, StringList{"brown"}, single)

	var many StringList
	require.NoError(t, json.Unmarshal([]byte(`["brown","white"]`), &many))
	assert.Equal(t, StringList{"brown", "white"}, many)
}
