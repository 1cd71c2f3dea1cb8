package notion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Habit Analytics":         "habit_analytics",
		"Prior Weekly Discipline": "prior_weekly_discipline",
		"  Days -- Completed!  ":  "days_completed",
		"Date":                    "date",
		"name":                    "name",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slug(input), "Slug(%q)", input)
	}
}

func TestSlug_Idempotent(t *testing.T) {
	inputs := []string{"Habit Analytics", "Week: Jan 05, 2024", "days", "A - B - C"}
	for _, input := range inputs {
		once := Slug(input)
		assert.Equal(t, once, Slug(once), "Slug not idempotent for %q", input)
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  FieldType
	}{
		{"guid string", "550e8400-e29b-41d4-a716-446655440000", TypeRelation},
		{"generated page id", uuid.NewString(), TypeRelation},
		{"plain string", "hello world", TypeRichText},
		{"bool", true, TypeCheckbox},
		{"list", []any{1, 2, 3}, TypeMultiSelect},
		{"string list", []string{"a", "b"}, TypeMultiSelect},
		{"int", 42, TypeNumber},
		{"float", 4.2, TypeNumber},
		{"time", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), TypeDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Detect(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDetect_UnsupportedValue(t *testing.T) {
	_, err := Detect(nil)
	assert.Error(t, err)

	_, err = Detect(struct{}{})
	assert.Error(t, err)
}

func TestParse_TitleConcatenatesRuns(t *testing.T) {
	runs := []any{
		map[string]any{"plain_text": "Week: "},
		map[string]any{"plain_text": "Jan 05, "},
		map[string]any{"plain_text": "2024"},
	}
	value, err := Parse(TypeTitle, runs)
	require.NoError(t, err)
	assert.Equal(t, "Week: Jan 05, 2024", value)
}

func TestParse_RichTextEmpty(t *testing.T) {
	value, err := Parse(TypeRichText, []any{})
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestParse_DateDiscardsTimeOfDay(t *testing.T) {
	value, err := Parse(TypeDate, map[string]any{"start": "2024-01-05T10:30:00.000+01:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), value)
}

func TestParse_DateInvalid(t *testing.T) {
	_, err := Parse(TypeDate, map[string]any{"start": "nope"})
	assert.Error(t, err)

	_, err = Parse(TypeDate, "2024-01-05")
	assert.Error(t, err)
}

func TestParse_RelationKeepsOrder(t *testing.T) {
	first, second := uuid.NewString(), uuid.NewString()
	value, err := Parse(TypeRelation, []any{
		map[string]any{"id": first},
		map[string]any{"id": second},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, value)
}

func TestParse_AuthorFields(t *testing.T) {
	author := uuid.NewString()
	for _, ftype := range []FieldType{TypeCreatedBy, TypeLastEditedBy} {
		value, err := Parse(ftype, map[string]any{"id": author, "object": "user"})
		require.NoError(t, err)
		assert.Equal(t, author, value)
	}
}

func TestParse_FormulaUnwrapsOneLevel(t *testing.T) {
	value, err := Parse(TypeFormula, map[string]any{"type": "number", "number": 12.0})
	require.NoError(t, err)
	assert.Equal(t, 12.0, value)

	value, err = Parse(TypeRollup, map[string]any{"type": "number", "number": 3.0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, value)
}

func TestParse_PassthroughForOtherTypes(t *testing.T) {
	value, err := Parse(TypeCheckbox, true)
	require.NoError(t, err)
	assert.Equal(t, true, value)

	value, err = Parse(TypeNumber, 7.0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, value)

	raw := map[string]any{"name": "Done", "color": "green"}
	value, err = Parse(TypeSelect, raw)
	require.NoError(t, err)
	assert.Equal(t, raw, value)
}

func TestFieldAPIBody_Title(t *testing.T) {
	f := NewTypedField("name", TypeTitle, "Week: Jan 05, 2024")
	body := f.apiBody()

	runs, ok := body["title"].([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)
	text := runs[0].(map[string]any)["text"].(map[string]any)
	assert.Equal(t, "Week: Jan 05, 2024", text["content"])
}

func TestFieldAPIBody_DateRoundTrip(t *testing.T) {
	day := time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC)
	f := NewTypedField("date", TypeDate, day)
	body := f.apiBody()

	assert.Equal(t, "2024-01-05", body["date"].(map[string]any)["start"])

	// Only the calendar date survives the round trip.
	parsed, err := Parse(TypeDate, body["date"])
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), parsed)
}

func TestFieldAPIBody_RelationSingleElement(t *testing.T) {
	pageID := uuid.NewString()
	f := NewTypedField("habit_analytics", TypeRelation, pageID)
	body := f.apiBody()

	refs, ok := body["relation"].([]any)
	require.True(t, ok)
	require.Len(t, refs, 1)
	assert.Equal(t, pageID, refs[0].(map[string]any)["id"])
}

func TestFieldAPIBody_PassthroughFallback(t *testing.T) {
	f := NewTypedField("done", TypeCheckbox, true)
	assert.Equal(t, map[string]any{"checkbox": true}, f.apiBody())

	f = NewTypedField("score", TypeNumber, 42)
	assert.Equal(t, map[string]any{"number": 42}, f.apiBody())
}

func TestNewField_DetectsType(t *testing.T) {
	f, err := NewField("Habit Analytics", uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, "habit_analytics", f.Name())
	assert.Equal(t, TypeRelation, f.Type())

	_, err = NewField("bad", nil)
	assert.Error(t, err)
}
