package notion

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldType identifies the kind of a Notion property. The set mirrors the
// property types the API reports; any type without a dedicated parse or
// serialize rule falls through to the passthrough path.
type FieldType string

const (
	TypeCheckbox       FieldType = "checkbox"
	TypeCreatedBy      FieldType = "created_by"
	TypeCreatedTime    FieldType = "created_time"
	TypeDate           FieldType = "date"
	TypeEmail          FieldType = "email"
	TypeFiles          FieldType = "files"
	TypeFormula        FieldType = "formula"
	TypeIcon           FieldType = "icon"
	TypeLastEditedBy   FieldType = "last_edited_by"
	TypeLastEditedTime FieldType = "last_edited_time"
	TypeMultiSelect    FieldType = "multi_select"
	TypeNumber         FieldType = "number"
	TypePhoneNumber    FieldType = "phone_number"
	TypeRelation       FieldType = "relation"
	TypeRichText       FieldType = "rich_text"
	TypeRollup         FieldType = "rollup"
	TypeSelect         FieldType = "select"
	TypeTitle          FieldType = "title"
	TypeURL            FieldType = "url"
)

// dateLayout is the calendar-date portion of the ISO-8601 values Notion
// sends in date properties. Time-of-day is discarded on parse.
const dateLayout = "2006-01-02"

var (
	// guidPattern matches Notion page identifiers. Anchored at the start
	// only, matching the original lookup behavior.
	guidPattern = regexp.MustCompile(`^\w{8}-\w{4}-\w{4}-\w{4}-\w{12}`)

	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slug converts a human-readable property name to the snake_case
// identifier used to address fields locally. Slug is idempotent.
func Slug(value string) string {
	value = strings.ToLower(strings.TrimSpace(slugStrip.ReplaceAllString(value, "")))
	return slugCollapse.ReplaceAllString(value, "_")
}

// Detect infers a FieldType from a native value. The heuristic is
// type-ambiguous: any string shaped like a Notion GUID is treated as a
// relation reference, even when it is coincidentally plain text.
func Detect(value any) (FieldType, error) {
	switch v := value.(type) {
	case time.Time:
		return TypeDate, nil
	case string:
		if guidPattern.MatchString(v) {
			return TypeRelation, nil
		}
		return TypeRichText, nil
	case bool:
		return TypeCheckbox, nil
	case []any, []string:
		return TypeMultiSelect, nil
	case int, int32, int64, float32, float64:
		return TypeNumber, nil
	default:
		return "", fmt.Errorf("cannot detect field type for value of type %T", value)
	}
}

// Parse converts the raw JSON details of a property into a native value
// according to the field type. Types without a dedicated rule pass the
// raw details through unchanged.
func Parse(ftype FieldType, details any) (any, error) {
	switch ftype {
	case TypeDate:
		m, ok := details.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("date details are %T, expected object", details)
		}
		start, _ := m["start"].(string)
		if len(start) < len(dateLayout) {
			return nil, fmt.Errorf("invalid date start value %q", start)
		}
		t, err := time.Parse(dateLayout, start[:len(dateLayout)])
		if err != nil {
			return nil, fmt.Errorf("failed to parse date %q: %w", start, err)
		}
		return t, nil

	case TypeCreatedBy, TypeLastEditedBy:
		m, ok := details.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s details are %T, expected object", ftype, details)
		}
		id, _ := m["id"].(string)
		return id, nil

	case TypeTitle, TypeRichText:
		runs, ok := details.([]any)
		if !ok {
			return nil, fmt.Errorf("%s details are %T, expected array", ftype, details)
		}
		var b strings.Builder
		for _, run := range runs {
			m, ok := run.(map[string]any)
			if !ok {
				continue
			}
			if text, ok := m["plain_text"].(string); ok {
				b.WriteString(text)
			}
		}
		return b.String(), nil

	case TypeRelation:
		refs, ok := details.([]any)
		if !ok {
			return nil, fmt.Errorf("relation details are %T, expected array", details)
		}
		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			if m, ok := ref.(map[string]any); ok {
				if id, ok := m["id"].(string); ok {
					ids = append(ids, id)
				}
			}
		}
		return ids, nil

	case TypeFormula, TypeRollup:
		// Unwrap one level using the nested type discriminator.
		m, ok := details.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s details are %T, expected object", ftype, details)
		}
		inner, _ := m["type"].(string)
		return m[inner], nil

	default:
		return details, nil
	}
}

// Field is one named, typed value on a Record. The display name used on
// the wire is resolved lazily through the parent record's database schema
// at serialization time, so a field can be attached before the schema is
// ever consulted.
type Field struct {
	record *Record
	name   string
	ftype  FieldType
	value  any
}

// NewField creates a field with its type inferred from the value.
func NewField(name string, value any) (*Field, error) {
	ftype, err := Detect(value)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	return &Field{name: Slug(name), ftype: ftype, value: value}, nil
}

// NewTypedField creates a field with an explicit type, bypassing detection.
func NewTypedField(name string, ftype FieldType, value any) *Field {
	return &Field{name: Slug(name), ftype: ftype, value: value}
}

// fieldFromAPI builds a Field from one property entry of a page payload.
// Properties with a null value hydrate with a nil value.
func fieldFromAPI(record *Record, name string, details map[string]any) (*Field, error) {
	ftype, _ := details["type"].(string)
	if ftype == "" {
		return nil, fmt.Errorf("property %q has no type discriminator", name)
	}
	f := &Field{record: record, name: Slug(name), ftype: FieldType(ftype)}
	if raw, ok := details[ftype]; ok && raw != nil {
		value, err := Parse(f.ftype, raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		f.value = value
	}
	return f, nil
}

// Name returns the slugified field name.
func (f *Field) Name() string { return f.name }

// Type returns the field type.
func (f *Field) Type() FieldType { return f.ftype }

// Value returns the native value.
func (f *Field) Value() any { return f.value }

func (f *Field) String() string {
	return fmt.Sprintf("<Field %s (%s)>", f.name, f.ftype)
}

// displayName resolves the original property name through the parent
// database schema. It fails if the field is detached or the slug is not
// in the schema.
func (f *Field) displayName() (string, error) {
	if f.record == nil || f.record.parent == nil {
		return "", fmt.Errorf("field %q is not attached to a database record", f.name)
	}
	prop, ok := f.record.parent.Properties()[f.name]
	if !ok {
		return "", fmt.Errorf("field %q is not declared on the parent database", f.name)
	}
	return prop.Name, nil
}

// apiBody serializes the field value into the JSON fragment the API
// expects for its type. Unlisted types use the passthrough form
// {type_name: value}, which is lossy for compound types.
func (f *Field) apiBody() map[string]any {
	switch f.ftype {
	case TypeTitle, TypeRichText:
		return map[string]any{
			string(f.ftype): []any{
				map[string]any{
					"text": map[string]any{"content": f.value},
				},
			},
		}
	case TypeDate:
		t, _ := f.value.(time.Time)
		return map[string]any{
			"date": map[string]any{"start": t.Format(dateLayout)},
		}
	case TypeRelation:
		// Only a single related page is supported per field.
		return map[string]any{
			"relation": []any{
				map[string]any{"id": f.value},
			},
		}
	default:
		return map[string]any{string(f.ftype): f.value}
	}
}
