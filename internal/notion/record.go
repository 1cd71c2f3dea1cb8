package notion

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// Record represents one row page of a database. Fields live in an
// explicit ordered map: values are either native Go values (wrapped in a
// Field with a detected type at serialization time) or *Field instances
// with an explicit type. The parent database is a read-only back-reference
// used for schema lookups, and must outlive the record.
type Record struct {
	id     string
	parent *Database

	URL            string
	CreatedTime    time.Time
	LastEditedTime time.Time

	names  []string
	fields map[string]any
}

func newRecord(parent *Database, name string) *Record {
	r := &Record{parent: parent, fields: make(map[string]any)}
	r.Set("name", NewTypedField("name", TypeTitle, name))
	return r
}

// RecordFromAPI hydrates a record from a page payload returned by a query.
// The title property is located by type; every other property becomes a
// field parsed through its type's rule. The slug "name" is skipped in the
// property loop since the title already covers it.
func RecordFromAPI(parent *Database, payload map[string]any) (*Record, error) {
	props, _ := payload["properties"].(map[string]any)

	var title string
	found := false
	for _, entry := range props {
		m, ok := entry.(map[string]any)
		if !ok || m["type"] != "title" {
			continue
		}
		value, err := Parse(TypeTitle, m["title"])
		if err != nil {
			return nil, fmt.Errorf("failed to parse title property: %w", err)
		}
		title, _ = value.(string)
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("page payload has no title property")
	}

	record := newRecord(parent, title)
	record.id, _ = payload["id"].(string)
	record.URL, _ = payload["url"].(string)
	record.CreatedTime = parseTimestamp(payload["created_time"])
	record.LastEditedTime = parseTimestamp(payload["last_edited_time"])

	// Sort property names so hydration order is deterministic.
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		details, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		field, err := fieldFromAPI(record, name, details)
		if err != nil {
			return nil, err
		}
		if field.name == "name" {
			continue
		}
		record.Set(field.name, field)
	}
	return record, nil
}

// ID returns the record identifier, empty until the first commit and
// immutable thereafter.
func (r *Record) ID() string { return r.id }

// Parent returns the database this record belongs to.
func (r *Record) Parent() *Database { return r.parent }

// Set assigns a field value by name. The name is slugified; the value may
// be a plain native value or a *Field. Assigning a *Field attaches it to
// this record for display-name resolution.
func (r *Record) Set(name string, value any) {
	slug := Slug(name)
	if _, exists := r.fields[slug]; !exists {
		r.names = append(r.names, slug)
	}
	if f, ok := value.(*Field); ok {
		f.record = r
		f.name = slug
	}
	r.fields[slug] = value
}

// Get returns the value assigned to a field name, reporting whether it
// was set. The value is returned as stored: a *Field stays a *Field.
func (r *Record) Get(name string) (any, bool) {
	value, ok := r.fields[Slug(name)]
	return value, ok
}

// FieldNames returns the slugs of all assigned fields in insertion order.
func (r *Record) FieldNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Name returns the record's title field value.
func (r *Record) Name() string {
	value, ok := r.fields["name"]
	if !ok {
		return ""
	}
	if f, ok := value.(*Field); ok {
		name, _ := f.value.(string)
		return name
	}
	name, _ := value.(string)
	return name
}

// AsMap returns field values keyed by slug, with Field wrappers unwrapped
// to their native values.
func (r *Record) AsMap() map[string]any {
	out := make(map[string]any, len(r.names))
	for _, name := range r.names {
		value := r.fields[name]
		if f, ok := value.(*Field); ok {
			value = f.value
		}
		out[name] = value
	}
	return out
}

// Values returns the native field values in insertion order.
func (r *Record) Values() []any {
	values := make([]any, 0, len(r.names))
	for _, name := range r.names {
		value := r.fields[name]
		if f, ok := value.(*Field); ok {
			value = f.value
		}
		values = append(values, value)
	}
	return values
}

func (r *Record) String() string {
	return fmt.Sprintf("<Record (%s)>", r.Name())
}

// RequestBody builds the page create/update body. Every assigned field
// must be declared on the parent database schema; unrecognized fields
// fail with a *SchemaError naming all of them. Serialized fields are
// keyed by display name resolved through the schema, not by slug.
func (r *Record) RequestBody() (map[string]any, error) {
	schema := r.parent.Properties()

	var invalid []string
	for _, name := range r.names {
		if _, ok := schema[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return nil, &SchemaError{Fields: invalid}
	}

	properties := make(map[string]any, len(r.names))
	for _, name := range r.names {
		value := r.fields[name]
		field, ok := value.(*Field)
		if !ok {
			var err error
			field, err = NewField(name, value)
			if err != nil {
				return nil, err
			}
			field.record = r
		}
		display, err := field.displayName()
		if err != nil {
			return nil, err
		}
		properties[display] = field.apiBody()
	}

	return map[string]any{
		"properties": properties,
		"parent":     map[string]any{"database_id": r.parent.ID()},
	}, nil
}

// Commit sends the full current field set to the API: a create when the
// record has no identifier yet, an update against the existing page
// otherwise. The identifier returned by the first create becomes the
// record's permanent identity. There is no dirty tracking; every commit
// re-serializes everything.
func (r *Record) Commit(ctx context.Context) (string, error) {
	body, err := r.RequestBody()
	if err != nil {
		return "", err
	}

	client := r.parent.client
	if r.id != "" {
		if _, err := client.Request(ctx, http.MethodPatch, "/pages/"+r.id, body); err != nil {
			return "", fmt.Errorf("failed to update page %s: %w", r.id, err)
		}
		return r.id, nil
	}

	result, err := client.Request(ctx, http.MethodPost, "/pages", body)
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	id, _ := result["id"].(string)
	if id == "" {
		return "", fmt.Errorf("create response carried no page identifier")
	}
	r.id = id
	if url, ok := result["url"].(string); ok {
		r.URL = url
	}
	return r.id, nil
}
