package notion

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// Property is one declared property (column) of a database schema, as
// reported by the database metadata endpoint.
type Property struct {
	ID   string
	Name string
	Type FieldType

	// raw keeps the full descriptor for types with extra configuration
	// (select options, formula expressions, ...).
	raw map[string]any
}

// Raw returns the full property descriptor from the API.
func (p Property) Raw() map[string]any { return p.raw }

// Database represents a remote structured collection of pages. The schema
// is loaded once at construction and not refreshed automatically.
type Database struct {
	client *Client
	id     string

	Title          string
	Description    string
	URL            string
	CreatedTime    time.Time
	LastEditedTime time.Time

	// properties is keyed by the original (non-slugified) display name.
	properties map[string]Property
}

// Database fetches a database by identifier and loads its metadata and
// property schema.
func (c *Client) Database(ctx context.Context, id string) (*Database, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: no database identifier provided", ErrNotFound)
	}
	db := &Database{client: c, id: id}
	if err := db.load(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// DatabaseByName resolves a database through the search endpoint. Only an
// exact match on the concatenated title text is accepted; substring and
// prefix matches are rejected.
func (c *Client) DatabaseByName(ctx context.Context, name string) (*Database, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no database name provided", ErrNotFound)
	}
	result, err := c.Request(ctx, http.MethodPost, "/search", map[string]any{
		"query": name,
		"filter": map[string]any{
			"property": "object",
			"value":    "database",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("database search failed: %w", err)
	}

	results, _ := result["results"].([]any)
	for _, entry := range results {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		title, err := Parse(TypeTitle, m["title"])
		if err != nil {
			continue
		}
		if title == name {
			id, _ := m["id"].(string)
			return c.Database(ctx, id)
		}
	}
	return nil, fmt.Errorf("%w: no database matches name %q", ErrNotFound, name)
}

// load fetches the database metadata and stores the raw property schema.
func (db *Database) load(ctx context.Context) error {
	details, err := db.client.Request(ctx, http.MethodGet, "/databases/"+db.id, nil)
	if err != nil {
		return fmt.Errorf("failed to load database %s: %w", db.id, err)
	}

	if id, ok := details["id"].(string); ok {
		db.id = id
	}
	db.URL, _ = details["url"].(string)
	db.CreatedTime = parseTimestamp(details["created_time"])
	db.LastEditedTime = parseTimestamp(details["last_edited_time"])

	if title, err := Parse(TypeTitle, details["title"]); err == nil {
		db.Title, _ = title.(string)
	}
	if desc, err := Parse(TypeRichText, details["description"]); err == nil {
		db.Description, _ = desc.(string)
	}

	db.properties = make(map[string]Property)
	props, _ := details["properties"].(map[string]any)
	for name, entry := range props {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := m["id"].(string)
		ptype, _ := m["type"].(string)
		db.properties[name] = Property{ID: id, Name: name, Type: FieldType(ptype), raw: m}
	}
	return nil
}

// ID returns the database identifier. Read-only after load.
func (db *Database) ID() string { return db.id }

// Properties returns the schema keyed by slug instead of original name.
// The view is recomputed on every call. When two original names collide
// after slugification the lexicographically last name wins; the remote
// property ordering is unspecified, so collisions are a known gap rather
// than a supported layout.
func (db *Database) Properties() map[string]Property {
	names := make([]string, 0, len(db.properties))
	for name := range db.properties {
		names = append(names, name)
	}
	sort.Strings(names)

	view := make(map[string]Property, len(names))
	for _, name := range names {
		view[Slug(name)] = db.properties[name]
	}
	return view
}

// Query runs a database query with the given parameters (filter, sorts,
// page_size, ...), forwarded verbatim to the API. Results are returned in
// API order; an empty result list is a valid outcome.
func (db *Database) Query(ctx context.Context, params map[string]any) ([]*Record, error) {
	if params == nil {
		params = map[string]any{}
	}
	result, err := db.client.Request(ctx, http.MethodPost, "/databases/"+db.id+"/query", params)
	if err != nil {
		return nil, fmt.Errorf("failed to query database %s: %w", db.id, err)
	}

	raw, _ := result["results"].([]any)
	records := make([]*Record, 0, len(raw))
	for _, entry := range raw {
		payload, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		record, err := RecordFromAPI(db, payload)
		if err != nil {
			return nil, fmt.Errorf("failed to parse query result: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// NewRecord constructs an unsaved record for this database with the title
// field pre-set. No API call is made until the record is committed.
func (db *Database) NewRecord(name string) *Record {
	return newRecord(db, name)
}

// parseTimestamp parses an RFC3339 timestamp from an API payload value,
// returning the zero time for missing or malformed values.
func parseTimestamp(value any) time.Time {
	s, ok := value.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
