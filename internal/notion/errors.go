package notion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates no remote object matched the lookup.
var ErrNotFound = errors.New("not found")

// APIError is returned for any non-2xx response from the Notion API.
// It carries the raw status and body verbatim; no retry is attempted.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error (status %d): %s", e.Status, e.Body)
}

// SchemaError is returned when a record carries fields that are not
// declared on its parent database. Fields lists every offending slug,
// not just the first.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("record properties do not exist on parent database: %s",
		strings.Join(e.Fields, ", "))
}
