package notion

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient starts a local API server and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("secret-token", WithBaseURL(srv.URL))
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Handlers run on server goroutines; report without FailNow.
		t.Errorf("failed to encode response: %v", err)
	}
}

// textRuns builds a rich-text array of plain-text runs.
func textRuns(texts ...string) []any {
	runs := make([]any, len(texts))
	for i, text := range texts {
		runs[i] = map[string]any{"plain_text": text}
	}
	return runs
}

// databasePayload builds a database metadata response with the habit
// tracker schema used throughout the tests.
func databasePayload(id, title string) map[string]any {
	return map[string]any{
		"id":               id,
		"url":              "https://www.notion.so/" + id,
		"created_time":     "2024-01-01T09:00:00.000Z",
		"last_edited_time": "2024-01-04T18:30:00.000Z",
		"title":            textRuns(title),
		"description":      textRuns("Tracks ", "habits."),
		"properties": map[string]any{
			"Name":    map[string]any{"id": "t%3AA", "name": "Name", "type": "title"},
			"Date":    map[string]any{"id": "d%3AB", "name": "Date", "type": "date"},
			"Summary": map[string]any{"id": "r%3AC", "name": "Summary", "type": "relation"},
			"Days":    map[string]any{"id": "n%3AD", "name": "Days", "type": "number"},
		},
	}
}

// pagePayload builds a page query-result entry with a title, date,
// relation and number property.
func pagePayload(id, title, start, relationID string, days float64) map[string]any {
	return map[string]any{
		"id":               id,
		"url":              "https://www.notion.so/" + id,
		"created_time":     "2024-01-05T08:00:00.000Z",
		"last_edited_time": "2024-01-05T08:15:00.000Z",
		"properties": map[string]any{
			"Name": map[string]any{"type": "title", "title": textRuns(title)},
			"Date": map[string]any{"type": "date", "date": map[string]any{"start": start}},
			"Summary": map[string]any{"type": "relation", "relation": []any{
				map[string]any{"id": relationID},
			}},
			"Days": map[string]any{"type": "number", "number": days},
		},
	}
}
