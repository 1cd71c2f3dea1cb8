package habits

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/robby/nhp/internal/notion"
)

// titleDateLayout formats today's date for record titles, e.g. "Jan 05, 2024".
const titleDateLayout = "Jan 02, 2006"

// Builder creates habit record pages. It holds an API client and an
// immutable configuration; records are returned uncommitted so the caller
// decides when to write.
type Builder struct {
	client *notion.Client
	cfg    Config
	log    *zap.SugaredLogger

	// now is swapped in tests to pin the date.
	now func() time.Time
}

// NewBuilder creates a Builder. A nil logger is replaced with a no-op one.
func NewBuilder(client *notion.Client, cfg Config, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Builder{client: client, cfg: cfg, log: log, now: time.Now}
}

// BuildPage constructs an uncommitted habit record for the given page
// type: resolves the parent database, titles the record with the
// configured prefix and today's date, sets the date field, links the
// analytics page, and for carry-forward types copies the most recent
// record's identifier and days value into the new record.
func (b *Builder) BuildPage(ctx context.Context, pageType string) (*notion.Record, error) {
	tc, ok := b.cfg.Types[pageType]
	if !ok {
		return nil, fmt.Errorf("%w: unable to identify record configuration for %q habits", ErrUnknownType, pageType)
	}

	db, err := b.resolveDatabase(ctx, pageType, tc)
	if err != nil {
		return nil, err
	}
	b.log.Infow("adding habit record to parent database", "type", pageType, "database", db.ID())

	today := b.now()
	record := db.NewRecord(fmt.Sprintf("%s %s", tc.TitlePrefix, today.Format(titleDateLayout)))
	record.Set("date", today)

	analyticsID, err := b.resolveAnalyticsPage(ctx, db)
	if err != nil {
		return nil, err
	}
	record.Set("habit_analytics", analyticsID)

	if tc.CarryPrior {
		if err := b.carryPrior(ctx, db, record); err != nil {
			return nil, err
		}
	}

	b.log.Infow("created habit record", "type", pageType, "title", record.Name())
	return record, nil
}

// resolveDatabase loads the parent database by identifier when configured,
// otherwise by exact display name.
func (b *Builder) resolveDatabase(ctx context.Context, pageType string, tc TypeConfig) (*notion.Database, error) {
	switch {
	case tc.DatabaseID != "":
		return b.client.Database(ctx, tc.DatabaseID)
	case tc.DatabaseName != "":
		return b.client.DatabaseByName(ctx, tc.DatabaseName)
	default:
		return nil, fmt.Errorf("%w: unable to identify %s database identifier in environment or configuration", ErrConfig, pageType)
	}
}

// resolveAnalyticsPage returns the identifier of the analytics linking
// page: the explicitly configured page when set, otherwise the first page
// of the analytics database whose title starts with the prefix derived
// from the parent database title (its first word).
func (b *Builder) resolveAnalyticsPage(ctx context.Context, parent *notion.Database) (string, error) {
	if b.cfg.SummaryPageID != "" {
		return b.cfg.SummaryPageID, nil
	}
	if b.cfg.AnalyticsDatabase == "" {
		return "", fmt.Errorf("%w: no summary page identifier or analytics database configured", ErrConfig)
	}

	analytics, err := b.client.DatabaseByName(ctx, b.cfg.AnalyticsDatabase)
	if err != nil {
		return "", err
	}

	prefix := parent.Title
	if words := strings.Fields(parent.Title); len(words) > 0 {
		prefix = words[0]
	}
	results, err := analytics.Query(ctx, map[string]any{
		"page_size": 1,
		"filter": map[string]any{
			"property": "Name",
			"title":    map[string]any{"starts_with": prefix},
		},
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: no analytics page matches prefix %q", notion.ErrNotFound, prefix)
	}
	return results[0].ID(), nil
}

// carryPrior queries the most recent record in the parent database (by
// the "Date" property, descending) and copies its identifier and days
// value onto the new record. A database with no prior records is left
// without the carry-forward fields.
func (b *Builder) carryPrior(ctx context.Context, db *notion.Database, record *notion.Record) error {
	results, err := db.Query(ctx, map[string]any{
		"page_size": 1,
		"sorts": []any{
			map[string]any{
				"property":  "Date",
				"direction": "descending",
			},
		},
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		b.log.Warnw("no prior record to carry forward", "database", db.ID())
		return nil
	}

	prior := results[0]
	record.Set("prior_weekly_discipline", prior.ID())
	if value, ok := prior.Get("days"); ok {
		if f, isField := value.(*notion.Field); isField {
			value = f.Value()
		}
		if value != nil {
			record.Set("days", value)
		}
	}
	return nil
}
