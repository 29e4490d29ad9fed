// Package db provides the whitelisted SQL Server data sources and the
// queries the report API runs against them.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/guregu/null/v5"
	_ "github.com/microsoft/go-mssqldb" // sqlserver driver

	"github.com/atlatec/pozo-report-api/config"
)

// TagMap holds the site-specific sensor tag name for each logical report
// field. Tag naming drifts between installations, so the mapping is
// per-connection configuration rather than constants.
type TagMap struct {
	PresionTP       string
	PresionTR       string
	LDD             string
	TemperaturaPozo string
	PresionSuccion  string
	PresionDescarga string
	Velocidad       string
	TempDescarga    string
	TempSuccion     string
	Qiny            string
}

// args returns the tag names in query parameter order.
func (m TagMap) args() []any {
	return []any{
		m.PresionTP,
		m.PresionTR,
		m.LDD,
		m.TemperaturaPozo,
		m.PresionSuccion,
		m.PresionDescarga,
		m.Velocidad,
		m.TempDescarga,
		m.TempSuccion,
		m.Qiny,
	}
}

func tagMapFromConfig(c config.Connection) TagMap {
	return TagMap{
		PresionTP:       c.TagPresionTP,
		PresionTR:       c.TagPresionTR,
		LDD:             c.TagLDD,
		TemperaturaPozo: c.TagTemperaturaPozo,
		PresionSuccion:  c.TagPresionSuccion,
		PresionDescarga: c.TagPresionDescarga,
		Velocidad:       c.TagVelocidad,
		TempDescarga:    c.TagTempDescarga,
		TempSuccion:     c.TagTempSuccion,
		Qiny:            c.TagQiny,
	}
}

// SensorReadings holds one bucket's averages. Every field is nullable: a
// bucket may have samples of some tags and none of others.
type SensorReadings struct {
	PresionTP       null.Float
	PresionTR       null.Float
	LDD             null.Float
	TemperaturaPozo null.Float
	PresionSuccion  null.Float
	PresionDescarga null.Float
	Velocidad       null.Float
	TempDescarga    null.Float
	TempSuccion     null.Float
	Qiny            null.Float
}

// HourAverages is one hour bucket of a daily report query.
type HourAverages struct {
	WellName string
	Hour     int
	SensorReadings
}

// DayAverages is one day bucket of a monthly report query.
type DayAverages struct {
	WellName string
	Day      time.Time
	SensorReadings
}

// WellSummary is an id/name pair from the wells table.
type WellSummary struct {
	ID   int    `json:"IdPozo"`
	Name string `json:"NombrePozo"`
}

// WellTag is one tag assignment of a well.
type WellTag struct {
	TagID   int    `json:"TagId"`
	TagName string `json:"TagName"`
}

// Store is the read-only access layer for one whitelisted data source.
type Store struct {
	name string
	db   *sql.DB
	tags TagMap
}

// NewStore opens a store for the given connection block. The underlying
// pool connects lazily; startup does not require the site to be reachable.
func NewStore(cfg config.Connection) (*Store, error) {
	pool, err := sql.Open("sqlserver", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Name, err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(2)
	pool.SetConnMaxLifetime(5 * time.Minute)

	return &Store{name: cfg.Name, db: pool, tags: tagMapFromConfig(cfg)}, nil
}

// Name returns the public connection name of this store.
func (s *Store) Name() string {
	return s.name
}

// Tags returns the site's sensor tag mapping.
func (s *Store) Tags() TagMap {
	return s.tags
}

// Close releases the pool resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies connectivity to the data source.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FetchDailyAverages returns the per-hour tag averages for one well on one
// calendar date. Hours without samples are absent from the result.
func (s *Store) FetchDailyAverages(ctx context.Context, wellID int, date time.Time) ([]HourAverages, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	args := append([]any{wellID, day}, s.tags.args()...)

	rows, err := s.db.QueryContext(ctx, queryDailyAverages, args...)
	if err != nil {
		return nil, fmt.Errorf("daily averages well %d: %w", wellID, err)
	}
	defer rows.Close()

	buckets := make([]HourAverages, 0, 24)
	for rows.Next() {
		var b HourAverages
		if err := rows.Scan(
			&b.WellName,
			&b.Hour,
			&b.PresionTP,
			&b.PresionTR,
			&b.LDD,
			&b.TemperaturaPozo,
			&b.PresionSuccion,
			&b.PresionDescarga,
			&b.Velocidad,
			&b.TempDescarga,
			&b.TempSuccion,
			&b.Qiny,
		); err != nil {
			return nil, fmt.Errorf("daily averages well %d: %w", wellID, err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// FetchMonthlyAverages returns the per-day tag averages for one well over
// the month containing the given date. Days without samples are absent.
func (s *Store) FetchMonthlyAverages(ctx context.Context, wellID int, month time.Time) ([]DayAverages, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	args := append([]any{wellID, first, next}, s.tags.args()...)

	rows, err := s.db.QueryContext(ctx, queryMonthlyAverages, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly averages well %d: %w", wellID, err)
	}
	defer rows.Close()

	buckets := make([]DayAverages, 0, 31)
	for rows.Next() {
		var b DayAverages
		if err := rows.Scan(
			&b.WellName,
			&b.Day,
			&b.PresionTP,
			&b.PresionTR,
			&b.LDD,
			&b.TemperaturaPozo,
			&b.PresionSuccion,
			&b.PresionDescarga,
			&b.Velocidad,
			&b.TempDescarga,
			&b.TempSuccion,
			&b.Qiny,
		); err != nil {
			return nil, fmt.Errorf("monthly averages well %d: %w", wellID, err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// ListWellsWithHistory returns the wells that have at least one historical
// record: first the distinct well IDs from the values table, then the
// id/name pairs for that set. An empty ID set yields an empty result.
func (s *Store) ListWellsWithHistory(ctx context.Context) ([]WellSummary, error) {
	rows, err := s.db.QueryContext(ctx, queryWellIDsWithHistory)
	if err != nil {
		return nil, fmt.Errorf("well ids with history: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("well ids with history: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []WellSummary{}, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return s.queryWells(ctx, buildWellsByIDQuery(len(ids)), args...)
}

// ListAllWells returns every well ordered by name descending. With filtered
// set, placeholder rows (OCUPADO, disponible, single-letter junk) are
// dropped — the legacy data-hygiene mode.
func (s *Store) ListAllWells(ctx context.Context, filtered bool) ([]WellSummary, error) {
	wells, err := s.queryWells(ctx, queryAllWells)
	if err != nil {
		return nil, err
	}
	if !filtered {
		return wells, nil
	}

	kept := make([]WellSummary, 0, len(wells))
	for _, w := range wells {
		if !isPlaceholderWellName(w.Name) {
			kept = append(kept, w)
		}
	}
	return kept, nil
}

func (s *Store) queryWells(ctx context.Context, query string, args ...any) ([]WellSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("wells: %w", err)
	}
	defer rows.Close()

	wells := make([]WellSummary, 0)
	for rows.Next() {
		var w WellSummary
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, fmt.Errorf("wells: %w", err)
		}
		wells = append(wells, w)
	}
	return wells, rows.Err()
}

// ListWellTags returns the tag assignments for one well.
func (s *Store) ListWellTags(ctx context.Context, wellID int) ([]WellTag, error) {
	rows, err := s.db.QueryContext(ctx, queryWellTags, wellID)
	if err != nil {
		return nil, fmt.Errorf("tags well %d: %w", wellID, err)
	}
	defer rows.Close()

	tags := make([]WellTag, 0)
	for rows.Next() {
		var t WellTag
		if err := rows.Scan(&t.TagID, &t.TagName); err != nil {
			return nil, fmt.Errorf("tags well %d: %w", wellID, err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// isPlaceholderWellName reports whether a wells-table row is one of the
// reserved placeholder entries some sites keep instead of real wells.
func isPlaceholderWellName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) <= 1 {
		return true
	}
	switch strings.ToUpper(trimmed) {
	case "OCUPADO", "DISPONIBLE":
		return true
	}
	return false
}
