/*
Package sqlite provides the SQLite-backed store for district reference
data and monthly performance rows.

PURPOSE:
  Persists what the sync worker fetches and serves what the API reads:
  districts keyed by district_code and one performance row per
  (district_code, month). In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  districts:    Reference data, unique on district_code
  performance:  One row per district-month, unique on (district_code, month),
                fetched_at drives the staleness window for re-syncing

INDEXES:
  idx_performance_district_month:  The hot path - newest-first history
                                   reads and latest-row lookups
  idx_performance_month:           Latest-month scan for the summary

ORDERING:
  Month keys are "YYYY-MM" strings, so ORDER BY month DESC is
  chronological newest-first without date parsing.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so summary reads do
  not block sync writes.

USAGE:
  store, err := sqlite.New("./data/pulse.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - fetcher: Writes performance rows through this store
  - api:     Reads districts, history, and summaries through it
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gramseva/district-pulse/district"
)

// Store implements persistence for districts and performance rows.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- District reference data
	CREATE TABLE IF NOT EXISTS districts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		state_code TEXT NOT NULL,
		state_name TEXT NOT NULL,
		district_code TEXT NOT NULL UNIQUE,
		district_name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_districts_state ON districts(state_code);

	-- One performance row per district-month
	CREATE TABLE IF NOT EXISTS performance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		district_code TEXT NOT NULL,
		district_name TEXT NOT NULL,
		month TEXT NOT NULL,
		year INTEGER NOT NULL,
		total_households_issued_jobcards REAL NOT NULL DEFAULT 0,
		households_completed_100days REAL NOT NULL DEFAULT 0,
		total_works_takenup REAL NOT NULL DEFAULT 0,
		total_works_completed REAL NOT NULL DEFAULT 0,
		total_expenditure REAL NOT NULL DEFAULT 0,
		person_days_generated REAL NOT NULL DEFAULT 0,
		avg_days_per_household REAL NOT NULL DEFAULT 0,
		work_completion_rate REAL NOT NULL DEFAULT 0,
		sc_persondays REAL NOT NULL DEFAULT 0,
		st_persondays REAL NOT NULL DEFAULT 0,
		women_persondays REAL NOT NULL DEFAULT 0,
		fetched_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(district_code, month)
	);
	CREATE INDEX IF NOT EXISTS idx_performance_district_month
		ON performance(district_code, month DESC);
	CREATE INDEX IF NOT EXISTS idx_performance_month ON performance(month);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DISTRICTS
// =============================================================================

// SeedDistricts inserts any districts not already present. Already
// seeded codes are left untouched, so seeding is idempotent.
func (s *Store) SeedDistricts(ctx context.Context, districts []district.District) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range districts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO districts (state_code, state_name, district_code, district_name, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(district_code) DO NOTHING`,
			d.StateCode, d.StateName, d.DistrictCode, d.DistrictName, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed district %s: %w", d.DistrictCode, err)
		}
	}

	return tx.Commit()
}

// ListDistricts returns all districts ordered by name.
func (s *Store) ListDistricts(ctx context.Context) ([]district.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, state_code, state_name, district_code, district_name
		FROM districts ORDER BY district_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer rows.Close()

	var out []district.District
	for rows.Next() {
		var d district.District
		if err := rows.Scan(&d.ID, &d.StateCode, &d.StateName, &d.DistrictCode, &d.DistrictName); err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDistrict returns one district by code, or nil when unknown.
func (s *Store) GetDistrict(ctx context.Context, code string) (*district.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var d district.District
	err := s.db.QueryRowContext(ctx, `
		SELECT id, state_code, state_name, district_code, district_name
		FROM districts WHERE district_code = ?`, code).
		Scan(&d.ID, &d.StateCode, &d.StateName, &d.DistrictCode, &d.DistrictName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get district %s: %w", code, err)
	}
	return &d, nil
}

// =============================================================================
// PERFORMANCE ROWS
// =============================================================================

// UpsertPerformance writes one district-month row, replacing the
// metrics and fetched_at when the row already exists.
func (s *Store) UpsertPerformance(ctx context.Context, rec district.PerformanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	fetched := rec.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO performance (
			district_code, district_name, month, year,
			total_households_issued_jobcards, households_completed_100days,
			total_works_takenup, total_works_completed, total_expenditure,
			person_days_generated, avg_days_per_household, work_completion_rate,
			sc_persondays, st_persondays, women_persondays,
			fetched_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(district_code, month) DO UPDATE SET
			district_name = excluded.district_name,
			year = excluded.year,
			total_households_issued_jobcards = excluded.total_households_issued_jobcards,
			households_completed_100days = excluded.households_completed_100days,
			total_works_takenup = excluded.total_works_takenup,
			total_works_completed = excluded.total_works_completed,
			total_expenditure = excluded.total_expenditure,
			person_days_generated = excluded.person_days_generated,
			avg_days_per_household = excluded.avg_days_per_household,
			work_completion_rate = excluded.work_completion_rate,
			sc_persondays = excluded.sc_persondays,
			st_persondays = excluded.st_persondays,
			women_persondays = excluded.women_persondays,
			fetched_at = excluded.fetched_at,
			updated_at = excluded.updated_at`,
		rec.DistrictCode, rec.DistrictName, rec.Month, rec.Year,
		rec.TotalHouseholdsIssuedJobcards, rec.HouseholdsCompleted100Days,
		rec.TotalWorksTakenup, rec.TotalWorksCompleted, rec.TotalExpenditure,
		rec.PersonDaysGenerated, rec.AvgDaysPerHousehold, rec.WorkCompletionRate,
		rec.SCPersonDays, rec.STPersonDays, rec.WomenPersonDays,
		fetched.Format(time.RFC3339), now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert performance %s/%s: %w", rec.DistrictCode, rec.Month, err)
	}
	return nil
}

// LoadPerformance returns up to `months` rows for a district, newest
// first.
func (s *Store) LoadPerformance(ctx context.Context, code string, months int) ([]district.PerformanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPerformance(ctx, `
		SELECT `+performanceColumns+`
		FROM performance
		WHERE district_code = ?
		ORDER BY month DESC
		LIMIT ?`, code, months)
}

// LatestPerformance returns the newest row for a district, or nil when
// nothing has been synced yet.
func (s *Store) LatestPerformance(ctx context.Context, code string) (*district.PerformanceRecord, error) {
	records, err := s.LoadPerformance(ctx, code, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// CountPerformance reports how many months of data exist for a district.
func (s *Store) CountPerformance(ctx context.Context, code string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM performance WHERE district_code = ?`, code).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count performance rows: %w", err)
	}
	return n, nil
}

// FetchedAt returns when a district-month row was last synced. ok is
// false when the row does not exist.
func (s *Store) FetchedAt(ctx context.Context, code, month string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM performance WHERE district_code = ? AND month = ?`,
		code, month).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read fetched_at: %w", err)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse fetched_at %q: %w", raw, err)
	}
	return t, true, nil
}

// SummaryRows builds the per-district summary from each district's
// latest month, ordered by district name.
func (s *Store) SummaryRows(ctx context.Context) ([]district.SummaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.district_code, p.district_name, p.month,
		       p.person_days_generated, p.total_expenditure,
		       p.work_completion_rate, p.total_households_issued_jobcards
		FROM performance p
		JOIN (
			SELECT district_code, MAX(month) AS latest_month
			FROM performance
			GROUP BY district_code
		) latest ON p.district_code = latest.district_code
		       AND p.month = latest.latest_month
		ORDER BY p.district_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}
	defer rows.Close()

	var out []district.SummaryRow
	for rows.Next() {
		var r district.SummaryRow
		if err := rows.Scan(&r.DistrictCode, &r.DistrictName, &r.LatestMonth,
			&r.TotalPersonDays, &r.TotalExpenditure,
			&r.AvgWorkCompletionRate, &r.TotalHouseholds); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Reset clears all data. Used by tests and the dev reset endpoint.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM performance; DELETE FROM districts;`)
	return err
}

// =============================================================================
// SCANNING HELPERS
// =============================================================================

const performanceColumns = `
	id, district_code, district_name, month, year,
	total_households_issued_jobcards, households_completed_100days,
	total_works_takenup, total_works_completed, total_expenditure,
	person_days_generated, avg_days_per_household, work_completion_rate,
	sc_persondays, st_persondays, women_persondays, fetched_at`

func (s *Store) queryPerformance(ctx context.Context, query string, args ...any) ([]district.PerformanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance: %w", err)
	}
	defer rows.Close()

	var out []district.PerformanceRecord
	for rows.Next() {
		rec, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanPerformance(rows *sql.Rows) (district.PerformanceRecord, error) {
	var rec district.PerformanceRecord
	var fetched string

	err := rows.Scan(
		&rec.ID, &rec.DistrictCode, &rec.DistrictName, &rec.Month, &rec.Year,
		&rec.TotalHouseholdsIssuedJobcards, &rec.HouseholdsCompleted100Days,
		&rec.TotalWorksTakenup, &rec.TotalWorksCompleted, &rec.TotalExpenditure,
		&rec.PersonDaysGenerated, &rec.AvgDaysPerHousehold, &rec.WorkCompletionRate,
		&rec.SCPersonDays, &rec.STPersonDays, &rec.WomenPersonDays, &fetched)
	if err != nil {
		return rec, fmt.Errorf("failed to scan performance row: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, fetched); err == nil {
		rec.FetchedAt = t
	}
	return rec, nil
}
