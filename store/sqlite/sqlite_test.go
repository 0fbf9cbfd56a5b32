package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramseva/district-pulse/district"
	"github.com/gramseva/district-pulse/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func upDistrict(code, name string) district.District {
	return district.District{
		StateCode:    "09",
		StateName:    "Uttar Pradesh",
		DistrictCode: code,
		DistrictName: name,
	}
}

func perfRow(code, name, month string, personDays float64) district.PerformanceRecord {
	return district.PerformanceRecord{
		DistrictCode:        code,
		DistrictName:        name,
		Month:               month,
		Year:                2025,
		PersonDaysGenerated: personDays,
		TotalExpenditure:    1000,
		WorkCompletionRate:  75,
		FetchedAt:           time.Now().UTC(),
	}
}

// =============================================================================
// DISTRICTS
// =============================================================================

func TestSeedDistricts_IdempotentAndNameOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []district.District{
		upDistrict("0975", "Varanasi"),
		upDistrict("0901", "Agra"),
	}
	require.NoError(t, store.SeedDistricts(ctx, seed))
	// Seeding again must not duplicate rows.
	require.NoError(t, store.SeedDistricts(ctx, seed))

	districts, err := store.ListDistricts(ctx)
	require.NoError(t, err)
	require.Len(t, districts, 2)
	assert.Equal(t, "Agra", districts[0].DistrictName)
	assert.Equal(t, "Varanasi", districts[1].DistrictName)
}

func TestGetDistrict_NilOnUnknownCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDistricts(ctx, []district.District{upDistrict("0949", "Lucknow")}))

	d, err := store.GetDistrict(ctx, "0949")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Lucknow", d.DistrictName)
	assert.Equal(t, "Uttar Pradesh", d.StateName)

	d, err = store.GetDistrict(ctx, "9999")
	require.NoError(t, err)
	assert.Nil(t, d)
}

// =============================================================================
// PERFORMANCE ROWS
// =============================================================================

func TestLoadPerformance_NewestFirstAndLimited(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, month := range []string{"2025-05", "2025-08", "2025-06", "2025-07"} {
		require.NoError(t, store.UpsertPerformance(ctx, perfRow("0949", "Lucknow", month, 100)))
	}

	records, err := store.LoadPerformance(ctx, "0949", 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-08", records[0].Month)
	assert.Equal(t, "2025-07", records[1].Month)
	assert.Equal(t, "2025-06", records[2].Month)
}

func TestUpsertPerformance_ReplacesDistrictMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPerformance(ctx, perfRow("0949", "Lucknow", "2025-08", 100)))
	require.NoError(t, store.UpsertPerformance(ctx, perfRow("0949", "Lucknow", "2025-08", 250)))

	n, err := store.CountPerformance(ctx, "0949")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "same district-month must stay a single row")

	latest, err := store.LatestPerformance(ctx, "0949")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 250.0, latest.PersonDaysGenerated)
}

func TestLatestPerformance_NilWhenUnsynced(t *testing.T) {
	store := newTestStore(t)

	latest, err := store.LatestPerformance(context.Background(), "0949")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestFetchedAt_DrivesStaleness(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := perfRow("0949", "Lucknow", "2025-08", 100)
	rec.FetchedAt = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertPerformance(ctx, rec))

	fetched, ok, err := store.FetchedAt(ctx, "0949", "2025-08")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.FetchedAt, fetched)

	_, ok, err = store.FetchedAt(ctx, "0949", "2025-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

// =============================================================================
// SUMMARY
// =============================================================================

func TestSummaryRows_LatestMonthPerDistrict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPerformance(ctx, perfRow("0975", "Varanasi", "2025-07", 300)))
	require.NoError(t, store.UpsertPerformance(ctx, perfRow("0975", "Varanasi", "2025-08", 400)))
	require.NoError(t, store.UpsertPerformance(ctx, perfRow("0901", "Agra", "2025-08", 500)))

	rows, err := store.SummaryRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Name-ordered, each carrying only its latest month.
	assert.Equal(t, "Agra", rows[0].DistrictName)
	assert.Equal(t, 500.0, rows[0].TotalPersonDays)
	assert.Equal(t, "Varanasi", rows[1].DistrictName)
	assert.Equal(t, "2025-08", rows[1].LatestMonth)
	assert.Equal(t, 400.0, rows[1].TotalPersonDays)
}

func TestReset_ClearsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDistricts(ctx, []district.District{upDistrict("0949", "Lucknow")}))
	require.NoError(t, store.UpsertPerformance(ctx, perfRow("0949", "Lucknow", "2025-08", 100)))
	require.NoError(t, store.Reset(ctx))

	districts, err := store.ListDistricts(ctx)
	require.NoError(t, err)
	assert.Empty(t, districts)

	rows, err := store.SummaryRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
