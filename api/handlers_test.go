package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramseva/district-pulse/api"
	"github.com/gramseva/district-pulse/district"
	"github.com/gramseva/district-pulse/fetcher"
	"github.com/gramseva/district-pulse/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := fetcher.New(store, zerolog.Nop(), fetcher.WithFetchDelay(0))
	h := api.NewHandler(store, f, zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)

	return srv, store
}

func seedLucknowAndAgra(t *testing.T, store *sqlite.Store) {
	ctx := context.Background()
	require.NoError(t, store.SeedDistricts(ctx, []district.District{
		{StateCode: "09", StateName: "Uttar Pradesh", DistrictCode: "0949", DistrictName: "Lucknow"},
		{StateCode: "09", StateName: "Uttar Pradesh", DistrictCode: "0901", DistrictName: "Agra"},
	}))
	for i, month := range []string{"2025-06", "2025-07", "2025-08"} {
		require.NoError(t, store.UpsertPerformance(ctx, district.PerformanceRecord{
			DistrictCode:        "0949",
			DistrictName:        "Lucknow",
			Month:               month,
			Year:                2025,
			PersonDaysGenerated: float64(100 * (i + 1)),
			TotalExpenditure:    1000,
			WorkCompletionRate:  80,
			FetchedAt:           time.Now().UTC(),
		}))
	}
}

func getJSON(t *testing.T, url string, out any) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// =============================================================================
// DISTRICT ENDPOINTS
// =============================================================================

func TestListDistricts(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	var districts []district.District
	status := getJSON(t, srv.URL+"/api/districts", &districts)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, districts, 2)
	assert.Equal(t, "Agra", districts[0].DistrictName, "server orders by name")
}

func TestGetDistrict_NotFound(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	var d district.District
	status := getJSON(t, srv.URL+"/api/districts/0949", &d)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Lucknow", d.DistrictName)

	status = getJSON(t, srv.URL+"/api/districts/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetDistrictPerformance_NewestFirst(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	var records []district.PerformanceRecord
	status := getJSON(t, srv.URL+"/api/districts/0949/performance?months=2", &records)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-08", records[0].Month)
	assert.Equal(t, "2025-07", records[1].Month)
}

func TestGetDistrictPerformance_BadMonths(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/districts/0949/performance?months=abc", nil))
	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/districts/0949/performance?months=0", nil))
}

func TestGetLatestPerformance(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	var rec district.PerformanceRecord
	status := getJSON(t, srv.URL+"/api/districts/0949/latest", &rec)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2025-08", rec.Month)

	// Unsynced district: 404 now, background sync kicked off.
	status = getJSON(t, srv.URL+"/api/districts/0901/latest", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// =============================================================================
// SUMMARY AND COMPARISON
// =============================================================================

func TestGetPerformanceSummary(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	var rows []district.SummaryRow
	status := getJSON(t, srv.URL+"/api/performance/summary", &rows)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, rows, 1, "only synced districts appear")
	assert.Equal(t, "0949", rows[0].DistrictCode)
	assert.Equal(t, "2025-08", rows[0].LatestMonth)
	assert.Equal(t, 300.0, rows[0].TotalPersonDays)
}

func TestCompareDistricts_BundleRestrictedToCodes(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	var bundle district.ComparisonBundle
	status := getJSON(t, srv.URL+"/api/compare?district_codes=0949,0901&months=2", &bundle)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, bundle, 2)
	assert.Len(t, bundle["0949"], 2)
	assert.Empty(t, bundle["0901"], "unsynced district yields an empty series, not an error")
}

func TestCompareDistricts_CapsAtFourAndDeduplicates(t *testing.T) {
	srv, store := newTestServer(t)
	seedLucknowAndAgra(t, store)

	var bundle district.ComparisonBundle
	status := getJSON(t,
		srv.URL+"/api/compare?district_codes=0901,0901,0902,0903,0904,0905", &bundle)

	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, bundle, 4, "duplicates dropped, fifth distinct code ignored")
	_, ok := bundle["0905"]
	assert.False(t, ok)
}

func TestCompareDistricts_EmptyCodes(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/compare", nil))
}

// =============================================================================
// SYNC TRIGGER
// =============================================================================

func TestTriggerSync_AcknowledgesImmediately(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/sync/0949?months=2", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var ack api.SyncAckDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Contains(t, ack.Message, "0949")
}
