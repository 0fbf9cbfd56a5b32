/*
handlers.go - HTTP API handlers for district performance data

PURPOSE:
  Exposes locally synced MGNREGA district data via REST. Handles HTTP
  request/response, JSON serialization, and delegates to the store and
  sync worker.

ENDPOINTS:
  GET  /api/districts                     List all districts
  GET  /api/districts/{code}              Get one district
  GET  /api/districts/{code}/performance  Monthly history, newest first
  GET  /api/districts/{code}/latest       Latest month only
  GET  /api/performance/summary           Per-district latest-month summary
  GET  /api/compare                       Bundle for up to 4 districts
  POST /api/sync/{code}                   Fire-and-forget sync trigger

BACKGROUND SYNC:
  When a history read returns fewer months than requested, a background
  sync for the gap is kicked off and the short result is returned as-is.
  The caller re-fetches later; the trigger is best-effort, never a
  completion guarantee.

CACHING:
  The summary joins every district's latest month, so responses are
  cached for a short TTL and recomputed lazily after sync writes.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad months value, empty code list)
  - 404: Unknown district / no data yet
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/gramseva/district-pulse/district"
	"github.com/gramseva/district-pulse/fetcher"
	"github.com/gramseva/district-pulse/store/sqlite"
)

const (
	defaultHistoryMonths = 12
	defaultCompareMonths = 6

	summaryCacheKey = "performance_summary"
	summaryCacheTTL = 5 * time.Minute
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Fetcher *fetcher.Fetcher

	cache *gocache.Cache
	log   zerolog.Logger
}

// NewHandler creates a new handler with the given store and sync worker.
func NewHandler(store *sqlite.Store, f *fetcher.Fetcher, log zerolog.Logger) *Handler {
	return &Handler{
		Store:   store,
		Fetcher: f,
		cache:   gocache.New(summaryCacheTTL, 2*summaryCacheTTL),
		log:     log.With().Str("component", "api").Logger(),
	}
}

// Root returns service metadata.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ServiceInfoDTO{
		Message: "MGNREGA District Performance API",
		Version: "1.0.0",
	})
}

// =============================================================================
// DISTRICT HANDLERS
// =============================================================================

// ListDistricts returns all districts, name-ordered.
func (h *Handler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := h.Store.ListDistricts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list districts", err)
		return
	}
	if districts == nil {
		districts = []district.District{}
	}
	writeJSON(w, http.StatusOK, districts)
}

// GetDistrict returns a single district.
func (h *Handler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	d, err := h.Store.GetDistrict(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get district", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "District not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// GetDistrictPerformance returns up to ?months= rows, newest first.
// A short result triggers a background sync for the missing months.
func (h *Handler) GetDistrictPerformance(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	months, err := monthsParam(r, defaultHistoryMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months parameter", err)
		return
	}

	records, err := h.Store.LoadPerformance(r.Context(), code, months)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load performance data", err)
		return
	}

	if len(records) < months {
		h.syncInBackground(code, months)
	}

	if records == nil {
		records = []district.PerformanceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GetLatestPerformance returns the newest row for a district.
func (h *Handler) GetLatestPerformance(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	latest, err := h.Store.LatestPerformance(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load latest performance", err)
		return
	}
	if latest == nil {
		h.syncInBackground(code, 3)
		writeError(w, http.StatusNotFound, "No data available yet. Please try again in a moment.", nil)
		return
	}

	writeJSON(w, http.StatusOK, latest)
}

// =============================================================================
// SUMMARY AND COMPARISON
// =============================================================================

// GetPerformanceSummary returns one latest-month row per district.
func (h *Handler) GetPerformanceSummary(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(summaryCacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	rows, err := h.Store.SummaryRows(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build summary", err)
		return
	}
	if rows == nil {
		rows = []district.SummaryRow{}
	}

	h.cache.Set(summaryCacheKey, rows, gocache.DefaultExpiration)
	writeJSON(w, http.StatusOK, rows)
}

// CompareDistricts returns a code->series bundle for up to four
// districts. Duplicate codes are dropped; codes beyond the bound are
// silently ignored, matching the selection semantics on the client.
func (h *Handler) CompareDistricts(w http.ResponseWriter, r *http.Request) {
	rawCodes := r.URL.Query().Get("district_codes")
	codes := splitCodes(rawCodes)
	if len(codes) == 0 {
		writeError(w, http.StatusBadRequest, "district_codes is required", nil)
		return
	}

	months, err := monthsParam(r, defaultCompareMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months parameter", err)
		return
	}

	bundle := district.ComparisonBundle{}
	for _, code := range codes {
		records, err := h.Store.LoadPerformance(r.Context(), code, months)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load comparison data", err)
			return
		}
		if records == nil {
			records = []district.PerformanceRecord{}
		}
		bundle[code] = records
	}

	writeJSON(w, http.StatusOK, bundle)
}

// =============================================================================
// SYNC TRIGGER
// =============================================================================

// TriggerSync kicks off a background sync and acknowledges immediately.
// Fire-and-forget: the caller polls by re-fetching, there is no
// completion signal.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	months, err := monthsParam(r, defaultHistoryMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months parameter", err)
		return
	}

	h.syncInBackground(code, months)

	writeJSON(w, http.StatusAccepted, SyncAckDTO{
		Message: fmt.Sprintf("Sync triggered for district %s", code),
	})
}

// syncInBackground starts a detached sync and invalidates the summary
// cache when it lands. Failures are logged, never surfaced.
func (h *Handler) syncInBackground(code string, months int) {
	if h.Fetcher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := h.Fetcher.Sync(ctx, code, district.LastNMonths(months)); err != nil {
			h.log.Error().Err(err).Str("district_code", code).Msg("background sync failed")
			return
		}
		h.cache.Delete(summaryCacheKey)
	}()
}

// =============================================================================
// HELPERS
// =============================================================================

func monthsParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return fallback, nil
	}
	months, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if months < 1 {
		return 0, fmt.Errorf("months must be positive, got %d", months)
	}
	return months, nil
}

// splitCodes parses the comma-joined code list, trimming, dropping
// duplicates, and capping at the comparison bound.
func splitCodes(raw string) []string {
	var codes []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		code := strings.TrimSpace(part)
		if code == "" || seen[code] {
			continue
		}
		if len(codes) >= district.MaxCompareDistricts {
			break
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
