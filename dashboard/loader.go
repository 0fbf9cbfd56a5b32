/*
Package dashboard turns API data into view state: the district detail
page (info + history + trends), the home summary, and comparison
refreshes.

PURPOSE:
  View loads are asynchronous and can overlap - a user navigating to a
  second district before the first finished loading used to leave two
  responses racing for the same view state, last write wins. Every load
  here carries a monotonic generation token; a load that is no longer
  the newest when it completes returns ErrStale and its result is
  discarded instead of clobbering fresher state.

JOIN SEMANTICS:
  The detail page needs district info and performance history. Both are
  fetched concurrently and joined; if either fails the whole load fails
  with a single error. There is no partial-success rendering.

SYNC-THEN-RELOAD:
  RefreshAfterSync triggers a server-side refresh, waits a fixed delay,
  and reloads. The delay is a heuristic, not a completion signal; the
  reload simply picks up whatever has landed by then.

SEE ALSO:
  - client:   The underlying API calls
  - detail.go: Trend derivation over the loaded history
*/
package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gramseva/district-pulse/client"
	"github.com/gramseva/district-pulse/district"
)

// ErrStale marks a load superseded by a newer one; its result must be
// discarded, not rendered.
var ErrStale = errors.New("load superseded by a newer request")

// DefaultSyncDelay is the pause between triggering a sync and
// re-fetching. Observed to be enough for a few months of data; callers
// needing certainty poll again.
const DefaultSyncDelay = 2 * time.Second

// API is the slice of the data client the loader needs.
type API interface {
	GetDistrict(ctx context.Context, code string) (*district.District, error)
	GetDistrictPerformance(ctx context.Context, code string, months int) ([]district.PerformanceRecord, error)
	GetPerformanceSummary(ctx context.Context) ([]district.SummaryRow, error)
	TriggerSync(ctx context.Context, code string, months int) error
}

var _ API = (*client.Client)(nil)

// Loader issues view loads with stale-response protection.
type Loader struct {
	api       API
	gen       atomic.Uint64
	syncDelay time.Duration
}

// NewLoader creates a loader over the given API client.
func NewLoader(api API) *Loader {
	return &Loader{api: api, syncDelay: DefaultSyncDelay}
}

// SetSyncDelay overrides the sync-then-reload pause. Tests set zero.
func (l *Loader) SetSyncDelay(d time.Duration) { l.syncDelay = d }

// LoadDetail fetches district info and history concurrently and joins
// them into a Detail. Partial failure aborts the load with one error;
// a load superseded mid-flight returns ErrStale.
func (l *Loader) LoadDetail(ctx context.Context, code string, months int) (*Detail, error) {
	token := l.gen.Add(1)

	var (
		info    *district.District
		history []district.PerformanceRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := l.api.GetDistrict(gctx, code)
		if err != nil {
			return err
		}
		info = d
		return nil
	})
	g.Go(func() error {
		records, err := l.api.GetDistrictPerformance(gctx, code, months)
		if err != nil {
			return err
		}
		history = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if l.gen.Load() != token {
		return nil, ErrStale
	}

	return NewDetail(*info, history), nil
}

// LoadSummary fetches every district's summary row and the state-wide
// aggregate derived from it, under the same generation guard.
func (l *Loader) LoadSummary(ctx context.Context) (*Summary, error) {
	token := l.gen.Add(1)

	rows, err := l.api.GetPerformanceSummary(ctx)
	if err != nil {
		return nil, err
	}

	if l.gen.Load() != token {
		return nil, ErrStale
	}

	return &Summary{Rows: rows, Totals: district.Aggregate(rows)}, nil
}

// RefreshAfterSync triggers a server-side sync for the district, waits
// the fixed delay, and reloads the detail view. The sync trigger
// failing is not fatal; the reload still runs and serves whatever the
// server has.
func (l *Loader) RefreshAfterSync(ctx context.Context, code string, months int) (*Detail, error) {
	// Best-effort: a failed trigger only means no fresher data.
	_ = l.api.TriggerSync(ctx, code, months)

	select {
	case <-time.After(l.syncDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return l.LoadDetail(ctx, code, months)
}

// Summary is the home view: per-district rows plus state totals.
type Summary struct {
	Rows   []district.SummaryRow
	Totals district.StateTotals
}
