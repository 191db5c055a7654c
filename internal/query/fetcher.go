package query

import (
	"context"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/observability"
	"github.com/spec-kit/sla-engine/internal/store"
)

const (
	overFetchFactor = 3
	overFetchCap    = 100
)

// Fetcher issues exactly one store request per search: an indexed query
// when an index was selected, a scan otherwise. It requests more rows than
// the caller's page size to absorb the attrition caused by post-filtering
// and ranking; the hard cap bounds worst-case latency.
type Fetcher struct {
	store   store.Client
	metrics *observability.Metrics
}

// NewFetcher builds a fetcher over the given store client.
func NewFetcher(client store.Client, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{store: client, metrics: metrics}
}

// FetchLimit computes the over-fetched row limit for a requested page size.
func FetchLimit(requested int) int {
	limit := requested * overFetchFactor
	if limit > overFetchCap {
		limit = overFetchCap
	}
	return limit
}

// Fetch runs the single store call and decodes the resulting records. Store
// failures are returned unchanged; the continuation cursor is forwarded for
// the final result without being interpreted.
func (f *Fetcher) Fetch(ctx context.Context, sel *Selection, filter store.Expression, requested int, ascending bool) ([]domain.Ticket, string, error) {
	limit := FetchLimit(requested)

	var (
		page store.Page
		err  error
	)
	if sel != nil {
		in := store.QueryInput{
			Index:     sel.Index,
			Filter:    filter,
			Limit:     limit,
			Ascending: ascending,
		}
		if sel.Key.Attribute != "" {
			key := sel.Key
			in.Key = &key
		}
		page, err = f.store.Query(ctx, in)
		f.metrics.RecordStoreQuery(sel.Index, len(page.Items))
	} else {
		page, err = f.store.Scan(ctx, store.ScanInput{Filter: filter, Limit: limit})
		f.metrics.RecordStoreScan(len(page.Items))
	}
	if err != nil {
		return nil, "", err
	}

	tickets := make([]domain.Ticket, 0, len(page.Items))
	for _, rec := range page.Items {
		tickets = append(tickets, store.TicketFromRecord(rec))
	}
	return tickets, page.Cursor, nil
}
