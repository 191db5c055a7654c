package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/observability"
	"github.com/spec-kit/sla-engine/internal/query"
	"github.com/spec-kit/sla-engine/internal/sla"
	"github.com/spec-kit/sla-engine/internal/store"
	"github.com/spec-kit/sla-engine/pkg/util"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// SearchService runs the full search pipeline: index selection, filter
// compilation, one over-fetched store call, post-filtering, optional
// relevance ranking, deterministic sorting and pagination.
type SearchService struct {
	fetcher    *query.Fetcher
	postFilter *query.PostFilter
	logger     *zap.Logger
	now        func() time.Time
}

// SearchDependencies bundles collaborators for the search service.
type SearchDependencies struct {
	Store   store.Client
	Risk    *sla.RiskModel
	Metrics *observability.Metrics
	Logger  *zap.Logger
	Now     func() time.Time
}

// NewSearchService constructs the service.
func NewSearchService(deps SearchDependencies) *SearchService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &SearchService{
		fetcher:    query.NewFetcher(deps.Store, deps.Metrics),
		postFilter: query.NewPostFilter(deps.Risk),
		logger:     deps.Logger,
		now:        now,
	}
}

// Search executes one search request. The engine issues at most one store
// call; store failures are propagated unchanged.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error) {
	normalizeQuery(&q)
	now := s.now()

	sel := query.SelectIndex(q.Filters, q.SortBy)
	expr := query.BuildExpression(q.Filters, sel)

	candidates, cursor, err := s.fetcher.Fetch(ctx, sel, expr, q.Limit, q.SortOrder == domain.SortAsc)
	if err != nil {
		return domain.SearchResult{}, err
	}

	candidates = s.postFilter.Apply(candidates, q, now)

	if q.Query != "" {
		scored := query.RankByRelevance(candidates, q.Query)
		candidates = candidates[:0]
		for _, item := range scored {
			candidates = append(candidates, item.Ticket)
		}
	}

	query.Sort(candidates, q.SortBy, q.SortOrder)

	items, totalCount, hasMore := query.Paginate(candidates, q.Page, q.Limit)

	if s.logger != nil {
		indexName := "scan"
		if sel != nil {
			indexName = sel.Index
		}
		s.logger.Debug("search executed",
			zap.String("index", indexName),
			zap.Int("candidates", totalCount),
			zap.Int("returned", len(items)))
	}

	return domain.SearchResult{
		Tickets:    items,
		TotalCount: totalCount,
		HasMore:    hasMore,
		Cursor:     cursor,
	}, nil
}

// GetTicket fetches one ticket by its composite identity via the customer
// index.
func (s *SearchService) GetTicket(ctx context.Context, customerID, ticketID string) (domain.Ticket, error) {
	sel := &query.Selection{
		Index: store.IndexCustomer,
		Key:   store.Condition{Attribute: store.AttrCustomerID, Op: store.OpEq, Value: customerID},
	}
	filter := store.Expression{All: []store.Condition{
		{Attribute: store.AttrTicketID, Op: store.OpEq, Value: ticketID},
	}}
	candidates, _, err := s.fetcher.Fetch(ctx, sel, filter, 1, true)
	if err != nil {
		return domain.Ticket{}, err
	}
	if len(candidates) == 0 {
		return domain.Ticket{}, util.NewNotFound("ticket", map[string]any{
			"customer_id": customerID,
			"ticket_id":   ticketID,
		})
	}
	return candidates[0], nil
}

func normalizeQuery(q *domain.SearchQuery) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.SortBy == "" {
		q.SortBy = domain.SortByCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = domain.SortDesc
	}
}
