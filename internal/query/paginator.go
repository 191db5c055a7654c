package query

import "github.com/spec-kit/sla-engine/internal/domain"

// Paginate slices the fully filtered and sorted candidate set. TotalCount
// is measured before slicing and therefore describes the in-memory
// candidate set, which is bounded by the fetcher's over-fetch cap; callers
// must treat it as an approximation, not a global count.
func Paginate(candidates []domain.Ticket, page, limit int) (items []domain.Ticket, totalCount int, hasMore bool) {
	if page < 1 {
		page = 1
	}
	totalCount = len(candidates)
	offset := (page - 1) * limit

	if offset >= totalCount {
		return []domain.Ticket{}, totalCount, false
	}
	end := offset + limit
	if end > totalCount {
		end = totalCount
	}
	return candidates[offset:end], totalCount, offset+limit < totalCount
}
