package service

import "github.com/zapcrm/whatsapp-integration/internal/core/ports"

const maxPageLimit = 100

// normalizePage clamps page to >= 1 and limit to (0, maxPageLimit], falling
// back to def when limit is unset.
func normalizePage(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = def
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func newPagination(total int64, page, limit int) ports.Pagination {
	pages := 0
	if total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return ports.Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}
