package mcpserver

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
	defaultStatus    = "all"
)

func clampPagination(limit, offset, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func normalizeStatus(v string) string {
	if v == "" {
		return defaultStatus
	}
	return v
}

func isAllowedStatus(v string) bool {
	return v == "all" || v == "active" || v == "completed"
}
