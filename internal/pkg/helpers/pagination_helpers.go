package helpers

import (
	"strconv"

	"github.com/yigit/unisession/internal/app/models/dto"
)

const (
	DefaultSkip         = 0
	DefaultLimit        = 100
	DefaultDetailsLimit = 10
	MaxLimit            = 1000
)

// NewPaginationQuery returns a PaginationQuery preset with defaults, ready to
// be passed to ShouldBindQuery. Keys absent from the query string keep these values.
func NewPaginationQuery(defaultLimit int) dto.PaginationQuery {
	return dto.PaginationQuery{Skip: DefaultSkip, Limit: defaultLimit}
}

// SkipLimit converts a bound PaginationQuery into the offset/limit pair used by
// repositories. Limits above MaxLimit are clamped.
func SkipLimit(q dto.PaginationQuery) (skip, limit uint64) {
	if q.Skip > 0 {
		skip = uint64(q.Skip)
	}
	switch {
	case q.Limit <= 0:
		limit = DefaultLimit
	case q.Limit > MaxLimit:
		limit = MaxLimit
	default:
		limit = uint64(q.Limit)
	}
	return skip, limit
}

// ParseID parses a positive int64 path parameter
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
