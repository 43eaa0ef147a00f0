package model

import "math"

// Pagination is a 1-indexed page request.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps the request: pages start at 1, a missing limit becomes
// defaultLimit and anything above maxLimit is capped.
func (p Pagination) Normalize(defaultLimit, maxLimit int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	// Offsets travel as int32; pages past that range are all empty anyway.
	if last := math.MaxInt32/p.Limit + 1; p.Page > last {
		p.Page = last
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Window returns limit and offset in the width the paging queries take.
// Call it on a normalized Pagination.
func (p Pagination) Window() (limit, offset int32) {
	return int32(p.Limit), int32(p.Offset())
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func (p Page[T]) HasMore() bool {
	return int64(p.Page*p.Limit) < p.Total
}
