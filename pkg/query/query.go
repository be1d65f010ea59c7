// Package query holds in-memory helpers over materialized entity lists:
// case-insensitive search, sorting, pagination and grouping.
package query

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// DefaultPageSize is used when a page size is not positive
const DefaultPageSize = 10

// ContainsFold reports whether term occurs in s ignoring case
func ContainsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// Search keeps the items where any of fields(item) contains term ignoring
// case. A blank term keeps everything.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	if strings.TrimSpace(term) == "" {
		return slices.Clone(items)
	}
	term = strings.ToLower(term)
	out := make([]T, 0)
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Filter keeps the items matching pred
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a stably sorted copy ordered by key
func SortBy[T any, K cmp.Ordered](items []T, key func(T) K, dir types.SortDirection) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if dir == types.SortDesc {
			return -c
		}
		return c
	})
	return out
}

// Page is one slice of a paginated list
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// Paginate returns the 1-based page of items. Out of range pages clamp to
// the nearest valid page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := int(math.Ceil(float64(len(items)) / float64(size)))
	current := max(1, min(page, totalPages))
	start := (current - 1) * size
	end := min(start+size, len(items))
	if start > len(items) {
		start = len(items)
	}
	return Page[T]{
		Items:       slices.Clone(items[start:end]),
		Total:       len(items),
		TotalPages:  totalPages,
		CurrentPage: current,
	}
}

// GroupBy buckets items by key, preserving order inside each bucket
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// ROI returns the percentage return on cost, or 0 when cost is zero
func ROI(revenue, cost float64) float64 {
	if cost == 0 {
		return 0
	}
	return (revenue - cost) / cost * 100
}

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CaseNumber formats "CASE-<base36 ms><4 random base36>" in upper case.
// A nil r uses the global source.
func CaseNumber(now time.Time, r *rand.Rand) string {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	var b strings.Builder
	b.WriteString("CASE-")
	b.WriteString(strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)))
	for i := 0; i < 4; i++ {
		b.WriteByte(base36Upper[intN(len(base36Upper))])
	}
	return b.String()
}
