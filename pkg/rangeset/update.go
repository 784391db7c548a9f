package rangeset

import "sort"

// UpdateSpec describes a batch change to an existing RangeSet: which
// ranges survive (Filter), and what new ranges join them (Add).
type UpdateSpec[V RangeValue] struct {
	// Add lists new ranges to merge in. They need not be pre-sorted
	// unless Sort is false.
	Add []Range[V]
	// Sort requests that Add be sorted by (From, StartSide) before
	// merging; if the caller already knows Add is sorted, leave this
	// false to skip the pass.
	Sort bool
	// Filter decides whether an existing range survives. Ranges entirely
	// outside [FilterFrom, FilterTo] (a range touching either end counts
	// as inside) are kept without ever calling
	// Filter — the same "untouched territory doesn't need a filter
	// decision" shortcut spec.md's update() describes. A nil Filter
	// keeps every existing range inside the filter window too.
	Filter func(from, to int, value V) bool
	// FilterFrom, FilterTo bound the region Filter is consulted over.
	// The zero value (0, 0) means "the whole set" — FilterTo is treated
	// as unbounded when both are left at zero, since a caller asking to
	// filter only position 0 through 0 is a degenerate request nobody
	// issues in practice.
	FilterFrom int
	FilterTo   int
}

// Update returns a new RangeSet built from every existing range Filter
// accepts, merged with Add, in ascending From order.
//
// The teacher's own incremental edit path reuses whole chunks by
// reference when a chunk's region is entirely outside the filter window,
// appending them to the result without re-walking their ranges. This
// rework's RangeSetBuilder has no "append a prebuilt chunk" entry point —
// Add only ever takes one range at a time (see builder.go) — so Update
// always re-walks every surviving range into a fresh builder instead.
// Results are identical; only that chunk-sharing fast path is missing,
// the same tradeoff already made for Map and Eq.
func (rs *RangeSet[V]) Update(spec UpdateSpec[V]) (*RangeSet[V], error) {
	filterFrom, filterTo := spec.FilterFrom, spec.FilterTo
	if filterFrom == 0 && filterTo == 0 {
		filterTo = maxInt
	}

	var kept []Range[V]
	rs.Between(0, maxInt, func(r Range[V]) bool {
		if r.To < filterFrom || r.From > filterTo || spec.Filter == nil || spec.Filter(r.From, r.To, r.Value) {
			kept = append(kept, r)
		}
		return true
	})

	add := spec.Add
	if spec.Sort {
		sorted := append([]Range[V](nil), add...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].From != sorted[j].From {
				return sorted[i].From < sorted[j].From
			}
			return sorted[i].Value.StartSide() < sorted[j].Value.StartSide()
		})
		add = sorted
	}

	merged := make([]Range[V], 0, len(kept)+len(add))
	i, j := 0, 0
	for i < len(kept) && j < len(add) {
		if kept[i].From <= add[j].From {
			merged = append(merged, kept[i])
			i++
		} else {
			merged = append(merged, add[j])
			j++
		}
	}
	merged = append(merged, kept[i:]...)
	merged = append(merged, add[j:]...)

	return Of(merged)
}
