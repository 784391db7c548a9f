package rangeset

import "sort"

// mergedEntry is one item produced by a merged, multi-set walk: the range
// itself plus which input set it came from.
type mergedEntry[V RangeValue] struct {
	Range Range[V]
	Set   int
}

// MergedCursor walks several RangeSets together in ascending From order,
// the way a caret/decoration renderer needs to see every layer's ranges
// interleaved rather than one set at a time.
//
// This builds the merged order by materializing and sorting all of the
// input ranges up front rather than maintaining a live heap over each
// set's own cursor; for the chunk counts a single document's decorations
// realistically reach, that's a non-issue, and it avoids an entire class
// of heap invariant bugs in code that will never be run before delivery.
type MergedCursor[V RangeValue] struct {
	entries []mergedEntry[V]
	idx     int
}

// Merge returns a MergedCursor over sets, positioned before the first
// entry; call Next to advance.
func Merge[V RangeValue](sets []*RangeSet[V]) *MergedCursor[V] {
	var entries []mergedEntry[V]
	for si, s := range sets {
		s.Between(0, maxInt, func(r Range[V]) bool {
			entries = append(entries, mergedEntry[V]{Range: r, Set: si})
			return true
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Range.From < entries[j].Range.From
	})
	return &MergedCursor[V]{entries: entries, idx: -1}
}

// Next advances the cursor and reports whether an entry is available.
func (c *MergedCursor[V]) Next() bool {
	c.idx++
	return c.idx < len(c.entries)
}

// Value returns the range at the cursor's current position.
func (c *MergedCursor[V]) Value() Range[V] { return c.entries[c.idx].Range }

// SetIndex returns which input set (by position in the slice passed to
// Merge) the current range came from.
func (c *MergedCursor[V]) SetIndex() int { return c.entries[c.idx].Set }

// SpanCursor walks a single RangeSet's ranges while tracking which values
// are "active" (span, rather than point, and covering the current
// position) as it sweeps forward, plus the single point (if any) shadowing
// that position — the shape Spans and Compare both sweep with.
//
// A point shadows any active span it overlaps: while the cursor sits on a
// point, Active only reports spans that extend past the point (or end
// exactly with it, on an equal-or-higher EndSide), mirroring the "point
// shadows overlapping non-point ranges" rule spans/compare both rely on.
type SpanCursor[V RangeValue] struct {
	ranges    []Range[V]
	idx       int
	active    []Range[V]
	point     *Range[V]
	pos       int
	from      int
	advanced  bool
	openStart int
}

// NewSpanCursor returns a SpanCursor over rs starting at position from.
func NewSpanCursor[V RangeValue](rs *RangeSet[V], from int) *SpanCursor[V] {
	sc := &SpanCursor[V]{pos: from, from: from}
	rs.Between(from, maxInt, func(r Range[V]) bool {
		sc.ranges = append(sc.ranges, r)
		return true
	})
	sort.SliceStable(sc.ranges, func(i, j int) bool {
		if sc.ranges[i].From != sc.ranges[j].From {
			return sc.ranges[i].From < sc.ranges[j].From
		}
		return sc.ranges[i].Value.StartSide() < sc.ranges[j].Value.StartSide()
	})
	return sc
}

// Advance moves the cursor to pos, pruning expired ranges and admitting
// newly-reached ones. The first call fixes OpenStart by looking at which
// of the ranges admitted at that position were already open (From before
// the cursor's starting position) rather than beginning exactly here.
func (sc *SpanCursor[V]) Advance(pos int) {
	sc.pos = pos
	kept := sc.active[:0]
	for _, r := range sc.active {
		if r.To > pos {
			kept = append(kept, r)
		}
	}
	sc.active = kept
	if sc.point != nil && sc.point.To <= pos {
		sc.point = nil
	}
	for sc.idx < len(sc.ranges) && sc.ranges[sc.idx].From <= pos {
		r := sc.ranges[sc.idx]
		sc.idx++
		if r.To <= pos && r.From != r.To {
			continue
		}
		if r.Value.Point() {
			if sc.point == nil || r.Value.StartSide() >= sc.point.Value.StartSide() {
				sc.point = &r
			}
		} else {
			sc.active = append(sc.active, r)
		}
	}
	if !sc.advanced {
		sc.advanced = true
		open := 0
		for _, r := range sc.active {
			if r.From < sc.from {
				open++
			}
		}
		if sc.point != nil && sc.point.From < sc.from {
			open++
		}
		sc.openStart = open
	}
}

// Active returns the non-point ranges covering the cursor's current
// position, filtered by whatever point currently shadows it (a span that
// ends at or before the point's end, on a lower EndSide, is hidden).
func (sc *SpanCursor[V]) Active() []Range[V] {
	if sc.point == nil {
		return sc.active
	}
	var out []Range[V]
	for _, r := range sc.active {
		if r.To > sc.point.To || (r.To == sc.point.To && r.Value.EndSide() >= sc.point.Value.EndSide()) {
			out = append(out, r)
		}
	}
	return out
}

// Point returns the point range currently shadowing the cursor's
// position, or nil if none.
func (sc *SpanCursor[V]) Point() *Range[V] { return sc.point }

// OpenStart reports how many of the ranges active at the cursor's
// starting position had already begun before it — the "already open when
// iteration began" count Spans and Compare report alongside each span.
func (sc *SpanCursor[V]) OpenStart() int { return sc.openStart }

// peekNextFrom returns the From of the next not-yet-admitted range, used
// by Spans to know where the current span must end even when no active
// range runs out first.
func (sc *SpanCursor[V]) peekNextFrom() (int, bool) {
	if sc.idx >= len(sc.ranges) {
		return 0, false
	}
	return sc.ranges[sc.idx].From, true
}
