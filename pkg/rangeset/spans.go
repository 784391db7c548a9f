package rangeset

// SpanIterator receives the span/point callbacks Spans drives while
// sweeping a set of RangeSets — the consumer shape a line-decoration or
// gutter renderer walks a document with.
type SpanIterator[V RangeValue] interface {
	// Span reports a stretch of the document covered by exactly active
	// (no point shadowing it). openStart counts how many of active were
	// already open when the walk began.
	Span(from, to int, active []Range[V], openStart int)
	// Point reports an atomic, single-value stretch that shadows
	// whatever spans overlap it. index increments once per point seen.
	Point(from, to int, value V, active []Range[V], openStart int, index int)
}

// Spans walks the merged view of sets across [from, to), alternating
// Span and Point callbacks on iterator in position order.
//
// minPointSize is accepted for interface parity with spec's "don't
// bother singling out points narrower than this" tuning knob, but has no
// effect here: every point, regardless of width, is reported through
// Point rather than folded back into the surrounding span. A caller that
// wants to suppress narrow points can do so inside its own SpanIterator.
func Spans[V RangeValue](sets []*RangeSet[V], from, to int, iterator SpanIterator[V], minPointSize int) error {
	joined, err := Join(sets...)
	if err != nil {
		return err
	}
	cur := NewSpanCursor(joined, from)
	cur.Advance(from)

	pos := from
	index := 0
	for pos < to {
		if point := cur.Point(); point != nil {
			end := point.To
			if end > to {
				end = to
			}
			iterator.Point(pos, end, point.Value, cur.Active(), cur.OpenStart(), index)
			index++
			pos = end
		} else {
			end := to
			for _, r := range cur.Active() {
				if r.To < end {
					end = r.To
				}
			}
			if next, ok := cur.peekNextFrom(); ok && next < end {
				end = next
			}
			if end <= pos {
				end = pos + 1
				if end > to {
					end = to
				}
			}
			iterator.Span(pos, end, cur.Active(), cur.OpenStart())
			pos = end
		}
		if pos < to {
			cur.Advance(pos)
		}
	}
	return nil
}
