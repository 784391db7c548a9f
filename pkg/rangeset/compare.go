package rangeset

import "github.com/texere-rope/corestate/pkg/change"

// RangeComparator receives the notifications Compare drives while
// diffing an old and a new range-set snapshot across the edit that
// separates them.
type RangeComparator[V RangeValue] interface {
	// ComparePoint is called over a stretch where either side has a
	// point and the two sides' points are not the same value at the
	// same position.
	ComparePoint(pos, end int, oldPoint, newPoint *Range[V])
	// CompareRange is called over a stretch where neither side has a
	// point but the active (non-point) values covering it differ.
	CompareRange(pos, end int, oldActive, newActive []Range[V])
	// BoundChange marks a position where the old and new document
	// diverge (content was inserted, deleted, or replaced) even when no
	// Compare/ComparePoint call was needed either side of it.
	BoundChange(pos int)
}

// Compare walks oldSets (as they stood before textDiff) and newSets (as
// they stand after it) together and reports, through comparator, every
// stretch where the active ranges covering the same logical content
// differ.
//
// This flattens oldSets/newSets into one combined set per side via Join
// before sweeping, rather than keeping each input layer separate behind
// a ranked multi-way cursor: once joined there is only one layer's worth
// of active state per side, so the point-shadowing tie-break the
// original algorithm needs "rank" for does not apply here. It also skips
// find_shared_chunks's pointer-identity bypass — every call walks both
// sides' spans across the whole unchanged-gap structure rather than
// recognizing and skipping chunks untouched by the edit. Both are
// deliberate, documented simplifications; see DESIGN.md.
func Compare[V RangeValue](oldSets, newSets []*RangeSet[V], textDiff change.ChangeDesc, comparator RangeComparator[V]) error {
	oldSet, err := Join(oldSets...)
	if err != nil {
		return err
	}
	newSet, err := Join(newSets...)
	if err != nil {
		return err
	}

	oldCur := NewSpanCursor(oldSet, 0)
	newCur := NewSpanCursor(newSet, 0)

	sweep := func(aFrom, aTo, bFrom int) {
		oldCur.Advance(aFrom)
		newCur.Advance(bFrom)
		pos, end := aFrom, aTo
		dPos := bFrom - aFrom
		for pos < end {
			oldPoint, newPoint := oldCur.Point(), newCur.Point()
			var step int
			switch {
			case oldPoint != nil || newPoint != nil:
				clipEnd := end
				if oldPoint != nil && oldPoint.To < clipEnd {
					clipEnd = oldPoint.To
				}
				if newPoint != nil && newPoint.To < clipEnd {
					clipEnd = newPoint.To
				}
				if !pointsEqual(oldPoint, newPoint) {
					comparator.ComparePoint(pos, clipEnd, oldPoint, newPoint)
				}
				step = clipEnd - pos
			default:
				oldActive, newActive := oldCur.Active(), newCur.Active()
				clipEnd := end
				for _, r := range oldActive {
					if r.To < clipEnd {
						clipEnd = r.To
					}
				}
				for _, r := range newActive {
					if r.To < clipEnd {
						clipEnd = r.To
					}
				}
				if !activesEqual(oldActive, newActive) {
					comparator.CompareRange(pos, clipEnd, oldActive, newActive)
				}
				step = clipEnd - pos
			}
			if step <= 0 {
				step = 1
			}
			pos += step
			if pos < end {
				oldCur.Advance(pos)
				newCur.Advance(pos + dPos)
			}
		}
	}

	lastOldEnd, lastNewEnd := 0, 0
	textDiff.IterGaps(func(posA, posB, length int) {
		if posA > lastOldEnd || posB > lastNewEnd {
			comparator.BoundChange(lastNewEnd)
		}
		sweep(posA, posA+length, posB)
		lastOldEnd, lastNewEnd = posA+length, posB+length
	})
	if lastOldEnd < textDiff.Length() || lastNewEnd < textDiff.NewLength() {
		comparator.BoundChange(lastNewEnd)
	}
	return nil
}

func pointsEqual[V RangeValue](a, b *Range[V]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.From == b.From && a.To == b.To && a.Value.Eq(b.Value)
}

func activesEqual[V RangeValue](a, b []Range[V]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].From != b[i].From || a[i].To != b[i].To || !a[i].Value.Eq(b[i].Value) {
			return false
		}
	}
	return true
}

// Eq reports whether two RangeSets contain the same ranges with equal
// values, in the same order. Unlike a production implementation that
// could short-circuit on chunk pointer identity after an incremental Map
// shares untouched chunks between old and new sets, this always walks
// both sets value by value: RangeSetBuilder rebuilds every chunk from
// scratch on every call, so no chunk is ever actually shared between two
// RangeSets here, and pointer comparison would never hit.
func (rs *RangeSet[V]) Eq(other *RangeSet[V]) bool {
	a := rs.All()
	b := other.All()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].From != b[i].From || a[i].To != b[i].To || !a[i].Value.Eq(b[i].Value) {
			return false
		}
	}
	return true
}
