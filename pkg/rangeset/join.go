package rangeset

import "sort"

// Join flattens several RangeSets into one, sorted by From then
// StartSide — the non-cursor counterpart to Merge: where Merge gives a
// walkable interleaved view across sets without building anything new,
// Join actually produces the combined RangeSet, the way Update folds an
// Add batch into an existing set but for whole sets instead of loose
// ranges. Compare and Spans both use it to collapse their "sets" argument
// down to a single set before sweeping it.
func Join[V RangeValue](sets ...*RangeSet[V]) (*RangeSet[V], error) {
	if len(sets) == 1 {
		return sets[0], nil
	}
	var all []Range[V]
	for _, s := range sets {
		all = append(all, s.All()...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].From != all[j].From {
			return all[i].From < all[j].From
		}
		return all[i].Value.StartSide() < all[j].Value.StartSide()
	})
	return Of(all)
}
