package rangeset

import (
	"errors"

	"github.com/texere-rope/corestate/pkg/change"
)

// Map returns the RangeSet that results from applying desc to the
// document rs was built against. A range maps to the span its endpoints
// land on after the edit; a Point-valued range that falls entirely inside
// a replacement is dropped rather than collapsed to zero width, matching
// the convention editors use for cursors vs. decorations.
func Map[V RangeValue](rs *RangeSet[V], desc change.ChangeDesc) (*RangeSet[V], error) {
	b := NewBuilder[V]()
	var outerErr error

	rs.Between(0, maxInt, func(r Range[V]) bool {
		newFrom, dropped, err := mapEndpoint(desc, r.From, r.Value.StartSide(), r.Value.Point())
		if err != nil {
			outerErr = err
			return false
		}
		if dropped {
			return true
		}
		newTo, dropped, err := mapEndpoint(desc, r.To, r.Value.EndSide(), r.Value.Point())
		if err != nil {
			outerErr = err
			return false
		}
		if dropped {
			return true
		}
		if newFrom > newTo {
			newFrom, newTo = newTo, newFrom
		}
		if err := b.Add(newFrom, newTo, r.Value); err != nil {
			outerErr = err
			return false
		}
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return b.Finish(), nil
}

// mapEndpoint maps one range endpoint, falling back from ModeTrackDel to
// ModeSimple when the position was replaced but the value isn't a point
// (in which case it should clamp to the replacement's edge, not vanish).
func mapEndpoint(desc change.ChangeDesc, pos, assoc int, isPoint bool) (mapped int, dropped bool, err error) {
	mapped, err = desc.MapPos(pos, assoc, change.ModeTrackDel)
	if err == nil {
		return mapped, false, nil
	}
	if !errors.Is(err, change.ErrPositionDeleted) {
		return 0, false, err
	}
	if isPoint {
		return 0, true, nil
	}
	mapped, err = desc.MapPos(pos, assoc, change.ModeSimple)
	if err != nil {
		return 0, false, err
	}
	return mapped, false, nil
}
