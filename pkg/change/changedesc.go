// Package change implements the run-length edit algebra this module's
// documents are mutated through: ChangeDesc describes the shape of an edit
// (lengths only), ChangeSet pairs that shape with the text that was
// inserted. Both are immutable values built once and shared freely; every
// operation returns a new value rather than mutating its receiver, the
// same contract text.Text makes for documents.
package change

import (
	"fmt"
	"strings"

	"github.com/texere-rope/corestate/pkg/text"
)

// ChangeDesc is the shape of an edit against a document of a known length:
// a flat sequence of (length, ins) pairs. ins == -1 means "length units of
// the old document are unchanged"; ins == 0 means "length units are
// deleted with nothing replacing them"; ins > 0 means "length units are
// replaced by ins units of new content" (ChangeDesc doesn't know what that
// content is — see ChangeSet for that).
type ChangeDesc struct {
	sections []int
}

// MapMode controls how MapPos treats a position that falls inside deleted
// content.
type MapMode int

const (
	// ModeSimple never fails: a position inside replaced content maps to
	// the end of whatever replaced it (a position at its start maps to the
	// start).
	ModeSimple MapMode = iota
	// ModeTrackDel fails only when the position is strictly inside a
	// deletion, not at its edges.
	ModeTrackDel
	// ModeTrackBefore fails when the replacement containing the position
	// starts before it, so content before the position was replaced.
	ModeTrackBefore
	// ModeTrackAfter fails when the replacement containing the position
	// ends after it, so content after the position was replaced.
	ModeTrackAfter
)

// TouchResult is the three-valued answer TouchesRange gives.
type TouchResult int

const (
	TouchNone TouchResult = iota
	TouchYes
	TouchCover
)

// Sections returns the raw (length, ins) pairs. Callers should treat the
// result as read-only.
func (d ChangeDesc) Sections() []int { return d.sections }

// Length returns the length of the document this change applies to.
func (d ChangeDesc) Length() int {
	total := 0
	for i := 0; i < len(d.sections); i += 2 {
		total += d.sections[i]
	}
	return total
}

// NewLength returns the length of the document this change produces.
func (d ChangeDesc) NewLength() int {
	total := 0
	for i := 0; i < len(d.sections); i += 2 {
		length := d.sections[i]
		insv := d.sections[i+1]
		if insv == -1 {
			total += length
		} else if insv > 0 {
			total += insv
		}
	}
	return total
}

// IsEmpty reports whether the change replaces nothing — every section is
// an unchanged run.
func (d ChangeDesc) IsEmpty() bool {
	for i := 1; i < len(d.sections); i += 2 {
		if d.sections[i] != -1 {
			return false
		}
	}
	return true
}

// MapPos maps a position in the old document to its counterpart in the
// new one. assoc only matters for a position that coincides with a pure
// insertion: assoc < 0 keeps it before the inserted text, assoc >= 0 moves
// it after. A position at the start of a replacement that removed old
// content maps to the start of the new content, and one inside it or at
// its end maps to the end, whatever assoc is. ErrPositionDeleted is
// returned when mode says the position's surrounding content was replaced.
func (d ChangeDesc) MapPos(pos, assoc int, mode MapMode) (int, error) {
	total := d.Length()
	if pos < 0 || pos > total {
		return 0, errOutOfRange("MapPos", pos, total)
	}
	posA, posB := 0, 0
	n := len(d.sections)
	for i := 0; i < n; i += 2 {
		length := d.sections[i]
		insv := d.sections[i+1]
		endA := posA + length
		last := i+2 >= n
		// A zero-length replacement (a pure insertion) sits exactly at the
		// boundary pos == endA == next section's start; assoc decides which
		// side claims it. assoc < 0 sticks to the content before it, so this
		// section (not yet skipped past) is the one that "contains" pos.
		// Every other boundary case (unchanged runs, and replacements that
		// actually consumed old content) resolves the same way regardless of
		// assoc, so they keep skipping ahead as before.
		stickBefore := insv != -1 && length == 0 && assoc < 0
		if !last && (pos > endA || (pos == endA && !stickBefore)) {
			posA = endA
			if insv == -1 {
				posB += length
			} else if insv > 0 {
				posB += insv
			}
			continue
		}

		if insv == -1 {
			return posB + (pos - posA), nil
		}

		if mode != ModeSimple {
			switch mode {
			case ModeTrackDel:
				if pos > posA && pos < endA {
					return 0, ErrPositionDeleted
				}
			case ModeTrackBefore:
				if posA < pos {
					return 0, ErrPositionDeleted
				}
			case ModeTrackAfter:
				if endA > pos {
					return 0, ErrPositionDeleted
				}
			}
		}

		if pos == posA && (length > 0 || assoc < 0) {
			return posB, nil
		}
		if assoc < 0 && length == 0 {
			return posB, nil
		}
		out := 0
		if insv > 0 {
			out = insv
		}
		return posB + out, nil
	}
	return posB, nil
}

// TouchesRange reports whether any replacement in this change overlaps
// [from, to). TouchCover means a single replacement's span contains the
// whole queried range.
func (d ChangeDesc) TouchesRange(from, to int) TouchResult {
	posA := 0
	result := TouchNone
	for i := 0; i < len(d.sections); i += 2 {
		length := d.sections[i]
		insv := d.sections[i+1]
		endA := posA + length
		if insv != -1 {
			if posA <= from && to <= endA {
				return TouchCover
			}
			if (endA > from && posA < to) || (length == 0 && posA >= from && posA <= to) {
				result = TouchYes
			}
		}
		posA = endA
		if posA > to {
			break
		}
	}
	return result
}

// IterGaps calls f for every unchanged run, in order, with the matching
// positions in the old (posA) and new (posB) document.
func (d ChangeDesc) IterGaps(f func(posA, posB, length int)) {
	posA, posB := 0, 0
	for i := 0; i < len(d.sections); i += 2 {
		length := d.sections[i]
		insv := d.sections[i+1]
		if insv == -1 {
			f(posA, posB, length)
			posB += length
		} else if insv > 0 {
			posB += insv
		}
		posA += length
	}
}

// IterChangedRanges calls f once per replacement, giving its span in both
// the old and new document. When individual is false, adjacent
// replacements are reported as a single merged range.
func (d ChangeDesc) IterChangedRanges(individual bool, f func(fromA, toA, fromB, toB int)) {
	posA, posB := 0, 0
	have := false
	var rFromA, rToA, rFromB, rToB int
	flush := func() {
		if have {
			f(rFromA, rToA, rFromB, rToB)
			have = false
		}
	}
	for i := 0; i < len(d.sections); i += 2 {
		length := d.sections[i]
		insv := d.sections[i+1]
		endA := posA + length
		if insv == -1 {
			flush()
			posB += length
		} else {
			newLen := 0
			if insv > 0 {
				newLen = insv
			}
			endB := posB + newLen
			if have && !individual {
				rToA, rToB = endA, endB
			} else {
				flush()
				rFromA, rToA, rFromB, rToB = posA, endA, posB, endB
				have = true
			}
			posB = endB
		}
		posA = endA
	}
	flush()
}

// InvertedDesc returns the shape of the change that would undo this one.
// Because ChangeDesc carries no text, an inverted replacement's inserted
// content is unknown here; use ChangeSet.Invert when the original document
// is available.
func (d ChangeDesc) InvertedDesc() ChangeDesc {
	out := make([]int, 0, len(d.sections))
	for i := 0; i < len(d.sections); i += 2 {
		length := d.sections[i]
		insv := d.sections[i+1]
		switch {
		case insv == -1:
			out = append(out, length, -1)
		case insv == 0:
			out = append(out, 0, length)
		default:
			out = append(out, insv, length)
		}
	}
	return ChangeDesc{sections: out}
}

// ComposeDesc returns the shape of applying this change followed by other.
func (d ChangeDesc) ComposeDesc(other ChangeDesc) (ChangeDesc, error) {
	a, err := descToChangeSet(d)
	if err != nil {
		return ChangeDesc{}, err
	}
	b, err := descToChangeSet(other)
	if err != nil {
		return ChangeDesc{}, err
	}
	composed, err := a.Compose(b)
	if err != nil {
		return ChangeDesc{}, err
	}
	return composed.ChangeDesc, nil
}

// MapDesc rebases this change over other, which is assumed to apply to
// the same starting document. before indicates whether this change should
// be considered to have happened first when both touch the same position.
func (d ChangeDesc) MapDesc(other ChangeDesc, before bool) (ChangeDesc, error) {
	a, err := descToChangeSet(d)
	if err != nil {
		return ChangeDesc{}, err
	}
	b, err := descToChangeSet(other)
	if err != nil {
		return ChangeDesc{}, err
	}
	mapped, err := a.Map(b.Desc(), before)
	if err != nil {
		return ChangeDesc{}, err
	}
	return mapped.ChangeDesc, nil
}

// ToJSON returns the flat (length, ins) pair array.
func (d ChangeDesc) ToJSON() []int {
	out := make([]int, len(d.sections))
	copy(out, d.sections)
	return out
}

// DescFromJSON rebuilds a ChangeDesc from the array ToJSON produced.
func DescFromJSON(data []int) ChangeDesc {
	out := make([]int, len(data))
	copy(out, data)
	return ChangeDesc{sections: out}
}

func (d ChangeDesc) String() string {
	var b strings.Builder
	b.WriteString("ChangeDesc{")
	for i := 0; i < len(d.sections); i += 2 {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%d,%d)", d.sections[i], d.sections[i+1])
	}
	b.WriteByte('}')
	return b.String()
}

// blankText builds a placeholder Text of exactly n UTF-16 units, used only
// internally so ChangeDesc-level operations (which carry no real inserted
// content) can be driven through the same lowOp machinery ChangeSet uses.
func blankText(n int) (text.Text, error) {
	if n <= 0 {
		return text.Empty(), nil
	}
	return text.Of([]string{strings.Repeat(" ", n)})
}

// descToChangeSet wraps a ChangeDesc in placeholder inserted text so it
// can be fed through ChangeSet.Compose/Map. Only section shape and length
// are meaningful on the result; any resulting inserted text must be
// discarded by the caller (see ComposeDesc/MapDesc above).
func descToChangeSet(d ChangeDesc) (ChangeSet, error) {
	inserted := make([]text.Text, len(d.sections)/2)
	for i := range inserted {
		insv := d.sections[i*2+1]
		t, err := blankText(insv)
		if err != nil {
			return ChangeSet{}, err
		}
		inserted[i] = t
	}
	return ChangeSet{ChangeDesc: ChangeDesc{sections: d.sections}, inserted: inserted}, nil
}
