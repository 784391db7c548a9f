package change

import (
	"fmt"
	"strings"

	"github.com/texere-rope/corestate/pkg/text"
)

// ChangeSet pairs a ChangeDesc with the actual text inserted by each of
// its replacement sections, so it can be applied to a real document.
// len(inserted) always equals the number of sections; entries for
// unchanged or pure-deletion sections are the zero Text and never read.
type ChangeSet struct {
	ChangeDesc
	inserted []text.Text
}

// Desc discards the inserted text, keeping only the edit's shape.
func (cs ChangeSet) Desc() ChangeDesc { return cs.ChangeDesc }

// Empty returns the no-op change for a document of the given length.
func Empty(length int) ChangeSet {
	if length <= 0 {
		return ChangeSet{}
	}
	return ChangeSet{ChangeDesc{sections: []int{length, -1}}, []text.Text{text.Empty()}}
}

// Apply returns the document that results from applying cs to doc.
func (cs ChangeSet) Apply(doc text.Text) (text.Text, error) {
	if doc.Length() != cs.Length() {
		return text.Text{}, ErrLengthMismatch
	}
	var pieces [][]string
	posA := 0
	for i := 0; i < len(cs.sections); i += 2 {
		length := cs.sections[i]
		insv := cs.sections[i+1]
		if insv == -1 {
			sub, err := doc.Slice(posA, posA+length)
			if err != nil {
				return text.Text{}, err
			}
			pieces = append(pieces, sub.ToJSON())
		} else if insv > 0 {
			pieces = append(pieces, cs.inserted[i/2].ToJSON())
		}
		posA += length
	}
	return text.Of(assembleLines(pieces))
}

// assembleLines concatenates a sequence of line-array fragments, merging
// the boundary between consecutive fragments the way a mid-line edit
// rejoins a line split by decompose.
func assembleLines(pieces [][]string) []string {
	var out []string
	for _, p := range pieces {
		if len(p) == 0 {
			continue
		}
		if len(out) > 0 {
			out[len(out)-1] += p[0]
			out = append(out, p[1:]...)
		} else {
			out = append(out, p...)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// Invert returns the change that undoes cs, given the document cs was
// built against (needed to recover the text any deletions removed).
func (cs ChangeSet) Invert(doc text.Text) (ChangeSet, error) {
	if doc.Length() != cs.Length() {
		return ChangeSet{}, ErrLengthMismatch
	}
	sb := &sectionBuilder{}
	posA := 0
	for i := 0; i < len(cs.sections); i += 2 {
		length := cs.sections[i]
		insv := cs.sections[i+1]
		switch {
		case insv == -1:
			sb.add(length, -1, text.Text{})
		case insv == 0:
			deleted, err := doc.Slice(posA, posA+length)
			if err != nil {
				return ChangeSet{}, err
			}
			sb.add(0, length, deleted)
		default:
			deleted, err := doc.Slice(posA, posA+length)
			if err != nil {
				return ChangeSet{}, err
			}
			sb.add(insv, length, deleted)
		}
		posA += length
	}
	return ChangeSet{ChangeDesc{sections: sb.sections}, sb.inserted}, nil
}

// Compose returns the single change equivalent to applying cs followed by
// other, where other is assumed to apply to the document cs produces.
func (cs ChangeSet) Compose(other ChangeSet) (ChangeSet, error) {
	if cs.NewLength() != other.Length() {
		return ChangeSet{}, ErrLengthMismatch
	}
	a := toLowOps(cs.sections, cs.inserted)
	b := toLowOps(other.sections, other.inserted)
	out, err := composeLowOps(a, b)
	if err != nil {
		return ChangeSet{}, err
	}
	sections, inserted := fromLowOps(out)
	return ChangeSet{ChangeDesc{sections: sections}, inserted}, nil
}

// Map rebases cs over other, a change assumed to apply to the same
// starting document as cs. before indicates whether cs should be treated
// as having happened first when both touch the same position; this
// decides which side's insert wins a tie.
func (cs ChangeSet) Map(other ChangeDesc, before bool) (ChangeSet, error) {
	if cs.Length() != other.Length() {
		return ChangeSet{}, ErrLengthMismatch
	}
	otherCS, err := descToChangeSet(other)
	if err != nil {
		return ChangeSet{}, err
	}
	a := toLowOps(cs.sections, cs.inserted)
	b := toLowOps(otherCS.sections, otherCS.inserted)

	var resultOps []lowOp
	if before {
		resultOps, _, err = transformLowOps(a, b)
	} else {
		_, resultOps, err = transformLowOps(b, a)
	}
	if err != nil {
		return ChangeSet{}, err
	}
	sections, inserted := fromLowOps(resultOps)
	return ChangeSet{ChangeDesc{sections: sections}, inserted}, nil
}

// Range is a half-open [From, To) span used by Filter.
type Range struct{ From, To int }

// Filter splits cs into two full-length ChangeSets over the same
// document: kept contains only the replacements that intersect one of the
// given ranges, filtered contains the rest. Replacements are kept or
// dropped whole — a replacement that straddles a range boundary is
// reported entirely in kept, not split at the boundary.
func (cs ChangeSet) Filter(ranges []Range) (kept ChangeSet, filtered ChangeSet, err error) {
	keptSB := &sectionBuilder{}
	filteredSB := &sectionBuilder{}
	posA := 0
	for i := 0; i < len(cs.sections); i += 2 {
		length := cs.sections[i]
		insv := cs.sections[i+1]
		endA := posA + length
		if insv == -1 {
			keptSB.add(length, -1, text.Text{})
			filteredSB.add(length, -1, text.Text{})
		} else {
			touches := false
			for _, r := range ranges {
				if r.From < endA && r.To > posA {
					touches = true
					break
				}
			}
			if touches {
				keptSB.add(length, insv, cs.inserted[i/2])
				filteredSB.add(length, -1, text.Text{})
			} else {
				keptSB.add(length, -1, text.Text{})
				filteredSB.add(length, insv, cs.inserted[i/2])
			}
		}
		posA = endA
	}
	kept = ChangeSet{ChangeDesc{sections: keptSB.sections}, keptSB.inserted}
	filtered = ChangeSet{ChangeDesc{sections: filteredSB.sections}, filteredSB.inserted}
	return kept, filtered, nil
}

// IterChangedRanges calls f once per replacement with its span in both
// documents and the text that replaced it. When individual is false,
// adjacent replacements are merged into a single call with their inserted
// text concatenated.
func (cs ChangeSet) IterChangedRanges(individual bool, f func(fromA, toA, fromB, toB int, ins text.Text)) {
	posA, posB := 0, 0
	have := false
	var rFromA, rToA, rFromB, rToB int
	var rIns text.Text
	flush := func() {
		if have {
			f(rFromA, rToA, rFromB, rToB, rIns)
			have = false
		}
	}
	for i := 0; i < len(cs.sections); i += 2 {
		length := cs.sections[i]
		insv := cs.sections[i+1]
		endA := posA + length
		if insv == -1 {
			flush()
			posB += length
		} else {
			ins := cs.inserted[i/2]
			endB := posB + ins.Length()
			if have && !individual {
				merged, err := rIns.Append(ins)
				if err == nil {
					rIns = merged
				}
				rToA, rToB = endA, endB
			} else {
				flush()
				rFromA, rToA, rFromB, rToB, rIns = posA, endA, posB, endB, ins
				have = true
			}
			posB = endB
		}
		posA = endA
	}
	flush()
}

func (cs ChangeSet) String() string {
	var b strings.Builder
	b.WriteString("ChangeSet{")
	for i := 0; i < len(cs.sections); i += 2 {
		if i > 0 {
			b.WriteString(", ")
		}
		insv := cs.sections[i+1]
		if insv > 0 {
			fmt.Fprintf(&b, "(%d,%d:%q)", cs.sections[i], insv, cs.inserted[i/2].String())
		} else {
			fmt.Fprintf(&b, "(%d,%d)", cs.sections[i], insv)
		}
	}
	b.WriteByte('}')
	return b.String()
}
