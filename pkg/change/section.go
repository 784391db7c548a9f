package change

import "github.com/texere-rope/corestate/pkg/text"

// sectionBuilder accumulates (len, ins) pairs into the canonical form used
// throughout this package: no-ops are dropped, adjacent unchanged-unchanged
// or delete-delete pairs are merged, and adjacent pure insertions are
// merged into one with their text concatenated. Every ChangeDesc/ChangeSet
// constructed by this package is assembled through a sectionBuilder so the
// canonical form is the only form that exists.
type sectionBuilder struct {
	sections []int
	inserted []text.Text
}

// add appends one (length, insv) section, performing the merges above.
// insText is only consulted when insv > 0.
func (sb *sectionBuilder) add(length, insv int, insText text.Text) {
	if length == 0 && insv <= 0 {
		return
	}
	n := len(sb.sections)
	if n > 0 {
		lastLen := sb.sections[n-2]
		lastIns := sb.sections[n-1]
		if insv <= 0 && insv == lastIns {
			sb.sections[n-2] = lastLen + length
			return
		}
		if length == 0 && lastLen == 0 && lastIns > 0 && insv > 0 {
			sb.sections[n-1] = lastIns + insv
			merged, err := sb.inserted[len(sb.inserted)-1].Append(insText)
			if err == nil {
				sb.inserted[len(sb.inserted)-1] = merged
			}
			return
		}
	}
	sb.sections = append(sb.sections, length, insv)
	sb.inserted = append(sb.inserted, insText)
}
