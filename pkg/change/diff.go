package change

import (
	"unicode/utf16"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/texere-rope/corestate/pkg/text"
)

// Diff builds the ChangeSet that turns oldText into newText, computed with
// diffmatchpatch's character-level diff rather than a hand-rolled comparison. Runs of
// equal content become retains, removed runs become deletions, and added
// runs become insertions; a delete immediately followed by an insert is
// folded into one replacement by fromLowOps the same as anywhere else in
// this package.
func Diff(oldText, newText text.Text) (ChangeSet, error) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText.String(), newText.String(), false)

	var ops []lowOp
	for _, d := range diffs {
		n := utf16Len(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if n > 0 {
				ops = append(ops, retainOp(n))
			}
		case diffmatchpatch.DiffDelete:
			if n > 0 {
				ops = append(ops, deleteOp(n))
			}
		case diffmatchpatch.DiffInsert:
			t, err := SplitInsert(d.Text, "")
			if err != nil {
				return ChangeSet{}, err
			}
			ops = append(ops, insertOp(t))
		}
	}
	sections, inserted := fromLowOps(ops)
	return ChangeSet{ChangeDesc{sections: sections}, inserted}, nil
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r1, _ := utf16.EncodeRune(r); r1 != 0xFFFD {
			n += 2
		} else {
			n++
		}
	}
	return n
}
