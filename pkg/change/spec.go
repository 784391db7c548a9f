package change

import (
	"regexp"
	"sort"
	"strings"

	"github.com/texere-rope/corestate/pkg/text"
)

// Spec describes a single replacement: delete [From, To) and put Insert in
// its place. A pure insertion has From == To; a pure deletion has a zero
// Insert.
type Spec struct {
	From   int
	To     int
	Insert text.Text
}

// InsertSpec builds a Spec that inserts t at pos without deleting anything.
func InsertSpec(pos int, t text.Text) Spec { return Spec{From: pos, To: pos, Insert: t} }

// DeleteSpec builds a Spec that deletes [from, to) without inserting
// anything.
func DeleteSpec(from, to int) Spec { return Spec{From: from, To: to} }

// ReplaceSpec builds a Spec that deletes [from, to) and inserts t.
func ReplaceSpec(from, to int, t text.Text) Spec { return Spec{From: from, To: to, Insert: t} }

var lineSplitRe = regexp.MustCompile(`\r\n?|\n`)

// SplitInsert turns a plain string into the Text a Spec's Insert field
// expects, splitting on lineSep (or, if lineSep is empty, on any of
// "\n", "\r\n", "\r").
func SplitInsert(s, lineSep string) (text.Text, error) {
	var parts []string
	if lineSep != "" {
		parts = strings.Split(s, lineSep)
	} else {
		parts = lineSplitRe.Split(s, -1)
	}
	return text.Of(parts)
}

// Of builds a ChangeSet for a single replacement against a document of the
// given length.
func Of(spec Spec, length int) (ChangeSet, error) {
	return OfSpecs([]Spec{spec}, length)
}

// OfSpecs builds a ChangeSet for a batch of non-overlapping replacements
// against a document of the given length. Specs may be given in any order;
// they are sorted by From before being combined. Overlapping specs are
// resolved on a first-by-position-wins basis rather than rejected, since
// the caller's intent for overlapping edits isn't otherwise recoverable.
func OfSpecs(specs []Spec, length int) (ChangeSet, error) {
	for _, s := range specs {
		if s.From < 0 || s.To < s.From || s.To > length {
			return ChangeSet{}, errOutOfRange("OfSpecs", s.To, length)
		}
	}
	sorted := make([]Spec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	sb := &sectionBuilder{}
	pos := 0
	for _, s := range sorted {
		if s.From < pos {
			if s.To <= pos {
				continue
			}
			s.From = pos
		}
		if s.From > pos {
			sb.add(s.From-pos, -1, text.Text{})
		}
		delLen := s.To - s.From
		insLen := s.Insert.Length()
		insv := 0
		if insLen > 0 {
			insv = insLen
		}
		sb.add(delLen, insv, s.Insert)
		pos = s.To
	}
	if pos < length {
		sb.add(length-pos, -1, text.Text{})
	}
	return ChangeSet{ChangeDesc{sections: sb.sections}, sb.inserted}, nil
}

// OfChangeSet validates that cs applies to a document of the given length
// and returns it unchanged; it exists so callers that accept "a spec, or
// an already-built ChangeSet" have a single entry point to call.
func OfChangeSet(cs ChangeSet, length int) (ChangeSet, error) {
	if cs.Length() != length {
		return ChangeSet{}, ErrLengthMismatch
	}
	return cs, nil
}
