// Package grapheme is the default cluster-break oracle used to keep
// cursor motion and selection endpoints from landing inside a multi-code-unit
// user-perceived character (combining marks, flag emoji, ZWJ sequences).
// It is grounded the same way the teacher's rope package exposes grapheme
// awareness — by segmenting with clipperhouse/uax29/graphemes — adapted to
// report UTF-16 code-unit offsets instead of rune counts, since that's the
// position unit this module's Text and ChangeSet use throughout.
package grapheme

import (
	"unicode/utf16"

	"github.com/clipperhouse/uax29/graphemes"
)

// ClusterBreak returns the nearest grapheme-cluster boundary to pos within
// s, where pos is a UTF-16 code-unit offset. forward searches toward the
// end of s, otherwise toward its start. includeExtending is accepted for
// interface parity with callers that distinguish "extended" vs "legacy"
// grapheme clusters; uax29/graphemes only implements the extended
// algorithm, so it has no effect here (see the design notes for this
// package).
func ClusterBreak(s string, pos int, forward bool, includeExtending bool) int {
	boundaries := clusterBoundariesUTF16(s)
	if forward {
		for _, b := range boundaries {
			if b >= pos {
				return b
			}
		}
		return boundaries[len(boundaries)-1]
	}
	for i := len(boundaries) - 1; i >= 0; i-- {
		if boundaries[i] <= pos {
			return boundaries[i]
		}
	}
	return boundaries[0]
}

// IsClusterBreak reports whether pos already sits on a grapheme boundary.
func IsClusterBreak(s string, pos int) bool {
	for _, b := range clusterBoundariesUTF16(s) {
		if b == pos {
			return true
		}
		if b > pos {
			break
		}
	}
	return false
}

func clusterBoundariesUTF16(s string) []int {
	segs := graphemes.SegmentAllString(s)
	boundaries := make([]int, 0, len(segs)+1)
	boundaries = append(boundaries, 0)
	pos := 0
	for _, seg := range segs {
		for _, r := range seg {
			pos += utf16RuneLen(r)
		}
		boundaries = append(boundaries, pos)
	}
	if len(boundaries) == 1 {
		boundaries = append(boundaries, 0)
	}
	return boundaries
}

func utf16RuneLen(r rune) int {
	if r1, _ := utf16.EncodeRune(r); r1 != 0xFFFD {
		return 2
	}
	return 1
}
