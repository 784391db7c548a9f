// Package text implements Text, the immutable line-structured rope that
// backs the editor's document model.
//
// A Text is a tree of lines: leaves hold up to B=32 line strings directly,
// branches hold up to B children. There is an implicit line break between
// every two adjacent lines, whether they live in the same leaf or in
// neighboring subtrees, and never before the first line or after the last.
// This makes "number of lines" and "length in UTF-16 code units" O(1)
// lookups at every node, and indexing/line-lookup/slicing O(log n).
//
// All Text values are immutable. Every operation that appears to modify a
// Text (Replace, Slice, Append) returns a new Text built from fresh leaves;
// no node of the old tree is reused, and the receiver is left untouched.
package text

import (
	"strings"
	"unicode/utf16"
)

// branchDegree is B, the target branching factor for both leaves (max
// lines per leaf) and branches (max children per branch).
const branchDegree = 32

// log2Branch is log2(branchDegree), used by the balancer to size chunks.
const log2Branch = 5

// Text is an immutable tree of lines.
//
// The empty document is represented the same way as any other: a single
// leaf holding one empty line (Length() == 0, Lines() == 1).
type Text struct {
	root textNode
}

// textNode is the tree node interface; both leaves and branches implement
// it. It is unexported because Text values are only ever produced by this
// package's factory functions (Of, Empty, Replace, Slice, Append) — callers
// never construct nodes directly, matching the "builders are move-only /
// values are factory-made" policy for the core.
type textNode interface {
	length() int
	lineCount() int
	// lineAt returns the Line covering pos (0 <= pos <= length()). base is
	// the absolute offset of this node's start in the whole document, and
	// baseLine is the 1-based number of this node's first line.
	lineAt(pos, base, baseLine int) Line
	// lineNumber returns the Line for the given (1-based, document-absolute)
	// line number.
	lineNumber(n, base, baseLine int) Line
	// decompose appends to *target the pieces of this node covering
	// [from, to). mergeStart, when true, asks the callee to concatenate its
	// first line onto target's current last entry instead of starting a
	// fresh one — this is how a line split by a mid-line edit is rejoined
	// in a Replace. Every piece appended is a fresh single-line leaf; no
	// node of the original tree is passed through. See leafNode.decompose
	// and appendPiece in node.go for the full contract.
	decompose(from, to int, target *[]textNode, mergeStart bool)
	// appendLines appends this node's lines, in order, to out.
	appendLines(out *[]string)
}

// Line describes a single line of a Text, produced on demand by traversal.
// From and To are absolute positions (UTF-16 code units) in the document
// that owns the Line; Number is 1-based.
type Line struct {
	From   int
	To     int
	Number int
	Text   string
}

// Of builds a Text from an array of line strings; an implicit line break is
// assumed between every two adjacent entries, none before the first or
// after the last. Of rejects an empty array — a document always has at
// least one line (possibly empty).
func Of(lines []string) (Text, error) {
	if len(lines) == 0 {
		return Text{}, errEmptyLines
	}
	if len(lines) == 1 {
		return Text{root: &leafNode{lines: []string{lines[0]}}}, nil
	}

	nodes := make([]textNode, 0, (len(lines)+branchDegree-1)/branchDegree)
	for i := 0; i < len(lines); i += branchDegree {
		end := i + branchDegree
		if end > len(lines) {
			end = len(lines)
		}
		chunk := make([]string, end-i)
		copy(chunk, lines[i:end])
		nodes = append(nodes, &leafNode{lines: chunk})
	}
	return Text{root: nodeFrom(nodes)}, nil
}

// Empty is the canonical empty document: a single empty line.
func Empty() Text {
	return Text{root: &leafNode{lines: []string{""}}}
}

// Length returns the total length of the document in UTF-16 code units,
// including the implicit line breaks.
func (t Text) Length() int {
	if t.root == nil {
		return 0
	}
	return t.root.length()
}

// Lines returns the number of lines in the document (always >= 1).
func (t Text) Lines() int {
	if t.root == nil {
		return 1
	}
	return t.root.lineCount()
}

// LineAt returns the Line containing the given position. pos must satisfy
// 0 <= pos <= Length().
func (t Text) LineAt(pos int) (Line, error) {
	if t.root == nil {
		return Line{}, errOutOfRange("LineAt", pos, 0)
	}
	if pos < 0 || pos > t.root.length() {
		return Line{}, errOutOfRange("LineAt", pos, t.root.length())
	}
	return t.root.lineAt(pos, 0, 1), nil
}

// Line returns the n-th line (1-based). n must satisfy 1 <= n <= Lines().
func (t Text) Line(n int) (Line, error) {
	if t.root == nil || n < 1 || n > t.Lines() {
		return Line{}, errLineOutOfRange(n, t.Lines())
	}
	return t.root.lineNumber(n, 0, 1), nil
}

// Replace returns a new Text with the range [from, to) replaced by ins.
func (t Text) Replace(from, to int, ins Text) (Text, error) {
	length := t.Length()
	if from < 0 || to < from || to > length {
		return Text{}, errOutOfRange("Replace", from, length)
	}
	insRoot := ins.root
	if insRoot == nil {
		insRoot = Empty().root
	}

	var pieces []textNode
	t.root.decompose(0, from, &pieces, false)
	insRoot.decompose(0, insRoot.length(), &pieces, true)
	t.root.decompose(to, length, &pieces, true)

	return Text{root: nodeFrom(pieces)}, nil
}

// Slice returns the sub-document [from, to).
func (t Text) Slice(from, to int) (Text, error) {
	length := t.Length()
	if from < 0 || to < from || to > length {
		return Text{}, errOutOfRange("Slice", from, length)
	}
	var pieces []textNode
	t.root.decompose(from, to, &pieces, false)
	return Text{root: nodeFrom(pieces)}, nil
}

// Append concatenates other onto the end of t.
func (t Text) Append(other Text) (Text, error) {
	return t.Replace(t.Length(), t.Length(), other)
}

// SliceString returns the textual content of [from, to) with line breaks
// rendered as lineSep (commonly "\n").
func (t Text) SliceString(from, to int, lineSep string) (string, error) {
	sub, err := t.Slice(from, to)
	if err != nil {
		return "", err
	}
	return sub.flatten(lineSep), nil
}

// String renders the whole document with "\n" line breaks.
func (t Text) String() string {
	return t.flatten("\n")
}

func (t Text) flatten(lineSep string) string {
	if t.root == nil {
		return ""
	}
	var lines []string
	t.root.appendLines(&lines)
	return strings.Join(lines, lineSep)
}

// ToJSON renders the document as an array of line strings, the fixed wire
// format for Text.
func (t Text) ToJSON() []string {
	if t.root == nil {
		return []string{""}
	}
	var lines []string
	t.root.appendLines(&lines)
	return lines
}

// FromJSON is the inverse of ToJSON.
func FromJSON(lines []string) (Text, error) {
	return Of(lines)
}

// Eq reports whether t and other have identical content. It skips
// top-level children that are the same node on both sides, at the front
// and the back, before falling back to a line-by-line comparison of the
// remaining interior.
func (t Text) Eq(other Text) bool {
	if t.root == other.root {
		return true
	}
	if t.Length() != other.Length() || t.Lines() != other.Lines() {
		return false
	}
	ta, tb := flattenNodes(t.root), flattenNodes(other.root)
	// Skip identical shared nodes at the front and back; only the
	// remaining interior needs a line-level comparison.
	lo, hi := 0, 0
	for lo < len(ta) && lo < len(tb) && ta[lo] == tb[lo] {
		lo++
	}
	for hi < len(ta)-lo && hi < len(tb)-lo && ta[len(ta)-1-hi] == tb[len(tb)-1-hi] {
		hi++
	}
	var la, lb []string
	for _, n := range ta[lo : len(ta)-hi] {
		n.appendLines(&la)
	}
	for _, n := range tb[lo : len(tb)-hi] {
		n.appendLines(&lb)
	}
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if la[i] != lb[i] {
			return false
		}
	}
	return true
}

// flattenNodes returns the list of leaf/branch children at the top level
// that Eq can scan by pointer identity; for a leaf it is just the node
// itself.
func flattenNodes(n textNode) []textNode {
	if b, ok := n.(*branchNode); ok {
		return b.children
	}
	return []textNode{n}
}

// utf16Len returns the UTF-16 code-unit length of s.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r1, _ := utf16.EncodeRune(r); r1 != 0xFFFD {
			n += 2 // needs a surrogate pair
		} else {
			n++ // BMP or invalid rune: one unit
		}
	}
	return n
}
