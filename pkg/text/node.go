package text

// leafNode holds 1..=branchDegree line strings directly.
type leafNode struct {
	lines []string
}

func (n *leafNode) length() int {
	total := 0
	for _, s := range n.lines {
		total += utf16Len(s)
	}
	return total + len(n.lines) - 1
}

func (n *leafNode) lineCount() int { return len(n.lines) }

// locate returns the index of the line containing pos and the UTF-16
// offset within that line.
func (n *leafNode) locate(pos int) (idx, offset int) {
	remaining := pos
	for i, s := range n.lines {
		l := utf16Len(s)
		if remaining <= l {
			return i, remaining
		}
		remaining -= l + 1 // +1 for the implicit break
	}
	// pos == length(): last line, at its end.
	last := len(n.lines) - 1
	return last, utf16Len(n.lines[last])
}

func (n *leafNode) lineAt(pos, base, baseLine int) Line {
	idx, _ := n.locate(pos)
	return n.lineAt0(idx, base, baseLine)
}

func (n *leafNode) lineNumber(num, base, baseLine int) Line {
	idx := num - baseLine
	return n.lineAt0(idx, base, baseLine)
}

func (n *leafNode) lineAt0(idx, base, baseLine int) Line {
	from := base
	for i := 0; i < idx; i++ {
		from += utf16Len(n.lines[i]) + 1
	}
	text := n.lines[idx]
	return Line{From: from, To: from + utf16Len(text), Number: baseLine + idx, Text: text}
}

func (n *leafNode) appendLines(out *[]string) {
	*out = append(*out, n.lines...)
}

// decompose appends the pieces of n covering [from, to) to *target. See
// textNode.decompose for the mergeStart contract.
func (n *leafNode) decompose(from, to int, target *[]textNode, mergeStart bool) {
	if from >= to {
		return
	}
	i1, o1 := n.locate(from)
	i2, o2 := n.locate(to)

	var piece []string
	if i1 == i2 {
		piece = []string{n.lines[i1][byteOffset(n.lines[i1], o1):byteOffset(n.lines[i1], o2)]}
	} else {
		piece = make([]string, 0, i2-i1+1)
		piece = append(piece, n.lines[i1][byteOffset(n.lines[i1], o1):])
		piece = append(piece, n.lines[i1+1:i2]...)
		piece = append(piece, n.lines[i2][:byteOffset(n.lines[i2], o2)])
	}
	appendPiece(target, piece, mergeStart)
}

// byteOffset converts a UTF-16 code-unit offset within s to a byte offset.
func byteOffset(s string, units int) int {
	if units <= 0 {
		return 0
	}
	remaining := units
	for i, r := range s {
		if remaining <= 0 {
			return i
		}
		remaining -= runeUTF16Len(r)
	}
	return len(s)
}

func runeUTF16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// appendPiece merges lines (the contiguous output of one decompose call)
// into target: if mergeStart and target is non-empty, lines[0] is
// concatenated onto target's last entry's last line; everything else in
// lines becomes a fresh single-line leaf appended to target.
func appendPiece(target *[]textNode, lines []string, mergeStart bool) {
	if len(lines) == 0 {
		return
	}
	rest := lines
	if mergeStart && len(*target) > 0 {
		mergeIntoLast(target, lines[0])
		rest = lines[1:]
	}
	for _, s := range rest {
		*target = append(*target, &leafNode{lines: []string{s}})
	}
}

// mergeIntoLast appends s onto the last line of target's final entry
// in-place. Entries created by decompose are always fresh (never aliased
// into a shared original tree), so this mutation is safe.
func mergeIntoLast(target *[]textNode, s string) {
	last := (*target)[len(*target)-1]
	leaf, ok := last.(*leafNode)
	if !ok {
		// Defensive: a branch can only appear as a whole-subtree passthrough,
		// which decompose never hands back when mergeStart is requested on
		// the next call (see branchNode.decompose); treat it as append-only.
		*target = append(*target, &leafNode{lines: []string{s}})
		return
	}
	leaf.lines[len(leaf.lines)-1] += s
}

// branchNode holds 2..=branchDegree children with cached length/lineCount.
type branchNode struct {
	children  []textNode
	length_   int
	lineCount_ int
}

func newBranchNode(children []textNode) *branchNode {
	b := &branchNode{children: children}
	for i, c := range children {
		if i > 0 {
			b.length_++ // implicit break
		}
		b.length_ += c.length()
		b.lineCount_ += c.lineCount()
	}
	return b
}

func (n *branchNode) length() int    { return n.length_ }
func (n *branchNode) lineCount() int { return n.lineCount_ }

func (n *branchNode) appendLines(out *[]string) {
	for _, c := range n.children {
		c.appendLines(out)
	}
}

func (n *branchNode) lineAt(pos, base, baseLine int) Line {
	cur, curLine := 0, baseLine
	for i, c := range n.children {
		cl := c.length()
		if pos <= cur+cl || i == len(n.children)-1 {
			return c.lineAt(pos-cur, base+cur, curLine)
		}
		cur += cl + 1
		curLine += c.lineCount()
	}
	panic("text: lineAt fell through branch")
}

func (n *branchNode) lineNumber(num, base, baseLine int) Line {
	cur, curLine := base, baseLine
	for i, c := range n.children {
		cc := c.lineCount()
		if num < curLine+cc || i == len(n.children)-1 {
			return c.lineNumber(num, cur, curLine)
		}
		cur += c.length() + 1
		curLine += cc
	}
	panic("text: lineNumber fell through branch")
}

func (n *branchNode) decompose(from, to int, target *[]textNode, mergeStart bool) {
	if from >= to {
		return
	}
	pos := 0
	touched := false
	for _, c := range n.children {
		cLen := c.length()
		childFrom, childTo := pos, pos+cLen
		relFrom := max(from, childFrom) - childFrom
		relTo := min(to, childTo) - childFrom
		if relFrom < relTo {
			merge := mergeStart && !touched
			c.decompose(relFrom, relTo, target, merge)
			touched = true
		}
		pos = childTo + 1
		if pos > to {
			break
		}
	}
}
