package text

// nodeFrom assembles a balanced tree from an ordered list of node pieces,
// the way decompose's output gets reassembled into a Text after Replace or
// Slice. It inlines runs of small leaves into single leaves (up to
// branchDegree lines each) and otherwise groups children into branches
// sized roughly in [chunk/2, 2*chunk], where chunk grows with the total
// line count so that very large documents don't end up with an
// excessively tall tree. Replace and Slice run it once over all of their
// pieces, so each edit rebuilds and rebalances the resulting tree in this
// single pass, keeping it within a small constant factor of perfectly
// balanced.
func nodeFrom(pieces []textNode) textNode {
	if len(pieces) == 0 {
		return &leafNode{lines: []string{""}}
	}
	merged := mergeAdjacentLeaves(pieces)
	if len(merged) == 1 {
		return merged[0]
	}
	total := 0
	for _, n := range merged {
		total += n.lineCount()
	}
	return buildBranches(merged, total)
}

// mergeAdjacentLeaves concatenates consecutive leaf nodes into single
// leaves, re-chunking whenever the running total would exceed
// branchDegree lines.
func mergeAdjacentLeaves(nodes []textNode) []textNode {
	out := make([]textNode, 0, len(nodes))
	var run []string
	flushRun := func() {
		if len(run) == 0 {
			return
		}
		for i := 0; i < len(run); i += branchDegree {
			end := i + branchDegree
			if end > len(run) {
				end = len(run)
			}
			chunk := make([]string, end-i)
			copy(chunk, run[i:end])
			out = append(out, &leafNode{lines: chunk})
		}
		run = nil
	}
	for _, n := range nodes {
		if leaf, ok := n.(*leafNode); ok {
			run = append(run, leaf.lines...)
			continue
		}
		flushRun()
		out = append(out, n)
	}
	flushRun()
	return out
}

// buildBranches groups a flat list of nodes (leaves and/or existing
// branches) into a tree of branchNodes with branching factor
// branchDegree, targeting chunk = max(branchDegree, totalLines >>
// log2Branch) lines per top-level group.
func buildBranches(nodes []textNode, totalLines int) textNode {
	if len(nodes) == 1 {
		return nodes[0]
	}
	if len(nodes) <= branchDegree {
		return newBranchNode(nodes)
	}

	chunk := totalLines >> log2Branch
	if chunk < branchDegree {
		chunk = branchDegree
	}

	var groups [][]textNode
	var cur []textNode
	curLines := 0
	for _, n := range nodes {
		cur = append(cur, n)
		curLines += n.lineCount()
		if curLines >= chunk && len(cur) > 1 {
			groups = append(groups, cur)
			cur = nil
			curLines = 0
		}
	}
	if len(cur) > 0 {
		if len(groups) > 0 && curLines < chunk/2 {
			groups[len(groups)-1] = append(groups[len(groups)-1], cur...)
		} else {
			groups = append(groups, cur)
		}
	}

	children := make([]textNode, 0, len(groups))
	for _, g := range groups {
		gl := 0
		for _, n := range g {
			gl += n.lineCount()
		}
		children = append(children, buildBranches(g, gl))
	}
	return groupChildren(children)
}

// groupChildren collapses a list of children into one branch, further
// grouping in chunks of branchDegree if it still exceeds the branching
// factor (this happens for extremely large documents only).
func groupChildren(children []textNode) textNode {
	for len(children) > branchDegree {
		next := make([]textNode, 0, (len(children)+branchDegree-1)/branchDegree)
		for i := 0; i < len(children); i += branchDegree {
			end := i + branchDegree
			if end > len(children) {
				end = len(children)
			}
			next = append(next, newBranchNode(children[i:end]))
		}
		children = next
	}
	if len(children) == 1 {
		return children[0]
	}
	return newBranchNode(children)
}
