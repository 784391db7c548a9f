package grapheme

import "testing"

func TestClusterBreakASCII(t *testing.T) {
	s := "abc"
	if got := ClusterBreak(s, 1, true, true); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if got := ClusterBreak(s, 1, false, true); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestClusterBreakCombiningMark(t *testing.T) {
	// "e" followed by COMBINING ACUTE ACCENT (U+0301) forms one grapheme
	// cluster; position 1 sits inside it.
	s := "éx"
	if IsClusterBreak(s, 1) {
		t.Fatalf("position 1 should be inside the combined cluster")
	}
	if got := ClusterBreak(s, 1, true, true); got != 2 {
		t.Fatalf("forward break from 1 = %d, want 2", got)
	}
	if got := ClusterBreak(s, 1, false, true); got != 0 {
		t.Fatalf("backward break from 1 = %d, want 0", got)
	}
}

func TestClusterBreakEmpty(t *testing.T) {
	if got := ClusterBreak("", 0, true, true); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
