package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustOf(t *testing.T, lines []string) Text {
	t.Helper()
	txt, err := Of(lines)
	require.NoError(t, err)
	return txt
}

func TestOfRejectsEmptyArray(t *testing.T) {
	_, err := Of(nil)
	require.Error(t, err)
}

func TestOfLengthAndLines(t *testing.T) {
	lines := []string{"hello", "world", "!"}
	txt := mustOf(t, lines)
	want := 0
	for i, l := range lines {
		want += len(l)
		if i > 0 {
			want++
		}
	}
	require.Equal(t, want, txt.Length())
	require.Equal(t, len(lines), txt.Lines())
}

func TestEmptyDocument(t *testing.T) {
	txt := Empty()
	require.Equal(t, 0, txt.Length())
	require.Equal(t, 1, txt.Lines())
	require.Equal(t, "", txt.String())
}

func TestReplaceScenario1(t *testing.T) {
	txt := mustOf(t, []string{"hello world"})
	ins := mustOf(t, []string{"editor"})
	out, err := txt.Replace(6, 11, ins)
	require.NoError(t, err)
	require.Equal(t, "hello editor", out.String())
}

func TestSliceRoundTrip(t *testing.T) {
	txt := mustOf(t, []string{"one", "two", "three", "four"})
	whole, err := txt.Slice(0, txt.Length())
	require.NoError(t, err)
	require.True(t, whole.Eq(txt))

	sub, err := txt.Slice(4, 7)
	require.NoError(t, err)
	require.Equal(t, 3, sub.Length())
}

func TestReplaceComposition(t *testing.T) {
	// doc.replace(a,b,Text.of([""])).replace(a,a,t).eq(doc.replace(a,b,t))
	doc := mustOf(t, []string{"abcdef", "ghijkl"})
	ins := mustOf(t, []string{"XY", "Z"})
	a, b := 2, 9

	blank, err := Of([]string{""})
	require.NoError(t, err)
	step1, err := doc.Replace(a, b, blank)
	require.NoError(t, err)
	step2, err := step1.Replace(a, a, ins)
	require.NoError(t, err)

	direct, err := doc.Replace(a, b, ins)
	require.NoError(t, err)
	require.True(t, step2.Eq(direct), "got %q want %q", step2.String(), direct.String())
}

func TestLineAtInvariants(t *testing.T) {
	txt := mustOf(t, []string{"abc", "de", "fghi"})
	for p := 0; p <= txt.Length(); p++ {
		l, err := txt.LineAt(p)
		require.NoError(t, err)
		require.LessOrEqual(t, l.From, p)
		require.LessOrEqual(t, p, l.To)
		require.Equal(t, l.To-l.From, utf16Len(l.Text))
	}
}

func TestLineAtOutOfRange(t *testing.T) {
	txt := mustOf(t, []string{"abc"})
	_, err := txt.LineAt(-1)
	require.Error(t, err)
	_, err = txt.LineAt(txt.Length() + 1)
	require.Error(t, err)
}

func TestLineLookup(t *testing.T) {
	txt := mustOf(t, []string{"a", "b", "c"})
	l2, err := txt.Line(2)
	require.NoError(t, err)
	require.Equal(t, "b", l2.Text)
	require.Equal(t, 2, l2.Number)

	_, err = txt.Line(0)
	require.Error(t, err)
	_, err = txt.Line(4)
	require.Error(t, err)
}

func TestAppend(t *testing.T) {
	a := mustOf(t, []string{"foo"})
	b := mustOf(t, []string{"bar", "baz"})
	out, err := a.Append(b)
	require.NoError(t, err)
	require.Equal(t, "foobar\nbaz", out.String())
}

func TestToJSONRoundTrip(t *testing.T) {
	lines := []string{"one", "", "three"}
	txt := mustOf(t, lines)
	require.Equal(t, lines, txt.ToJSON())
	back, err := FromJSON(txt.ToJSON())
	require.NoError(t, err)
	require.True(t, back.Eq(txt))
}

func TestLargeDocumentBalances(t *testing.T) {
	lines := make([]string, 5000)
	for i := range lines {
		lines[i] = "line"
	}
	txt := mustOf(t, lines)
	require.Equal(t, 5000, txt.Lines())

	mid, err := txt.Replace(2500, 2504, mustOf(t, []string{"X"}))
	require.NoError(t, err)
	l, err := mid.LineAt(2500)
	require.NoError(t, err)
	require.Equal(t, "X", l.Text)
}

func TestIterForwardAndBackward(t *testing.T) {
	txt := mustOf(t, []string{"ab", "cd", "ef"})
	var fwd string
	it := txt.Iter(Forward)
	for it.Next() {
		fwd += it.Current()
	}
	require.Equal(t, "ab\ncd\nef", fwd)

	var bwd []byte
	rit := txt.Iter(Backward)
	for rit.Next() {
		tok := rit.Current()
		for i := len(tok) - 1; i >= 0; i-- {
			bwd = append(bwd, tok[i])
		}
	}
	reversedFwd := make([]byte, len(fwd))
	for i := 0; i < len(fwd); i++ {
		reversedFwd[i] = fwd[len(fwd)-1-i]
	}
	require.Equal(t, string(reversedFwd), string(bwd))
}

func TestIterRange(t *testing.T) {
	txt := mustOf(t, []string{"abcdef"})
	it, err := txt.IterRange(1, 4)
	require.NoError(t, err)
	var got string
	for it.Next() {
		got += it.Current()
	}
	require.Equal(t, "bcd", got)
}

func TestIterLines(t *testing.T) {
	txt := mustOf(t, []string{"a", "", "c"})
	lc, err := txt.IterLines(0, 0)
	require.NoError(t, err)
	var seen []string
	for lc.Next() {
		seen = append(seen, lc.Value().Text)
	}
	require.Equal(t, []string{"a", "", "c"}, seen)
}
