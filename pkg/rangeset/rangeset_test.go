package rangeset

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/texere-rope/corestate/pkg/change"
	"github.com/texere-rope/corestate/pkg/text"
)

func mustText(t *testing.T, s string) text.Text {
	t.Helper()
	txt, err := text.Of([]string{s})
	require.NoError(t, err)
	return txt
}

// tagValue is a small RangeValue used only by tests: an opaque id so two
// ranges can be told apart after a map without caring what they mean.
type tagValue struct {
	BaseRangeValue
	id     uuid.UUID
	isCursor bool
}

func (t tagValue) Eq(other RangeValue) bool {
	o, ok := other.(tagValue)
	return ok && o.id == t.id
}
func (t tagValue) Point() bool { return t.isCursor }

func newTag() tagValue { return tagValue{id: uuid.New()} }

func TestBuilderRejectsUnsorted(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(5, 10, newTag()))
	require.ErrorIs(t, b.Add(2, 3, newTag()), ErrUnsortedRange)
}

func TestBuilderRejectsInvertedRange(t *testing.T) {
	b := NewBuilder[tagValue]()
	err := b.Add(10, 5, newTag())
	var invalid *ErrInvalidRange
	require.ErrorAs(t, err, &invalid)
}

func TestBetweenFiltersOverlap(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(0, 5, newTag()))
	require.NoError(t, b.Add(10, 15, newTag()))
	require.NoError(t, b.Add(20, 25, newTag()))
	rs := b.Finish()

	var got []Range[tagValue]
	rs.Between(12, 22, func(r Range[tagValue]) bool {
		got = append(got, r)
		return true
	})
	require.Len(t, got, 2)
	require.Equal(t, 10, got[0].From)
	require.Equal(t, 20, got[1].From)
}

func TestLargeSetSpansMultipleChunks(t *testing.T) {
	b := NewBuilder[tagValue]()
	n := maxChunkSize*3 + 7
	for i := 0; i < n; i++ {
		require.NoError(t, b.Add(i*2, i*2+1, newTag()))
	}
	rs := b.Finish()
	require.Equal(t, n, rs.Size())
	require.Greater(t, len(rs.chunks), 3)
}

func TestMapShiftsRanges(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(5, 8, newTag()))
	rs := b.Finish()

	cs, err := change.Of(change.InsertSpec(0, mustText(t, "XXX")), 20)
	require.NoError(t, err)

	mapped, err := Map(rs, cs.Desc())
	require.NoError(t, err)
	all := mapped.All()
	require.Len(t, all, 1)
	require.Equal(t, 8, all[0].From)
	require.Equal(t, 11, all[0].To)
}

func TestMapDropsPointInsideReplacement(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(5, 5, tagValue{id: uuid.New(), isCursor: true}))
	rs := b.Finish()

	cs, err := change.Of(change.ReplaceSpec(0, 10, mustText(t, "Y")), 20)
	require.NoError(t, err)

	mapped, err := Map(rs, cs.Desc())
	require.NoError(t, err)
	require.Equal(t, 0, mapped.Size())
}

func TestMergeInterleavesSets(t *testing.T) {
	b1 := NewBuilder[tagValue]()
	require.NoError(t, b1.Add(0, 5, newTag()))
	require.NoError(t, b1.Add(20, 25, newTag()))
	rs1 := b1.Finish()

	b2 := NewBuilder[tagValue]()
	require.NoError(t, b2.Add(10, 15, newTag()))
	rs2 := b2.Finish()

	mc := Merge([]*RangeSet[tagValue]{rs1, rs2})
	var froms []int
	var sets []int
	for mc.Next() {
		froms = append(froms, mc.Value().From)
		sets = append(sets, mc.SetIndex())
	}
	require.Equal(t, []int{0, 10, 20}, froms)
	require.Equal(t, []int{0, 1, 0}, sets)
}

func TestSpanCursorTracksActive(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(0, 10, newTag()))
	require.NoError(t, b.Add(5, 8, newTag()))
	rs := b.Finish()

	sc := NewSpanCursor(rs, 0)
	sc.Advance(6)
	require.Len(t, sc.Active(), 2)
	sc.Advance(9)
	require.Len(t, sc.Active(), 1)
}

func TestEq(t *testing.T) {
	tag := newTag()
	b1 := NewBuilder[tagValue]()
	require.NoError(t, b1.Add(0, 5, tag))
	rs1 := b1.Finish()

	b2 := NewBuilder[tagValue]()
	require.NoError(t, b2.Add(0, 5, tag))
	rs2 := b2.Finish()

	require.True(t, rs1.Eq(rs2))
}

func TestUpdateFilterFalseEmptiesSet(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(3, 3, tagValue{id: uuid.New(), isCursor: true}))
	rs := b.Finish()

	updated, err := rs.Update(UpdateSpec[tagValue]{
		Filter: func(from, to int, v tagValue) bool { return false },
	})
	require.NoError(t, err)
	require.Equal(t, 0, updated.Size())
}

func TestUpdateWithNoOptsIsIdempotent(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(0, 5, newTag()))
	require.NoError(t, b.Add(10, 15, newTag()))
	rs := b.Finish()

	same, err := rs.Update(UpdateSpec[tagValue]{})
	require.NoError(t, err)
	require.True(t, rs.Eq(same))
}

func TestUpdateMergesAdd(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(0, 5, newTag()))
	rs := b.Finish()

	updated, err := rs.Update(UpdateSpec[tagValue]{
		Add: []Range[tagValue]{{From: 10, To: 15, Value: newTag()}},
	})
	require.NoError(t, err)
	all := updated.All()
	require.Len(t, all, 2)
	require.Equal(t, 0, all[0].From)
	require.Equal(t, 10, all[1].From)
}

func TestJoinCombinesSetsInOrder(t *testing.T) {
	b1 := NewBuilder[tagValue]()
	require.NoError(t, b1.Add(0, 5, newTag()))
	rs1 := b1.Finish()

	b2 := NewBuilder[tagValue]()
	require.NoError(t, b2.Add(10, 15, newTag()))
	rs2 := b2.Finish()

	joined, err := Join(rs1, rs2)
	require.NoError(t, err)
	all := joined.All()
	require.Len(t, all, 2)
	require.Equal(t, 0, all[0].From)
	require.Equal(t, 10, all[1].From)
}

type spanRecorder struct {
	spans  []Range[tagValue]
	points []Range[tagValue]
}

func (r *spanRecorder) Span(from, to int, active []Range[tagValue], openStart int) {
	r.spans = append(r.spans, Range[tagValue]{From: from, To: to})
}

func (r *spanRecorder) Point(from, to int, value tagValue, active []Range[tagValue], openStart, index int) {
	r.points = append(r.points, Range[tagValue]{From: from, To: to, Value: value})
}

func TestSpansSplitsAroundActiveRange(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(2, 5, newTag()))
	rs := b.Finish()

	rec := &spanRecorder{}
	require.NoError(t, Spans([]*RangeSet[tagValue]{rs}, 0, 10, rec, -1))
	require.Len(t, rec.spans, 3)
	require.Equal(t, Range[tagValue]{From: 0, To: 2}, rec.spans[0])
	require.Equal(t, Range[tagValue]{From: 2, To: 5}, rec.spans[1])
	require.Equal(t, Range[tagValue]{From: 5, To: 10}, rec.spans[2])
	require.Empty(t, rec.points)
}

func TestSpansReportsPointBetweenSpans(t *testing.T) {
	b := NewBuilder[tagValue]()
	require.NoError(t, b.Add(4, 4, tagValue{id: uuid.New(), isCursor: true}))
	rs := b.Finish()

	rec := &spanRecorder{}
	require.NoError(t, Spans([]*RangeSet[tagValue]{rs}, 0, 10, rec, -1))
	require.Len(t, rec.points, 1)
	require.Equal(t, 4, rec.points[0].From)
	require.Equal(t, 4, rec.points[0].To)
}

type compareRecorder struct {
	rangeCalls []Range[tagValue]
	pointCalls int
	boundCalls int
}

func (r *compareRecorder) ComparePoint(pos, end int, oldPoint, newPoint *Range[tagValue]) {
	r.pointCalls++
}

func (r *compareRecorder) CompareRange(pos, end int, oldActive, newActive []Range[tagValue]) {
	r.rangeCalls = append(r.rangeCalls, Range[tagValue]{From: pos, To: end})
}

func (r *compareRecorder) BoundChange(pos int) {
	r.boundCalls++
}

func TestCompareSilentWhenSetsMatch(t *testing.T) {
	tag := newTag()
	b1 := NewBuilder[tagValue]()
	require.NoError(t, b1.Add(0, 5, tag))
	rsOld := b1.Finish()

	b2 := NewBuilder[tagValue]()
	require.NoError(t, b2.Add(0, 5, tag))
	rsNew := b2.Finish()

	rec := &compareRecorder{}
	err := Compare([]*RangeSet[tagValue]{rsOld}, []*RangeSet[tagValue]{rsNew}, change.Empty(10).Desc(), rec)
	require.NoError(t, err)
	require.Empty(t, rec.rangeCalls)
	require.Zero(t, rec.pointCalls)
	require.Zero(t, rec.boundCalls)
}

func TestCompareReportsDifferingActiveRange(t *testing.T) {
	b1 := NewBuilder[tagValue]()
	require.NoError(t, b1.Add(0, 5, newTag()))
	rsOld := b1.Finish()

	b2 := NewBuilder[tagValue]()
	require.NoError(t, b2.Add(0, 5, newTag()))
	rsNew := b2.Finish()

	rec := &compareRecorder{}
	err := Compare([]*RangeSet[tagValue]{rsOld}, []*RangeSet[tagValue]{rsNew}, change.Empty(10).Desc(), rec)
	require.NoError(t, err)
	require.Len(t, rec.rangeCalls, 1)
	require.Equal(t, 0, rec.rangeCalls[0].From)
	require.Equal(t, 5, rec.rangeCalls[0].To)
}
