package ot

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/texere-rope/corestate/pkg/text"
)

func TestOperationChainAppliesLikeOtJS(t *testing.T) {
	doc, err := text.Of([]string{"hello world"})
	require.NoError(t, err)

	op := NewOperation(doc.Length())
	op.Retain(6).Delete(5).Insert("editor")
	cs, err := op.Finish()
	require.NoError(t, err)

	out, err := Apply(cs, doc)
	require.NoError(t, err)
	require.Equal(t, "hello editor", out.String())
}

func TestTransformCommutes(t *testing.T) {
	doc, err := text.Of([]string{"abcdef"})
	require.NoError(t, err)

	opA := NewOperation(doc.Length())
	csA, err := opA.Retain(1).Delete(1).Insert("X").Retain(4).Finish()
	require.NoError(t, err)

	opB := NewOperation(doc.Length())
	csB, err := opB.Retain(4).Delete(1).Insert("Y").Retain(1).Finish()
	require.NoError(t, err)

	aPrime, bPrime, err := Transform(csA, csB)
	require.NoError(t, err)

	viaA, err := Compose(csA, bPrime)
	require.NoError(t, err)
	viaB, err := Compose(csB, aPrime)
	require.NoError(t, err)

	left, err := Apply(viaA, doc)
	require.NoError(t, err)
	right, err := Apply(viaB, doc)
	require.NoError(t, err)
	require.Equal(t, left.String(), right.String())
}

func TestFinishRejectsShortChain(t *testing.T) {
	op := NewOperation(10)
	op.Retain(3)
	_, err := op.Finish()
	require.ErrorIs(t, err, ErrInvalidBaseLength)
}
