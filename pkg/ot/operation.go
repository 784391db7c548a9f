// Package ot is a thin, ot.js-shaped builder over change.ChangeSet: it
// keeps the Retain/Insert/Delete chaining API this module's editors were
// already written against, and the Compose/Transform/Apply vocabulary
// that comes with it, while the actual edit algebra — composition,
// joint transform, position mapping — all lives in package change.
//
// Every Operation built here is really a change.ChangeSet underneath;
// NewOperation's chain records Retain/Insert/Delete steps, and Finish turns
// them into change.Spec values and defers to change.OfSpecs.
package ot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/texere-rope/corestate/pkg/change"
	"github.com/texere-rope/corestate/pkg/text"
)

// ErrInvalidBaseLength is returned by Finish when the chain does not cover
// exactly the Operation's base length.
var ErrInvalidBaseLength = errors.New("ot: operation base length does not match document length")

// opKind mirrors ot.js's three primitives for the builder's own
// bookkeeping, independent of change's internal representation.
type opKind int

const (
	opRetain opKind = iota
	opInsert
	opDelete
)

type builderOp struct {
	kind opKind
	n    int
	text string
}

// Operation is a builder for a single edit, expressed as a chain of
// Retain/Insert/Delete calls applied left to right across the base
// document, the same calling convention ot.js's TextOperation uses.
type Operation struct {
	ops        []builderOp
	baseLength int
}

// NewOperation returns an empty Operation against a document of the given
// length.
func NewOperation(baseLength int) *Operation {
	return &Operation{baseLength: baseLength}
}

// Retain appends a retain of n units.
func (op *Operation) Retain(n int) *Operation {
	if n == 0 {
		return op
	}
	op.ops = append(op.ops, builderOp{kind: opRetain, n: n})
	return op
}

// Insert appends an insertion of s at the current position.
func (op *Operation) Insert(s string) *Operation {
	if s == "" {
		return op
	}
	op.ops = append(op.ops, builderOp{kind: opInsert, text: s})
	return op
}

// Delete appends a deletion of n units.
func (op *Operation) Delete(n int) *Operation {
	if n == 0 {
		return op
	}
	op.ops = append(op.ops, builderOp{kind: opDelete, n: n})
	return op
}

// Finish validates the accumulated chain covers exactly the base document
// length and returns the equivalent change.ChangeSet.
func (op *Operation) Finish() (change.ChangeSet, error) {
	var specs []change.Spec
	pos := 0
	for _, o := range op.ops {
		switch o.kind {
		case opRetain:
			pos += o.n
		case opDelete:
			specs = append(specs, change.DeleteSpec(pos, pos+o.n))
			pos += o.n
		case opInsert:
			t, err := change.SplitInsert(o.text, "")
			if err != nil {
				return change.ChangeSet{}, err
			}
			specs = append(specs, change.InsertSpec(pos, t))
		}
	}
	if pos != op.baseLength {
		return change.ChangeSet{}, fmt.Errorf("%w: chain covers %d, base is %d", ErrInvalidBaseLength, pos, op.baseLength)
	}
	return change.OfSpecs(specs, op.baseLength)
}

func (op *Operation) String() string {
	var b strings.Builder
	for i, o := range op.ops {
		if i > 0 {
			b.WriteString(", ")
		}
		switch o.kind {
		case opRetain:
			fmt.Fprintf(&b, "retain %d", o.n)
		case opDelete:
			fmt.Fprintf(&b, "delete %d", o.n)
		case opInsert:
			fmt.Fprintf(&b, "insert %q", o.text)
		}
	}
	return b.String()
}

// Apply is a convenience wrapper around change.ChangeSet.Apply for
// callers that built their edit through an Operation chain.
func Apply(cs change.ChangeSet, doc text.Text) (text.Text, error) {
	return cs.Apply(doc)
}

// Compose is a convenience wrapper around change.ChangeSet.Compose.
func Compose(a, b change.ChangeSet) (change.ChangeSet, error) {
	return a.Compose(b)
}

// Transform rebases a against b and b against a, both assumed to start
// from the same document, the classic ot.js Transform(A, B) signature.
func Transform(a, b change.ChangeSet) (aPrime, bPrime change.ChangeSet, err error) {
	aPrime, err = a.Map(b.Desc(), true)
	if err != nil {
		return change.ChangeSet{}, change.ChangeSet{}, err
	}
	bPrime, err = b.Map(a.Desc(), false)
	if err != nil {
		return change.ChangeSet{}, change.ChangeSet{}, err
	}
	return aPrime, bPrime, nil
}
