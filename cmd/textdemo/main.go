// Command textdemo is a small runnable illustration of the core package
// trio — text, change, rangeset — standing in for the teacher's own
// cmd/main.go demo server, scaled down to this module's scope: no
// transport or session layer, just the document algebra itself.
package main

import (
	"fmt"
	"log"

	"github.com/texere-rope/corestate/pkg/change"
	"github.com/texere-rope/corestate/pkg/rangeset"
	"github.com/texere-rope/corestate/pkg/text"
)

type cursorValue struct {
	rangeset.BaseRangeValue
	label string
}

func (c cursorValue) Point() bool { return true }
func (c cursorValue) Eq(other rangeset.RangeValue) bool {
	o, ok := other.(cursorValue)
	return ok && o.label == c.label
}

func main() {
	doc, err := text.Of([]string{"hello world"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("document: %q (length %d)\n", doc.String(), doc.Length())

	edit, err := change.Of(change.ReplaceSpec(6, 11, mustText("editor")), doc.Length())
	if err != nil {
		log.Fatal(err)
	}
	next, err := edit.Apply(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("after edit: %q\n", next.String())

	builder := rangeset.NewBuilder[cursorValue]()
	if err := builder.Add(8, 8, cursorValue{label: "alice"}); err != nil {
		log.Fatal(err)
	}
	cursors := builder.Finish()

	mapped, err := rangeset.Map(cursors, edit.Desc())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("cursor count before edit: %d, after: %d\n", cursors.Size(), mapped.Size())

	edit2, err := change.Of(change.ReplaceSpec(0, 5, mustText("HELLO")), doc.Length())
	if err != nil {
		log.Fatal(err)
	}
	editPrime, err := edit.Map(edit2.Desc(), true)
	if err != nil {
		log.Fatal(err)
	}
	edit2Prime, err := edit2.Map(edit.Desc(), false)
	if err != nil {
		log.Fatal(err)
	}
	viaEdit, _ := edit.Compose(edit2Prime)
	viaEdit2, _ := edit2.Compose(editPrime)
	resultA, _ := viaEdit.Apply(doc)
	resultB, _ := viaEdit2.Apply(doc)
	fmt.Printf("joint transform converges: %v (%q)\n", resultA.Eq(resultB), resultA.String())
}

func mustText(s string) text.Text {
	t, err := text.Of([]string{s})
	if err != nil {
		panic(err)
	}
	return t
}
