package change

// composeLowOps combines two op streams where b is known to apply to the
// document a produces. It follows the priority rules composition.go uses
// for the two boundary cases (a delete in a never waits on b; an insert in
// b never waits on a) and then walks the remaining retain/delete/insert
// pairs, splitting an insert's text when only part of it survives a delete
// or passes through a retain.
//
// composition.go's own version of the retain branch doesn't shrink the
// opposite side's remaining length after an insert passes through it,
// which under-counts later sections; this keeps the same rule ordering but
// tracks remaining length explicitly via mutable local copies instead of
// in-place slice edits, so that bug doesn't carry over.
func composeLowOps(a, b []lowOp) ([]lowOp, error) {
	var out []lowOp
	i, j := 0, 0

	var curA, curB *lowOp
	advanceA := func() {
		if i < len(a) {
			op := a[i]
			curA = &op
			i++
		} else {
			curA = nil
		}
	}
	advanceB := func() {
		if j < len(b) {
			op := b[j]
			curB = &op
			j++
		} else {
			curB = nil
		}
	}
	advanceA()
	advanceB()

	for curA != nil || curB != nil {
		switch {
		case curA != nil && curA.kind == opDelete:
			out = append(out, *curA)
			advanceA()

		case curB != nil && curB.kind == opInsert:
			out = append(out, *curB)
			advanceB()

		case curA != nil && curA.kind == opInsert:
			if curB == nil {
				return nil, ErrLengthMismatch
			}
			switch curB.kind {
			case opDelete:
				switch {
				case curA.n < curB.n:
					curB.n -= curA.n
					advanceA()
				case curA.n == curB.n:
					advanceA()
					advanceB()
				default:
					rem, err := curA.text.Slice(curB.n, curA.n)
					if err != nil {
						return nil, err
					}
					curA.text = rem
					curA.n -= curB.n
					advanceB()
				}
			case opRetain:
				switch {
				case curB.n > curA.n:
					out = append(out, *curA)
					curB.n -= curA.n
					advanceA()
				case curB.n == curA.n:
					out = append(out, *curA)
					advanceA()
					advanceB()
				default:
					head, err := curA.text.Slice(0, curB.n)
					if err != nil {
						return nil, err
					}
					out = append(out, insertOp(head))
					tail, err := curA.text.Slice(curB.n, curA.n)
					if err != nil {
						return nil, err
					}
					curA.text = tail
					curA.n -= curB.n
					advanceB()
				}
			}

		default:
			if curA == nil || curB == nil {
				return nil, ErrLengthMismatch
			}
			// curA is Retain here (Delete and Insert were handled above);
			// curB is Retain or Delete (Insert was handled above).
			m := curA.n
			if curB.n < m {
				m = curB.n
			}
			if curB.kind == opDelete {
				out = append(out, deleteOp(m))
			} else {
				out = append(out, retainOp(m))
			}
			curA.n -= m
			curB.n -= m
			if curA.n == 0 {
				advanceA()
			}
			if curB.n == 0 {
				advanceB()
			}
		}
	}
	return out, nil
}
