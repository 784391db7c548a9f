package change

// transformLowOps is the joint operational-transform step transform.go
// implements for plain-text operations: given two changes a and b that
// both start from the same document, it produces (a', b') such that
// applying a then b' reaches the same document as applying b then a'.
//
// Ties between two inserts at the same position always resolve in favor
// of a, mirroring transform.go's unconditional preference for the first
// operation's insert; Map (in changeset.go) gets the other ordering by
// swapping which side it calls a.
func transformLowOps(a, b []lowOp) (ap, bp []lowOp, err error) {
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
		case curA != nil && curA.kind == opInsert:
			ap = append(ap, *curA)
			bp = append(bp, retainOp(curA.n))
			advanceA()

		case curB != nil && curB.kind == opInsert:
			ap = append(ap, retainOp(curB.n))
			bp = append(bp, *curB)
			advanceB()

		default:
			if curA == nil || curB == nil {
				return nil, nil, ErrLengthMismatch
			}
			m := curA.n
			if curB.n < m {
				m = curB.n
			}
			switch {
			case curA.kind == opDelete && curB.kind == opDelete:
				// Both sides already removed this span; neither op needs
				// to mention it again.
			case curA.kind == opDelete && curB.kind == opRetain:
				ap = append(ap, deleteOp(m))
			case curA.kind == opRetain && curB.kind == opDelete:
				bp = append(bp, deleteOp(m))
			default: // retain/retain
				ap = append(ap, retainOp(m))
				bp = append(bp, retainOp(m))
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
	return ap, bp, nil
}
