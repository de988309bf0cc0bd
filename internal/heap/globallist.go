package heap

// globalList is the address-ordered doubly-linked tiling of every block the
// allocator knows about (C3) — the source of truth for adjacency and
// coalescing. Invariant: for adjacent nodes A -> B, addr(A)+A.totalSize ==
// addr(B); the list is dense and covers [base, break) exactly. Adjacency in
// this list is the sole adjacency oracle — no address arithmetic is ever
// used to infer it.
type globalList struct {
	head, tail *block
}

// insertTail appends a newly grown block after the current last node. Used
// only by the grow path.
func (g *globalList) insertTail(b *block) {
	b.gprev = g.tail
	b.gnext = nil

	if g.tail != nil {
		g.tail.gnext = b
	} else {
		g.head = b
	}

	g.tail = b
}

// spliceInAfter inserts newBlock between left and left.gnext. Used only by
// the splitter.
func (g *globalList) spliceInAfter(left, newBlock *block) {
	newBlock.gprev = left
	newBlock.gnext = left.gnext

	if left.gnext != nil {
		left.gnext.gprev = newBlock
	} else {
		g.tail = newBlock
	}

	left.gnext = newBlock
}

// unlink removes b from the list, re-linking its neighbours. Used only by
// the coalescer after merging sizes into a neighbour.
func (g *globalList) unlink(b *block) {
	if b.gprev != nil {
		b.gprev.gnext = b.gnext
	} else {
		g.head = b.gnext
	}

	if b.gnext != nil {
		b.gnext.gprev = b.gprev
	} else {
		g.tail = b.gprev
	}

	b.gprev, b.gnext = nil, nil
}
