package rc

// batch is the dual-ended delta buffer owned by one mutator while open.
// Retains fill slots from the low end, releases from the high end; the batch
// is full when the cursors meet. gen and genSeq are written by the reclaimer
// at registration and never touched by the owning mutator.
type batch struct {
	gen    uint64
	genSeq uint64

	slots []Object
	inc   int
	dec   int
}

func newBatch(capacity int) *batch {
	if capacity < minBatchCapacity {
		capacity = minBatchCapacity
	}
	b := &batch{slots: make([]Object, capacity)}
	b.reset()
	return b
}

func (b *batch) reset() {
	b.gen = 0
	b.genSeq = noSeq
	b.inc = 0
	b.dec = len(b.slots)
}

func (b *batch) registered() bool {
	return b.genSeq != noSeq
}

func (b *batch) full() bool {
	return b.inc == b.dec
}

// pushInc records a retain and reports whether the batch filled up.
func (b *batch) pushInc(o Object) bool {
	b.slots[b.inc] = o
	b.inc++
	return b.inc == b.dec
}

// pushDec records a release and reports whether the batch filled up.
func (b *batch) pushDec(o Object) bool {
	b.dec--
	b.slots[b.dec] = o
	return b.inc == b.dec
}
