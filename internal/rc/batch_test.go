package rc

import "testing"

func TestBatchCursors(t *testing.T) {
	b := newBatch(4)
	if b.full() {
		t.Fatalf("fresh batch reads as full")
	}

	a := &treeNode{}
	if b.pushInc(a) {
		t.Fatalf("batch full after one increment")
	}
	if b.pushDec(a) {
		t.Fatalf("batch full after one decrement")
	}
	if b.pushInc(a) {
		t.Fatalf("batch full after three entries")
	}
	if !b.pushDec(a) {
		t.Fatalf("batch not full when cursors meet")
	}

	if b.inc != 2 || b.dec != 2 {
		t.Fatalf("unexpected cursors: inc=%d dec=%d", b.inc, b.dec)
	}
	if b.slots[0] != Object(a) || b.slots[3] != Object(a) {
		t.Fatalf("entries landed on the wrong ends")
	}
}

func TestBatchReset(t *testing.T) {
	b := newBatch(4)
	b.pushInc(&treeNode{})
	b.gen = 8
	b.genSeq = 3

	b.reset()
	if b.inc != 0 || b.dec != 4 {
		t.Fatalf("cursors not re-armed: inc=%d dec=%d", b.inc, b.dec)
	}
	if b.registered() {
		t.Fatalf("reset batch still registered")
	}
}

func TestBatchMinimumCapacity(t *testing.T) {
	b := newBatch(0)
	if len(b.slots) != minBatchCapacity {
		t.Fatalf("capacity not clamped: got=%d want=%d", len(b.slots), minBatchCapacity)
	}
}
