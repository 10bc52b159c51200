package async

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRingBasic(t *testing.T) {
	q, err := NewRing[int](8)
	if err != nil {
		t.Fatalf("new ring failed: %v", err)
	}

	for i := 0; i < 8; i++ {
		if ok := q.Put(i); !ok {
			t.Fatalf("put failed at %d", i)
		}
	}
	if ok := q.Put(99); ok {
		t.Fatalf("put should fail when ring is full")
	}

	for i := 0; i < 8; i++ {
		got, ok := q.Get()
		if !ok {
			t.Fatalf("get failed at %d", i)
		}
		if got != i {
			t.Fatalf("unexpected value: got=%d want=%d", got, i)
		}
	}
	if _, ok := q.Get(); ok {
		t.Fatalf("get should fail when ring is empty")
	}
}

func TestRingRejectsBadCapacity(t *testing.T) {
	for _, capacity := range []uint64{0, 1, 3, 12, 1000} {
		if _, err := NewRing[int](capacity); err == nil {
			t.Fatalf("capacity %d should be rejected", capacity)
		}
	}
}

func TestRingConcurrent(t *testing.T) {
	const (
		producers   = 4
		consumers   = 4
		perProducer = 5000
		total       = producers * perProducer
	)

	q, err := NewRing[int](1024)
	if err != nil {
		t.Fatalf("new ring failed: %v", err)
	}

	var produced atomic.Int64
	var consumed atomic.Int64
	var producerWG sync.WaitGroup
	var consumerWG sync.WaitGroup

	for p := 0; p < producers; p++ {
		producerWG.Add(1)
		go func(base int) {
			defer producerWG.Done()
			for i := 0; i < perProducer; i++ {
				v := base*perProducer + i
				for !q.Put(v) {
				}
				produced.Add(1)
			}
		}(p)
	}

	for c := 0; c < consumers; c++ {
		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			for {
				if consumed.Load() >= total && produced.Load() >= total {
					return
				}
				if _, ok := q.Get(); ok {
					consumed.Add(1)
				}
			}
		}()
	}

	producerWG.Wait()

	deadline := time.Now().Add(5 * time.Second)
	for consumed.Load() < total && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if consumed.Load() != total {
		t.Fatalf("timed out waiting for consumers: produced=%d consumed=%d", produced.Load(), consumed.Load())
	}
	consumerWG.Wait()
}
