package rc

import (
	"sync"
	"sync/atomic"

	"github.com/karol11/fast-rc/internal/async"
)

type Config struct {
	// BatchCapacity is the slot count of one delta batch.
	BatchCapacity int
	// PoolSize bounds the lock-free free-list of recycled batches. Rounded
	// up to a power of two.
	PoolSize int
}

// Runtime owns all state of one deferred-counting domain: the submission
// queue, the nomination queue, the batch pool and the generation counter.
// One Start invocation at a time; everything is scoped here so independent
// runtimes do not share state.
type Runtime struct {
	mu   sync.Mutex
	cond *sync.Cond

	// subq is the submission FIFO. A nil entry is the shutdown sentinel.
	subq []*batch

	// generator, nomq, toDelete and taggedGen are owned by the reclaimer;
	// generator and nomq registration are additionally serialized by mu
	// because registration happens inside the dequeue critical section.
	generator uint64
	nomq      nomQueue
	toDelete  []Object
	taggedGen uint64

	pool     *async.Ring[*batch]
	batchCap int

	stats   metrics
	running atomic.Bool
}

func New(cfg Config) *Runtime {
	batchCap := cfg.BatchCapacity
	if batchCap == 0 {
		batchCap = DefaultBatchCapacity
	}
	if batchCap < minBatchCapacity {
		batchCap = minBatchCapacity
	}
	poolSize := uint64(minPoolSize)
	want := cfg.PoolSize
	if want == 0 {
		want = defaultPoolSize
	}
	for poolSize < uint64(want) {
		poolSize *= 2
	}
	pool, err := async.NewRing[*batch](poolSize)
	if err != nil {
		panic("rc: batch pool sizing broke the power-of-two invariant")
	}

	rt := &Runtime{
		nomq:     newNomQueue(minNomRingSize),
		pool:     pool,
		batchCap: batchCap,
	}
	rt.cond = sync.NewCond(&rt.mu)
	return rt
}

// Start runs rootMutator inside a thread guard on its own goroutine and runs
// the reclaimer loop on the calling goroutine. It returns once the mutator
// has returned and every queue has drained; at that point every acyclic
// object created under this runtime has been finalized.
func Start(rootMutator func(*Station)) {
	New(Config{}).Start(rootMutator)
}

func (rt *Runtime) Start(rootMutator func(*Station)) {
	if !rt.running.CompareAndSwap(false, true) {
		panic("rc: Start is not reentrant")
	}
	defer rt.running.Store(false)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		st := rt.Enter()
		rootMutator(st)
		st.Leave()

		rt.mu.Lock()
		rt.subq = append(rt.subq, nil)
		rt.mu.Unlock()
		rt.cond.Signal()
	}()

	rt.reclaim(&wg)
}

// Stats returns a snapshot of the runtime counters.
func (rt *Runtime) Stats() Stats {
	return rt.stats.snapshot()
}

// claimBatch submits prev (when non-nil) and hands out a fresh batch. The
// fresh batch is also pushed onto the submission queue so the reclaimer
// assigns its start generation and INCOMPLETE word while the mutator is still
// filling it; that registration is what blocks deletions behind every open
// batch. The reclaimer only touches gen/genSeq of an open batch, so the two
// sides write disjoint fields.
func (rt *Runtime) claimBatch(prev *batch) *batch {
	b, ok := rt.pool.Get()
	if ok {
		rt.stats.poolHits.Add(1)
	} else {
		b = newBatch(rt.batchCap)
		rt.stats.poolAllocs.Add(1)
	}

	rt.mu.Lock()
	if prev != nil {
		rt.subq = append(rt.subq, prev)
		rt.stats.submitted.Add(1)
	}
	rt.subq = append(rt.subq, b)
	rt.mu.Unlock()
	rt.cond.Signal()
	return b
}
