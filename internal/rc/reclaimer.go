package rc

import "sync"

// reclaim is the single consumer loop. It waits for submissions, registers
// fresh batches, applies full ones in FIFO order and finalizes objects whose
// count resolved to zero at a stable generation. Caller goroutine becomes the
// reclaimer until the shutdown sentinel has been honored.
func (rt *Runtime) reclaim(wg *sync.WaitGroup) {
	rt.mu.Lock()
	for {
		for len(rt.subq) == 0 {
			rt.cond.Wait()
		}
		if rt.processQueuedLocked() {
			break
		}
	}
	wg.Wait()
	if len(rt.subq) != 0 || !rt.nomq.empty() || len(rt.toDelete) != 0 {
		panic("rc: queues not empty at shutdown")
	}
	rt.mu.Unlock()
}

// processQueuedLocked drains the submission queue in order; after each apply
// it runs deletion passes until nothing more can be freed. Reports whether the
// shutdown sentinel was seen. The mutex is released around apply and around
// every deletion pass.
func (rt *Runtime) processQueuedLocked() (shutdown bool) {
	for len(rt.subq) > 0 {
		t := rt.subq[0]
		rt.subq = rt.subq[1:]
		if t == nil {
			shutdown = true
			break
		}
		if !t.registered() {
			rt.registerLocked(t)
			continue
		}
		rt.mu.Unlock()
		rt.apply(t)
		for len(rt.toDelete) > 0 {
			rt.deletePass()
		}
		rt.mu.Lock()
		rt.recycle(t)
	}
	return shutdown
}

// registerLocked assigns the batch its start generation and parks an
// INCOMPLETE word at the tail of the nomination queue. Until the batch comes
// back full (or at Leave) and gets applied, that word blocks every deletion
// decision made by later generations.
func (rt *Runtime) registerLocked(t *batch) {
	rt.generator += genStep
	t.gen = rt.generator
	t.genSeq = rt.nomq.push(nomWord{bits: t.gen | incompleteBits})
	rt.stats.registered.Add(1)
}

func (rt *Runtime) recycle(t *batch) {
	t.reset()
	// A batch that does not fit the pool is simply dropped.
	rt.pool.Put(t)
}

// apply folds one batch into the counter words: increments first, then
// decrements. A nominated word is overwritten with the smallest nonzero
// count of the matching sign (resurrection); a plain word that lands on
// exactly zero nominates the object under this batch's generation.
func (rt *Runtime) apply(t *batch) {
	rt.taggedGen = 0
	for i := 0; i < t.inc; i++ {
		r := t.slots[i].rcResource()
		if isNominated(r.word) {
			r.word = countUnit
			rt.stats.resurrected.Add(1)
		} else if r.word += countUnit; r.word == 0 {
			rt.nominate(t.gen, t.slots[i])
		}
		t.slots[i] = nil
	}
	for i := t.dec; i < len(t.slots); i++ {
		r := t.slots[i].rcResource()
		if isNominated(r.word) {
			r.word = negCountUnit
			rt.stats.resurrected.Add(1)
		} else if r.word -= countUnit; r.word == 0 {
			rt.nominate(t.gen, t.slots[i])
		}
		t.slots[i] = nil
	}
	rt.nomq.markComplete(t.genSeq)
	rt.stats.applied.Add(1)
	rt.drainNominated()
}

// nominate writes the pending deletion tag into the object's word and files
// the object in the nomination queue. The TAG word itself is inserted lazily,
// once per batch or deletion pass.
func (rt *Runtime) nominate(gen uint64, o Object) {
	if rt.taggedGen == 0 {
		rt.taggedGen = makeTag(gen)
		rt.nomq.push(nomWord{bits: rt.taggedGen})
	}
	o.rcResource().word = rt.taggedGen
	rt.nomq.push(nomWord{obj: o})
	rt.stats.nominated.Add(1)
	rt.stats.noteNomDepth(rt.nomq.len())
}

// drainNominated walks the nomination queue head. It stops at the first
// INCOMPLETE word: batches registered earlier are still in flight and may
// resurrect anything nominated after them. An object entry is honored only
// when its word still equals the latched TAG; any other value means the
// object was touched since nomination and a later entry (if any) decides.
func (rt *Runtime) drainNominated() {
	tag := uint64(0)
	for !rt.nomq.empty() {
		w := rt.nomq.front()
		if w.obj != nil {
			r := w.obj.rcResource()
			if r.word == tag {
				rt.toDelete = append(rt.toDelete, w.obj)
				r.word = 0
			} else if isNominated(r.word) && genBefore(genOf(r.word), genOf(tag)) {
				// Entries are filed in generation order, so a live
				// nomination can only carry a later tag.
				panic("rc: nomination tag regressed")
			}
		} else {
			switch w.bits & wordTagMask {
			case incompleteBits:
				return
			case completeBits:
				// Batch applied; nothing to decide.
			case tagBits:
				tag = w.bits
			}
		}
		rt.nomq.pop()
	}
}

// deletePass finalizes everything on the to-delete list, then reruns the
// drain: finalizers release embedded fields through the single-threaded path
// and may nominate transitively.
func (rt *Runtime) deletePass() {
	rt.taggedGen = 0
	dead := rt.toDelete
	fin := Finalizer{rt: rt}
	for i, o := range dead {
		o.Finalize(&fin)
		dead[i] = nil
	}
	rt.stats.deleted.Add(uint64(len(dead)))
	rt.toDelete = dead[:0]
	rt.drainNominated()
}

// Finalizer is the reclaimer-side release context handed to Finalize. It
// exists because destructor-time field releases must not append to a mutator
// batch: the mutator may be gone and the reclaimer is the one running.
type Finalizer struct {
	rt *Runtime
}

// Release applies a decrement directly to the child's word, nominating it
// under a fresh generation when the count reaches zero. Valid only on the
// reclaimer, from within a finalizer.
func (f *Finalizer) Release(o Object) {
	if o == nil {
		return
	}
	rt := f.rt
	r := o.rcResource()
	if isNominated(r.word) {
		r.word = negCountUnit
		rt.stats.resurrected.Add(1)
		return
	}
	if r.word -= countUnit; r.word == 0 {
		if rt.taggedGen == 0 {
			rt.generator += genStep
			rt.taggedGen = makeTag(rt.generator)
			rt.nomq.push(nomWord{bits: rt.taggedGen})
		}
		r.word = rt.taggedGen
		rt.nomq.push(nomWord{obj: o})
		rt.stats.nominated.Add(1)
		rt.stats.noteNomDepth(rt.nomq.len())
	}
}
