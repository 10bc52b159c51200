package rc

// Station은 mutator goroutine 전용이며 동기화 없이 접근한다.
// It is the thread-guard scope of its goroutine: Enter claims an open batch,
// Leave submits it. Every handle operation of that goroutine must go through
// the station between Enter and Leave; nesting is not supported.
type Station struct {
	rt   *Runtime
	open *batch
}

// Enter opens a thread guard scope for the calling goroutine.
func (rt *Runtime) Enter() *Station {
	return &Station{rt: rt, open: rt.claimBatch(nil)}
}

func (st *Station) Runtime() *Runtime {
	return st.rt
}

// Retain appends an increment for o to the open batch. Nil is a no-op. The
// only suspension point is the brief rotation of a full batch.
func (st *Station) Retain(o Object) {
	if o == nil {
		return
	}
	if st.open == nil {
		panic("rc: handle used outside a thread guard scope")
	}
	if st.open.pushInc(o) {
		st.rotate()
	}
}

// Release appends a decrement for o to the open batch. Nil is a no-op.
func (st *Station) Release(o Object) {
	if o == nil {
		return
	}
	if st.open == nil {
		panic("rc: handle used outside a thread guard scope")
	}
	if st.open.pushDec(o) {
		st.rotate()
	}
}

// Flush submits the open batch early and claims a fresh one.
func (st *Station) Flush() {
	if st.open == nil {
		panic("rc: handle used outside a thread guard scope")
	}
	st.rotate()
}

func (st *Station) rotate() {
	st.open = st.rt.claimBatch(st.open)
}

// Leave closes the scope: the open batch is submitted even when partially
// filled, so its INCOMPLETE word stops blocking the nomination drain.
func (st *Station) Leave() {
	if st.open == nil {
		return
	}
	rt := st.rt
	rt.mu.Lock()
	rt.subq = append(rt.subq, st.open)
	rt.stats.submitted.Add(1)
	rt.mu.Unlock()
	rt.cond.Signal()
	st.open = nil
}
