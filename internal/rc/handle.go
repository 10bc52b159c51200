package rc

// Local is an owning stack-scope handle. It retains on construction and on
// Set, and releases through the owning station's batch on Drop. The zero
// value is a null handle; every operation is a no-op on null targets.
type Local[T Ref] struct {
	st  *Station
	obj T
}

func NewLocal[T Ref](st *Station, obj T) Local[T] {
	var zero T
	if obj != zero {
		st.Retain(obj)
	}
	return Local[T]{st: st, obj: obj}
}

func (l *Local[T]) Get() T {
	return l.obj
}

// Set retains the new target before releasing the prior one, so
// self-assignment cannot transiently drop the count to zero.
func (l *Local[T]) Set(obj T) {
	var zero T
	if obj != zero {
		l.st.Retain(obj)
	}
	if l.obj != zero {
		l.st.Release(l.obj)
	}
	l.obj = obj
}

func (l *Local[T]) Drop() {
	var zero T
	if l.obj != zero {
		l.st.Release(l.obj)
		l.obj = zero
	}
}

// Field is the handle flavor embedded inside managed objects. Mutator-side
// writes go through Set and use the batch paths; the drop side routes through
// the reclaimer's Finalizer because field handles are only dropped from the
// enclosing object's finalizer.
type Field[T Ref] struct {
	obj T
}

func (f *Field[T]) Get() T {
	return f.obj
}

func (f *Field[T]) Set(st *Station, obj T) {
	var zero T
	if obj != zero {
		st.Retain(obj)
	}
	if f.obj != zero {
		st.Release(f.obj)
	}
	f.obj = obj
}

// Drop releases the target through the single-threaded reclaimer path. Only
// legal from within Finalize.
func (f *Field[T]) Drop(fin *Finalizer) {
	var zero T
	if f.obj != zero {
		fin.Release(f.obj)
		f.obj = zero
	}
}
