// Package eager holds the two eager reference-counting baselines: a plain
// single-threaded counter and an atomic counter, both freeing on the zero
// crossing. They share the handle shape of the deferred core so the same
// workloads run against every strategy; only the reclamation timing differs.
package eager

import "sync/atomic"

// Object is implemented by embedding Resource or AtomicResource and, for
// objects with owned fields, overriding Finalize.
type Object interface {
	retain()
	release() bool
	Finalize()
}

// Ref constrains handle targets to concrete counted types.
type Ref interface {
	comparable
	Object
}

// Resource is the single-threaded counter header. Safe only when every
// retain and release happens on one goroutine.
type Resource struct {
	count int64
}

func (r *Resource) retain() { r.count++ }

func (r *Resource) release() bool {
	r.count--
	return r.count == 0
}

func (r *Resource) Finalize() {}

// AtomicResource is the multi-threaded counter header. Release frees exactly
// once: only the goroutine that moves the count to zero observes it.
type AtomicResource struct {
	count atomic.Int64
}

func (r *AtomicResource) retain() { r.count.Add(1) }

func (r *AtomicResource) release() bool {
	return r.count.Add(-1) == 0
}

func (r *AtomicResource) Finalize() {}

// Retain bumps the count. Nil targets are no-ops.
func Retain[T Ref](obj T) {
	var zero T
	if obj != zero {
		obj.retain()
	}
}

// Release drops the count and finalizes on zero. The finalizer releases the
// object's fields recursively.
func Release[T Ref](obj T) {
	var zero T
	if obj != zero && obj.release() {
		obj.Finalize()
	}
}

// Local is the stack-scope handle.
type Local[T Ref] struct {
	obj T
}

func NewLocal[T Ref](obj T) Local[T] {
	Retain(obj)
	return Local[T]{obj: obj}
}

func (l *Local[T]) Get() T {
	return l.obj
}

func (l *Local[T]) Set(obj T) {
	Retain(obj)
	Release(l.obj)
	l.obj = obj
}

func (l *Local[T]) Drop() {
	var zero T
	Release(l.obj)
	l.obj = zero
}

// Field is the embedded handle. The eager strategies have no reclaimer, so
// the drop side is the ordinary release path.
type Field[T Ref] struct {
	obj T
}

func (f *Field[T]) Get() T {
	return f.obj
}

func (f *Field[T]) Set(obj T) {
	Retain(obj)
	Release(f.obj)
	f.obj = obj
}

func (f *Field[T]) Drop() {
	var zero T
	Release(f.obj)
	f.obj = zero
}
