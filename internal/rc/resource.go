package rc

// Resource is the counted header embedded in every managed object. The word
// holds either a plain signed count scaled by countUnit (low bits 00) or a
// nomination tag (low bit 1); it is written only on the reclaimer goroutine,
// so no atomics are needed.
type Resource struct {
	word uint64
}

func (r *Resource) rcResource() *Resource { return r }

// Finalize is the default finalizer for objects without embedded field
// handles. Objects that own fields must override it and Drop each field.
func (r *Resource) Finalize(*Finalizer) {}

// Object is implemented by embedding Resource and, for objects with owned
// fields, overriding Finalize. A freshly constructed object has a zero word
// and must be retained immediately by its creator.
type Object interface {
	rcResource() *Resource
	Finalize(*Finalizer)
}

// Ref constrains handle targets to concrete managed types.
type Ref interface {
	comparable
	Object
}
