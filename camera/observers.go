package camera

import "slices"

// observers is an ordered set of callbacks with per-registration removal.
type observers[T any] struct {
	next int
	fns  map[int]func(T)
	ids  []int
}

func (o *observers[T]) add(fn func(T)) func() {
	if o.fns == nil {
		o.fns = make(map[int]func(T))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	o.ids = append(o.ids, id)
	return func() {
		if _, ok := o.fns[id]; !ok {
			return
		}
		delete(o.fns, id)
		for i, v := range o.ids {
			if v == id {
				o.ids = append(o.ids[:i], o.ids[i+1:]...)
				break
			}
		}
	}
}

// emit calls every observer registered when it starts. Callbacks may
// cancel themselves or others; cancelled ones are skipped.
func (o *observers[T]) emit(v T) {
	for _, id := range slices.Clone(o.ids) {
		if fn, ok := o.fns[id]; ok {
			fn(v)
		}
	}
}
