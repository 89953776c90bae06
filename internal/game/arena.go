package game

// EntityKind tags the arena an InstanceID belongs to.
type EntityKind uint32

const (
	KindPlayer EntityKind = iota + 1
	KindTile
	KindDecoration
	KindObstacle
	KindParticle
)

// InstanceID is a stable handle for a renderable: kind in the high 32 bits, slot in the low 32.
type InstanceID uint64

func MakeInstanceID(kind EntityKind, slot uint32) InstanceID {
	return InstanceID(uint64(kind)<<32 | uint64(slot))
}

func (id InstanceID) Kind() EntityKind { return EntityKind(id >> 32) }
func (id InstanceID) Slot() uint32     { return uint32(id) }

// Arena stores entities in reusable slots so recycled instances keep their id
// and are reset in place instead of being copied.
type Arena[T any] struct {
	kind  EntityKind
	items []T
	live  []bool
	free  []uint32
	count int
}

func NewArena[T any](kind EntityKind, capacity int) *Arena[T] {
	return &Arena[T]{
		kind:  kind,
		items: make([]T, 0, capacity),
		live:  make([]bool, 0, capacity),
	}
}

// Alloc returns a zeroed slot.
func (a *Arena[T]) Alloc() (InstanceID, *T) {
	var zero T
	var slot uint32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
		a.items[slot] = zero
		a.live[slot] = true
	} else {
		slot = uint32(len(a.items))
		a.items = append(a.items, zero)
		a.live = append(a.live, true)
	}
	a.count++
	return MakeInstanceID(a.kind, slot), &a.items[slot]
}

// Get returns the live entity for id, or nil.
func (a *Arena[T]) Get(id InstanceID) *T {
	if id.Kind() != a.kind {
		return nil
	}
	slot := id.Slot()
	if int(slot) >= len(a.items) || !a.live[slot] {
		return nil
	}
	return &a.items[slot]
}

// Release frees id's slot. Releasing a dead id is a no-op.
func (a *Arena[T]) Release(id InstanceID) bool {
	if a.Get(id) == nil {
		return false
	}
	slot := id.Slot()
	var zero T
	a.items[slot] = zero
	a.live[slot] = false
	a.free = append(a.free, slot)
	a.count--
	return true
}

// Each visits live entities in slot order. fn must not Alloc.
func (a *Arena[T]) Each(fn func(id InstanceID, v *T)) {
	for i := range a.items {
		if a.live[i] {
			fn(MakeInstanceID(a.kind, uint32(i)), &a.items[i])
		}
	}
}

func (a *Arena[T]) Len() int { return a.count }

// Reset drops every entity but keeps the backing storage.
func (a *Arena[T]) Reset() {
	clear(a.items)
	a.items = a.items[:0]
	a.live = a.live[:0]
	a.free = a.free[:0]
	a.count = 0
}
