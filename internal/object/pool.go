package object

// Pool is a growable collection of entities of one kind. Membership only
// changes through Add, Retain and Clear; callers must not add to a pool
// while ranging over a slice returned by Items.
type Pool[T any] struct {
	items []T
}

// NewPool creates a pool with the given initial capacity.
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{items: make([]T, 0, capacity)}
}

// Add appends an entity.
func (p *Pool[T]) Add(v T) {
	p.items = append(p.items, v)
}

// Len returns the number of live entities.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// Items returns the live entities. The slice is only valid until the next
// membership change.
func (p *Pool[T]) Items() []T {
	return p.items
}

// At returns a pointer to the i-th entity.
func (p *Pool[T]) At(i int) *T {
	return &p.items[i]
}

// Each calls fn with a pointer to every entity in insertion order.
func (p *Pool[T]) Each(fn func(*T)) {
	for i := range p.items {
		fn(&p.items[i])
	}
}

// Retain keeps the entities for which keep returns true, preserving order,
// and returns how many were removed. keep may mutate the entity it is given
// but must not touch this pool's membership.
func (p *Pool[T]) Retain(keep func(*T) bool) int {
	kept := p.items[:0] // reuse backing array
	for i := range p.items {
		if keep(&p.items[i]) {
			kept = append(kept, p.items[i])
		}
	}
	removed := len(p.items) - len(kept)
	clear(p.items[len(kept):]) // drop references held by removed entries
	p.items = kept
	return removed
}

// Clear removes every entity, keeping the allocated capacity.
func (p *Pool[T]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}

// AppendTo copies the live entities onto dst and returns the result.
func (p *Pool[T]) AppendTo(dst []T) []T {
	return append(dst, p.items...)
}
