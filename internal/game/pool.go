package game

// Pool is a reusable store of *T records. A record is either free (held in
// the free list) or active (handed out by Acquire), never both. Acquire grows
// the backing store when the free list is empty.
type Pool[T any] struct {
	newFn  func() *T
	free   []*T
	active []*T
	index  map[*T]int // position of each active record in active
}

// NewPool creates a pool pre-warmed with size records built by newFn.
func NewPool[T any](size int, newFn func() *T) *Pool[T] {
	p := &Pool[T]{
		newFn:  newFn,
		free:   make([]*T, 0, size),
		active: make([]*T, 0, size),
		index:  make(map[*T]int, size),
	}
	for i := 0; i < size; i++ {
		p.free = append(p.free, newFn())
	}
	return p
}

// Acquire returns a free record, allocating one if none is left.
func (p *Pool[T]) Acquire() *T {
	var obj *T
	if n := len(p.free); n > 0 {
		obj = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		obj = p.newFn()
	}
	p.index[obj] = len(p.active)
	p.active = append(p.active, obj)
	return obj
}

// Release returns obj to the free list. Releasing a record that is not
// active is a no-op.
func (p *Pool[T]) Release(obj *T) {
	i, ok := p.index[obj]
	if !ok {
		return
	}
	last := len(p.active) - 1
	if i != last {
		moved := p.active[last]
		p.active[i] = moved
		p.index[moved] = i
	}
	p.active[last] = nil
	p.active = p.active[:last]
	delete(p.index, obj)
	p.free = append(p.free, obj)
}

// Each calls fn for every active record. fn may release the record it is
// given; other records must not be released during iteration.
func (p *Pool[T]) Each(fn func(*T)) {
	// Walk backwards so a swap-remove of the current record never skips one.
	for i := len(p.active) - 1; i >= 0; i-- {
		if i < len(p.active) {
			fn(p.active[i])
		}
	}
}

// ReleaseAll returns every active record to the free list.
func (p *Pool[T]) ReleaseAll() {
	for _, obj := range p.active {
		delete(p.index, obj)
		p.free = append(p.free, obj)
	}
	clear(p.active)
	p.active = p.active[:0]
}

// ActiveCount is the number of records currently handed out.
func (p *Pool[T]) ActiveCount() int { return len(p.active) }

// FreeCount is the number of records waiting in the free list.
func (p *Pool[T]) FreeCount() int { return len(p.free) }

// PoolStats is a point-in-time view of a pool.
type PoolStats struct {
	Active int `json:"active"`
	Free   int `json:"free"`
	Total  int `json:"total"`
}

func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{Active: len(p.active), Free: len(p.free), Total: len(p.active) + len(p.free)}
}
