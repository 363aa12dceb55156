package strel

// LocalMaxBuffer maintains the running maximum of the last capacity pushed
// values in amortized O(1) time per push. It holds a monotonic deque of
// (value, push index) candidates in a ring: appending evicts trailing
// candidates no greater than the new value, so the front is always the
// window maximum, and the front falls off once it ages out of the window.
//
// One buffer is scoped to a single scan-line pass and discarded afterwards;
// its state never grows beyond capacity regardless of the pushed values.
type LocalMaxBuffer struct {
	capacity int
	tick     int // number of samples pushed so far, including fill seeding

	// candidate ring, front at head, count live entries
	values []float64
	index  []int // push index of each candidate, strictly increasing
	head   int
	count  int
}

// NewLocalMaxBuffer creates a buffer over a sliding window of the given
// capacity. Capacity must be at least 1.
func NewLocalMaxBuffer(capacity int) *LocalMaxBuffer {
	return &LocalMaxBuffer{
		capacity: capacity,
		values:   make([]float64, capacity),
		index:    make([]int, capacity),
	}
}

// Fill resets the window so every slot holds value, and resets the running
// maximum accordingly. Used to seed border padding before a scan line.
func (b *LocalMaxBuffer) Fill(value float64) {
	// A single candidate stamped with the index of the newest seeded slot
	// stands in for all capacity copies.
	b.head = 0
	b.count = 1
	b.values[0] = value
	b.index[0] = b.tick + b.capacity - 1
	b.tick += b.capacity
}

// Add pushes a value into the window, evicting the oldest slot.
func (b *LocalMaxBuffer) Add(value float64) {
	// Expire the front candidate once it leaves the window that will
	// contain the new value.
	for b.count > 0 && b.index[b.head] <= b.tick-b.capacity {
		b.head = (b.head + 1) % b.capacity
		b.count--
	}
	// Evict trailing candidates dominated by the new value. This keeps the
	// deque strictly decreasing and bounds its size on repeated values.
	for b.count > 0 && b.values[(b.head+b.count-1)%b.capacity] <= value {
		b.count--
	}
	slot := (b.head + b.count) % b.capacity
	b.values[slot] = value
	b.index[slot] = b.tick
	b.count++
	b.tick++
}

// Max returns the maximum of the last capacity pushed values.
func (b *LocalMaxBuffer) Max() float64 {
	return b.values[b.head]
}

// LocalMinBuffer is the minimum-tracking counterpart of LocalMaxBuffer,
// with the comparison direction swapped throughout.
type LocalMinBuffer struct {
	capacity int
	tick     int

	values []float64
	index  []int
	head   int
	count  int
}

// NewLocalMinBuffer creates a buffer over a sliding window of the given
// capacity. Capacity must be at least 1.
func NewLocalMinBuffer(capacity int) *LocalMinBuffer {
	return &LocalMinBuffer{
		capacity: capacity,
		values:   make([]float64, capacity),
		index:    make([]int, capacity),
	}
}

// Fill resets the window so every slot holds value, and resets the running
// minimum accordingly.
func (b *LocalMinBuffer) Fill(value float64) {
	b.head = 0
	b.count = 1
	b.values[0] = value
	b.index[0] = b.tick + b.capacity - 1
	b.tick += b.capacity
}

// Add pushes a value into the window, evicting the oldest slot.
func (b *LocalMinBuffer) Add(value float64) {
	for b.count > 0 && b.index[b.head] <= b.tick-b.capacity {
		b.head = (b.head + 1) % b.capacity
		b.count--
	}
	for b.count > 0 && b.values[(b.head+b.count-1)%b.capacity] >= value {
		b.count--
	}
	slot := (b.head + b.count) % b.capacity
	b.values[slot] = value
	b.index[slot] = b.tick
	b.count++
	b.tick++
}

// Min returns the minimum of the last capacity pushed values.
func (b *LocalMinBuffer) Min() float64 {
	return b.values[b.head]
}
