package utils

import "sync"

// -----------------------------------------------------------------------------
// EventRing is a fixed-size circular buffer of broadcast events.
// True ring buffer - no resizing of the backing array on append!
// -----------------------------------------------------------------------------

type EventRing struct {
	data     []map[string]interface{}
	capacity int
	index    int // Next write position
	size     int // Current number of elements
	mu       sync.RWMutex
}

// -----------------------------------------------------------------------------

// NewEventRing creates a new buffer with fixed capacity
func NewEventRing(capacity int) *EventRing {
	if capacity <= 0 {
		capacity = 200 // Default reasonable size
	}

	return &EventRing{
		data:     make([]map[string]interface{}, capacity),
		capacity: capacity,
		index:    0,
		size:     0,
	}
}

// -----------------------------------------------------------------------------

// Append records one event. The map is stored as-is; callers must not
// mutate it afterwards.
func (rb *EventRing) Append(event map[string]interface{}) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.data[rb.index] = event
	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns the n most recent events, oldest first.
func (rb *EventRing) GetLatest(n int) []map[string]interface{} {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.size == 0 || n <= 0 {
		return []map[string]interface{}{}
	}

	count := n
	if n > rb.size {
		count = rb.size
	}

	result := make([]map[string]interface{}, count)

	// Latest data is at index-1
	startIdx := (rb.index - count + rb.capacity) % rb.capacity

	for i := 0; i < count; i++ {
		idx := (startIdx + i) % rb.capacity
		result[i] = rb.data[idx]
	}

	return result
}

// -----------------------------------------------------------------------------

// GetAll returns all events in insertion order (oldest to newest)
func (rb *EventRing) GetAll() []map[string]interface{} {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.size == 0 {
		return []map[string]interface{}{}
	}

	result := make([]map[string]interface{}, rb.size)

	var startIdx int
	if rb.size == rb.capacity {
		// Buffer is full, oldest is at current index (wrap-around)
		startIdx = rb.index
	} else {
		startIdx = 0
	}

	for i := 0; i < rb.size; i++ {
		idx := (startIdx + i) % rb.capacity
		result[i] = rb.data[idx]
	}

	return result
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *EventRing) Size() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity (fixed)
func (rb *EventRing) Capacity() int {
	return rb.capacity
}

// -----------------------------------------------------------------------------

// IsFull returns whether buffer is full
func (rb *EventRing) IsFull() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *EventRing) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.index = 0
	rb.size = 0
}
