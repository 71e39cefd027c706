package mocks

import (
	"sync"

	"github.com/mcoot/nrowgame/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing. Queued values
// are consumed in order; an exhausted queue falls back to a fixed value.
type MockRandom struct {
	mu      sync.Mutex
	ints    []int
	strings []string
	counter int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	result := r.ints[0]
	r.ints = r.ints[1:]
	return result
}

// String returns the next queued result. Once the queue is empty it
// generates distinct values by padding a counter to the requested length.
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.strings) > 0 {
		result := r.strings[0]
		r.strings = r.strings[1:]
		return result
	}
	r.counter++
	return padCounter(r.counter, length, alphabet)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = nil
	r.strings = nil
	r.counter = 0
}

func padCounter(n, length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	result := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		result[i] = alphabet[n%len(alphabet)]
		n /= len(alphabet)
	}
	return string(result)
}
