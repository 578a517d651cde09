package identity

import "sync"

// MemoryBackend keeps identity state in memory. Used in tests and by the
// gateway when the sid cookie itself is the durable identity.
type MemoryBackend struct {
	mu    sync.Mutex
	state State
}

// NewMemoryBackend builds a memory backend seeded with the given state.
func NewMemoryBackend(seed State) *MemoryBackend {
	return &MemoryBackend{state: seed}
}

func (b *MemoryBackend) Load() (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state, nil
}

func (b *MemoryBackend) Save(state State) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state
	return nil
}
