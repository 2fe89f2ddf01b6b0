package save

import "sync"

// MemoryStore keeps the save in memory, still through the encode/decode
// path so checksum behavior matches the durable stores.
type MemoryStore struct {
	mu  sync.Mutex
	raw []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.raw) == 0 {
		return NewData(), nil
	}
	return Decode(s.raw), nil
}

func (s *MemoryStore) Save(d *Data) error {
	raw, err := Encode(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.raw = nil
	s.mu.Unlock()
	return nil
}

// SetRaw overwrites the stored bytes directly. Test hook for corruption and
// tamper scenarios.
func (s *MemoryStore) SetRaw(raw []byte) {
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
}

// Raw returns the stored bytes.
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	return out
}
