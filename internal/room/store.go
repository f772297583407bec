package room

// Store is the in-memory room registry. It is constructed once at startup
// and injected into the hub, which is the only goroutine touching it.
type Store struct {
	rooms            map[string]*Room
	defaultCountdown int
}

// NewStore returns an empty store; rooms it creates start with the given
// per-turn countdown in seconds.
func NewStore(defaultCountdownSec int) *Store {
	return &Store{
		rooms:            make(map[string]*Room),
		defaultCountdown: defaultCountdownSec,
	}
}

// Create initializes a room under id with hostID as host. If the id is
// already taken the existing room is returned untouched.
func (s *Store) Create(id, hostID string) *Room {
	if r, ok := s.rooms[id]; ok {
		return r
	}
	r := New(id, hostID, s.defaultCountdown)
	s.rooms[id] = r
	return r
}

// Get returns the live room record, or nil when absent.
func (s *Store) Get(id string) *Room {
	return s.rooms[id]
}

// Delete cancels any pending timer and removes the room. Idempotent.
func (s *Store) Delete(id string) {
	if r, ok := s.rooms[id]; ok {
		r.CancelTimer()
		delete(s.rooms, id)
	}
}

// Clear tears down every room. Used on shutdown.
func (s *Store) Clear() {
	for id := range s.rooms {
		s.Delete(id)
	}
}

// Snapshot returns the client-safe projection of the room, or nil when
// absent. The projection deep-copies maps and slices so it can be marshaled
// off the hub goroutine while the live record keeps mutating.
func (s *Store) Snapshot(id string) *Snapshot {
	r := s.rooms[id]
	if r == nil {
		return nil
	}
	return newSnapshot(r)
}
