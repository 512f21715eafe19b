// Package session holds per-session browsing state. Sessions are in-memory
// only; favorites do not survive a restart.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type state struct {
	favorites map[int]struct{}
	lastSeen  time.Time
}

// Store tracks sessions by id and expires them after an idle period.
// Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*state
	idleTTL  time.Duration
}

// NewStore creates a session store with the given idle TTL.
func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*state),
		idleTTL:  idleTTL,
	}
}

// Ensure returns a live session id: the given one when it exists, otherwise
// a freshly issued one. Expired sessions are swept here.
func (s *Store) Ensure(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for sid, st := range s.sessions {
		if now.Sub(st.lastSeen) > s.idleTTL {
			delete(s.sessions, sid)
		}
	}

	if st, ok := s.sessions[id]; ok {
		st.lastSeen = now
		return id
	}

	id = uuid.NewString()
	s.sessions[id] = &state{
		favorites: make(map[int]struct{}),
		lastSeen:  now,
	}
	return id
}

// AddFavorite marks a movie as a favorite for the session.
func (s *Store) AddFavorite(id string, movieID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.sessions[id]; ok {
		st.favorites[movieID] = struct{}{}
		st.lastSeen = time.Now()
	}
}

// RemoveFavorite clears a favorite; removing an absent id is a no-op.
func (s *Store) RemoveFavorite(id string, movieID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.sessions[id]; ok {
		delete(st.favorites, movieID)
		st.lastSeen = time.Now()
	}
}

// IsFavorite reports whether the movie is a favorite for the session.
func (s *Store) IsFavorite(id string, movieID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return false
	}
	_, fav := st.favorites[movieID]
	return fav
}

// Favorites returns the session's favorite movie ids in ascending order.
func (s *Store) Favorites(id string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil
	}
	ids := make([]int, 0, len(st.favorites))
	for movieID := range st.favorites {
		ids = append(ids, movieID)
	}
	sort.Ints(ids)
	return ids
}
