package session

import (
	"reflect"
	"testing"
	"time"
)

func TestEnsureIssuesAndKeepsIDs(t *testing.T) {
	s := NewStore(time.Hour)

	id := s.Ensure("")
	if id == "" {
		t.Fatal("expected a fresh session id")
	}
	if got := s.Ensure(id); got != id {
		t.Errorf("known id must be kept, got %q", got)
	}
	if got := s.Ensure("unknown"); got == "unknown" {
		t.Error("unknown id must be replaced")
	}
}

func TestFavoritesToggle(t *testing.T) {
	s := NewStore(time.Hour)
	id := s.Ensure("")

	s.AddFavorite(id, 603)
	s.AddFavorite(id, 11)
	s.AddFavorite(id, 603) // idempotent

	if !s.IsFavorite(id, 603) {
		t.Error("expected 603 to be a favorite")
	}
	if got := s.Favorites(id); !reflect.DeepEqual(got, []int{11, 603}) {
		t.Errorf("expected sorted ids [11 603], got %v", got)
	}

	s.RemoveFavorite(id, 603)
	s.RemoveFavorite(id, 999) // absent, no-op
	if s.IsFavorite(id, 603) {
		t.Error("expected 603 to be removed")
	}
	if got := s.Favorites(id); !reflect.DeepEqual(got, []int{11}) {
		t.Errorf("expected [11], got %v", got)
	}
}

func TestFavoritesAreSessionScoped(t *testing.T) {
	s := NewStore(time.Hour)
	a := s.Ensure("")
	b := s.Ensure("")

	s.AddFavorite(a, 603)
	if s.IsFavorite(b, 603) {
		t.Error("favorites must not leak across sessions")
	}
	if got := s.Favorites(b); len(got) != 0 {
		t.Errorf("expected empty favorites for other session, got %v", got)
	}
}

func TestIdleSessionsExpire(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	id := s.Ensure("")
	s.AddFavorite(id, 603)

	time.Sleep(20 * time.Millisecond)

	fresh := s.Ensure(id)
	if fresh == id {
		t.Fatal("expected expired session to be replaced")
	}
	if got := s.Favorites(fresh); len(got) != 0 {
		t.Errorf("expected favorites discarded with the session, got %v", got)
	}
}
