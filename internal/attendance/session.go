package attendance

import (
	"errors"
	"time"

	"github.com/viniciusmf/gym-management-backend/internal/confirm"
)

var ErrUnsavedChanges = errors.New("there are unsaved attendance changes for the current date")

// Session is one operator's working copy of one day's present set. Edits
// accumulate locally and hit the store only on Save, so an operator can tick
// a whole class and persist it as one reconcile.
type Session struct {
	day     time.Time
	desired map[string]bool
	dirty   bool
	gen     int
}

func NewSession(day time.Time, registered []string) *Session {
	desired := make(map[string]bool, len(registered))
	for _, id := range registered {
		desired[id] = true
	}
	return &Session{day: day, desired: desired}
}

func (s *Session) Day() time.Time { return s.day }

func (s *Session) Dirty() bool { return s.dirty }

// Desired returns a copy of the present set; callers never see the live map.
func (s *Session) Desired() map[string]bool {
	out := make(map[string]bool, len(s.desired))
	for id, present := range s.desired {
		out[id] = present
	}
	return out
}

func (s *Session) PresentCount() int {
	n := 0
	for _, present := range s.desired {
		if present {
			n++
		}
	}
	return n
}

// Toggle flips one member's presence. Any toggle marks the session dirty,
// even one that lands back on the loaded state.
func (s *Session) Toggle(memberID string) bool {
	now := !s.desired[memberID]
	s.desired[memberID] = now
	s.dirty = true
	s.gen++
	return now
}

// Generation counts edits. Save compares it across the store round-trip to
// spot toggles that raced in while the reconcile ran off the lock.
func (s *Session) Generation() int { return s.gen }

// CanLeave decides whether the operator may abandon this session for another
// date. A clean session always may; a dirty one needs the confirmer to sign
// off on discarding the pending edits.
func (s *Session) CanLeave(conf confirm.Confirmer) error {
	if !s.dirty {
		return nil
	}
	if conf != nil && conf.Confirm("discard unsaved attendance changes") {
		return nil
	}
	return ErrUnsavedChanges
}

// MarkSaved clears the dirty flag after a successful reconcile.
func (s *Session) MarkSaved() {
	s.dirty = false
}

func (s *Session) State() SessionState {
	return SessionState{
		Date:         s.day.Format("2006-01-02"),
		Present:      s.Desired(),
		PresentCount: s.PresentCount(),
		Dirty:        s.dirty,
	}
}
