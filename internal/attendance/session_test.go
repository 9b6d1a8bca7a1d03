package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viniciusmf/gym-management-backend/internal/confirm"
)

func TestSessionStartsCleanWithRegisteredSet(t *testing.T) {
	s := NewSession(date("2026-03-10"), []string{"m1", "m2"})

	assert.False(t, s.Dirty())
	assert.Equal(t, 2, s.PresentCount())
	assert.True(t, s.Desired()["m1"])
	assert.True(t, s.Desired()["m2"])
}

func TestToggleMarksDirty(t *testing.T) {
	s := NewSession(date("2026-03-10"), []string{"m1"})

	present := s.Toggle("m2")
	assert.True(t, present)
	assert.True(t, s.Dirty())
	assert.Equal(t, 2, s.PresentCount())

	present = s.Toggle("m1")
	assert.False(t, present)
	assert.Equal(t, 1, s.PresentCount())
}

func TestToggleBackToLoadedStateStaysDirty(t *testing.T) {
	s := NewSession(date("2026-03-10"), []string{"m1"})

	s.Toggle("m1")
	s.Toggle("m1")

	assert.True(t, s.Dirty(), "the dirty flag tracks edits, not the diff")
}

func TestCanLeaveCleanSessionNeedsNoConfirmation(t *testing.T) {
	s := NewSession(date("2026-03-10"), nil)

	assert.NoError(t, s.CanLeave(confirm.Never))
}

func TestCanLeaveDirtySessionGatedByConfirmer(t *testing.T) {
	s := NewSession(date("2026-03-10"), nil)
	s.Toggle("m1")

	assert.ErrorIs(t, s.CanLeave(confirm.Never), ErrUnsavedChanges)
	assert.ErrorIs(t, s.CanLeave(nil), ErrUnsavedChanges)
	assert.NoError(t, s.CanLeave(confirm.Always))
}

func TestMarkSavedClearsDirty(t *testing.T) {
	s := NewSession(date("2026-03-10"), nil)
	s.Toggle("m1")
	s.MarkSaved()

	assert.False(t, s.Dirty())
	assert.NoError(t, s.CanLeave(confirm.Never))
}

func TestDesiredReturnsACopy(t *testing.T) {
	s := NewSession(date("2026-03-10"), []string{"m1"})

	desired := s.Desired()
	desired["m2"] = true

	assert.Equal(t, 1, s.PresentCount(), "callers cannot mutate the session through the copy")
}
