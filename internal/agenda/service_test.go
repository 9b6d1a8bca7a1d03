package agenda

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusmf/gym-management-backend/internal/confirm"
)

// stubStore is an in-memory Store with injectable failures, standing in for
// the Postgres repository in engine tests.
type stubStore struct {
	mu     sync.Mutex
	events []Event
	nextID uint

	fetchErr  error
	insertErr error
	updateErr error
	deleteErr error
}

func newStubStore(seed ...Event) *stubStore {
	s := &stubStore{nextID: 1}
	for _, ev := range seed {
		if ev.ID == 0 {
			ev.ID = s.nextID
		}
		if ev.ID >= s.nextID {
			s.nextID = ev.ID + 1
		}
		s.events = append(s.events, ev)
	}
	return s
}

func (s *stubStore) FetchAll(ctx context.Context) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return append([]Event(nil), s.events...), nil
}

func (s *stubStore) Insert(ctx context.Context, ev *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	ev.ID = s.nextID
	s.nextID++
	s.events = append(s.events, *ev)
	return nil
}

func (s *stubStore) Update(ctx context.Context, ev *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.events {
		if s.events[i].ID == ev.ID {
			s.events[i] = *ev
			return nil
		}
	}
	return errors.New("not found")
}

func (s *stubStore) UpdateSlot(ctx context.Context, id uint, date time.Time, timeOfDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].EventDate = date
			s.events[i].EventTime = timeOfDay
			return nil
		}
	}
	return errors.New("not found")
}

func (s *stubStore) UpdateStatus(ctx context.Context, id uint, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

func (s *stubStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// addDirect simulates another writer committing behind the engine's back.
func (s *stubStore) addDirect(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID == 0 {
		ev.ID = s.nextID
	}
	if ev.ID >= s.nextID {
		s.nextID = ev.ID + 1
	}
	s.events = append(s.events, ev)
}

func validInput() EventInput {
	return EventInput{
		Title:       "Spinning",
		Date:        "2026-03-10",
		Time:        "09:00",
		Responsible: "Carla",
	}
}

func TestCreateCommits(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil)

	res := svc.Create(context.Background(), validInput(), nil, "")

	require.Equal(t, ResultCommitted, res.Code)
	require.NotNil(t, res.Event)
	assert.NotZero(t, res.Event.ID, "committed event carries the server-assigned id")

	events, err := svc.Events(context.Background(), "all", "")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil)

	cases := []struct {
		name   string
		mutate func(*EventInput)
	}{
		{"missing title", func(in *EventInput) { in.Title = " " }},
		{"missing date", func(in *EventInput) { in.Date = "" }},
		{"missing time", func(in *EventInput) { in.Time = "" }},
		{"missing responsible", func(in *EventInput) { in.Responsible = "" }},
		{"bad date", func(in *EventInput) { in.Date = "10/03/2026" }},
		{"bad time", func(in *EventInput) { in.Time = "25:99" }},
		{"bad status", func(in *EventInput) { in.Status = "approved" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			res := svc.Create(context.Background(), in, nil, "")
			assert.Equal(t, ResultRejectedValidation, res.Code)
		})
	}

	events, _ := svc.Events(context.Background(), "all", "")
	assert.Empty(t, events, "rejected inputs never reach the store")
}

func TestCreateRejectsLocalConflict(t *testing.T) {
	store := newStubStore(Event{
		Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Ana", Status: StatusActive,
	})
	svc := NewService(store, nil)

	res := svc.Create(context.Background(), validInput(), nil, "")

	assert.Equal(t, ResultRejectedConflict, res.Code)
	events, _ := svc.Events(context.Background(), "all", "")
	assert.Len(t, events, 1, "nothing was written")
}

func TestCreateNormalizedTimeCollides(t *testing.T) {
	store := newStubStore(Event{
		Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Ana", Status: StatusActive,
	})
	svc := NewService(store, nil)

	in := validInput()
	in.Time = "9:0"
	res := svc.Create(context.Background(), in, nil, "")

	assert.Equal(t, ResultRejectedConflict, res.Code, "\"9:0\" and \"09:00\" are the same slot")
}

func TestCreateAllowsSlotHeldByDeniedEvent(t *testing.T) {
	store := newStubStore(Event{
		Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Ana", Status: StatusDenied,
	})
	svc := NewService(store, nil)

	res := svc.Create(context.Background(), validInput(), nil, "")

	assert.Equal(t, ResultCommitted, res.Code)
}

func TestCreateRollsBackOnStaleSnapshotConflict(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil)

	// Load the mirror, then let another writer take the slot behind it.
	_, err := svc.Events(context.Background(), "all", "")
	require.NoError(t, err)
	store.addDirect(Event{
		Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Ana", Status: StatusActive,
	})

	res := svc.Create(context.Background(), validInput(), nil, "")

	assert.Equal(t, ResultRolledBackConflict, res.Code,
		"the authoritative re-check catches what the stale mirror missed")
	events, _ := svc.Events(context.Background(), "all", "")
	assert.Len(t, events, 1, "only the racing writer's event survives")
}

func TestCreateRollsBackOnTransportFailure(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil)

	// Prime the mirror before injecting the failure, otherwise the engine
	// cannot even load.
	_, err := svc.Events(context.Background(), "all", "")
	require.NoError(t, err)
	store.insertErr = errors.New("connection reset")

	res := svc.Create(context.Background(), validInput(), nil, "")

	assert.Equal(t, ResultRolledBackTransport, res.Code)

	store.insertErr = nil
	events, _ := svc.Events(context.Background(), "all", "")
	assert.Empty(t, events)
}

func TestEditRejectsConflictExcludingSelf(t *testing.T) {
	store := newStubStore(
		Event{ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive},
		Event{ID: 2, Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "10:00", Responsible: "Ana", Status: StatusActive},
	)
	svc := NewService(store, nil)

	// Keeping its own slot is fine.
	res := svc.Edit(context.Background(), 1, EventInput{
		Title: "Spinning Pro", Date: "2026-03-10", Time: "09:00", Responsible: "Carla",
	}, nil, "")
	assert.Equal(t, ResultCommitted, res.Code)

	// Taking the other event's slot is not.
	res = svc.Edit(context.Background(), 1, EventInput{
		Title: "Spinning Pro", Date: "2026-03-10", Time: "10:00", Responsible: "Carla",
	}, nil, "")
	assert.Equal(t, ResultRejectedConflict, res.Code)
}

func TestEditRefusesReactivatingDeniedEvent(t *testing.T) {
	store := newStubStore(Event{
		ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Carla", Status: StatusDenied,
	})
	svc := NewService(store, nil)

	res := svc.Edit(context.Background(), 1, EventInput{
		Title: "Spinning", Date: "2026-03-10", Time: "09:00",
		Responsible: "Carla", Status: "active",
	}, nil, "")

	assert.Equal(t, ResultRejectedValidation, res.Code)
}

func TestMoveCommitsToFreeSlot(t *testing.T) {
	store := newStubStore(Event{
		ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Carla", Status: StatusActive,
	})
	svc := NewService(store, nil)

	res := svc.Move(context.Background(), 1, MoveInput{Date: "2026-03-11", Time: "14:00"}, nil, "")

	require.Equal(t, ResultCommitted, res.Code)
	assert.Equal(t, "14:00", res.Event.EventTime)
	assert.True(t, sameDay(res.Event.EventDate, day("2026-03-11")))
}

func TestMoveRejectsOccupiedSlot(t *testing.T) {
	store := newStubStore(
		Event{ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive},
		Event{ID: 2, Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "10:00", Responsible: "Ana", Status: StatusActive},
	)
	svc := NewService(store, nil)

	res := svc.Move(context.Background(), 2, MoveInput{Date: "2026-03-10", Time: "09:00"}, nil, "")

	assert.Equal(t, ResultRejectedConflict, res.Code)
	events, _ := svc.Events(context.Background(), "all", "")
	for _, ev := range events {
		if ev.ID == 2 {
			assert.Equal(t, "10:00", ev.EventTime, "the dragged event stays where it was")
		}
	}
}

func TestMoveRollsBackWhenSlotTakenAtCommit(t *testing.T) {
	store := newStubStore(Event{
		ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Carla", Status: StatusActive,
	})
	svc := NewService(store, nil)

	_, err := svc.Events(context.Background(), "all", "")
	require.NoError(t, err)
	store.addDirect(Event{
		Title: "Pilates", EventDate: day("2026-03-11"), EventTime: "14:00",
		Responsible: "Ana", Status: StatusActive,
	})

	res := svc.Move(context.Background(), 1, MoveInput{Date: "2026-03-11", Time: "14:00"}, nil, "")

	assert.Equal(t, ResultRolledBackConflict, res.Code)
	events, _ := svc.Events(context.Background(), "all", "")
	for _, ev := range events {
		if ev.ID == 1 {
			assert.Equal(t, "09:00", ev.EventTime, "the move was reverted")
		}
	}
}

func TestDenyBypassesConflictCheck(t *testing.T) {
	// Two actives on distinct slots; denying one must work even though the
	// denied slot "collides" with nothing anyway. The sharper case: deny
	// succeeds even when the event's own slot is contested by a stale mirror.
	store := newStubStore(
		Event{ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive},
		Event{ID: 2, Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "10:00", Responsible: "Ana", Status: StatusActive},
	)
	svc := NewService(store, nil)

	res := svc.Deny(context.Background(), 1, nil, "")

	require.Equal(t, ResultCommitted, res.Code)
	assert.Equal(t, StatusDenied, res.Event.Status)
}

func TestDenyFreesSlotForNewBooking(t *testing.T) {
	store := newStubStore(Event{
		ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Carla", Status: StatusActive,
	})
	svc := NewService(store, nil)

	res := svc.Deny(context.Background(), 1, nil, "")
	require.Equal(t, ResultCommitted, res.Code)

	res = svc.Create(context.Background(), validInput(), nil, "")
	assert.Equal(t, ResultCommitted, res.Code, "a denied event no longer holds its slot")
}

func TestDeleteDeclinedIsNoOp(t *testing.T) {
	store := newStubStore(Event{
		ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Carla", Status: StatusActive,
	})
	svc := NewService(store, nil)

	res := svc.Delete(context.Background(), 1, confirm.Never, nil, "")

	assert.Equal(t, ResultDeclined, res.Code)
	events, _ := svc.Events(context.Background(), "all", "")
	assert.Len(t, events, 1)
}

func TestDeleteConfirmedRemovesEvent(t *testing.T) {
	store := newStubStore(Event{
		ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Carla", Status: StatusActive,
	})
	svc := NewService(store, nil)

	res := svc.Delete(context.Background(), 1, confirm.Always, nil, "")

	require.Equal(t, ResultCommitted, res.Code)
	events, _ := svc.Events(context.Background(), "all", "")
	assert.Empty(t, events)
}

func TestDeleteRollsBackOnStoreFailure(t *testing.T) {
	store := newStubStore(Event{
		ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00",
		Responsible: "Carla", Status: StatusActive,
	})
	svc := NewService(store, nil)

	_, err := svc.Events(context.Background(), "all", "")
	require.NoError(t, err)
	store.deleteErr = errors.New("connection reset")

	res := svc.Delete(context.Background(), 1, confirm.Always, nil, "")

	assert.Equal(t, ResultRolledBackTransport, res.Code)
	store.deleteErr = nil
	events, _ := svc.Events(context.Background(), "all", "")
	assert.Len(t, events, 1, "the event is still there")
}

func TestEventsFiltersByStatusAndSearch(t *testing.T) {
	store := newStubStore(
		Event{ID: 1, Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive},
		Event{ID: 2, Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "10:00", Responsible: "Ana", Status: StatusDenied},
	)
	svc := NewService(store, nil)

	active, err := svc.Events(context.Background(), "active", "")
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "Spinning", active[0].Title)

	byResponsible, err := svc.Events(context.Background(), "all", "ana")
	require.NoError(t, err)
	assert.Len(t, byResponsible, 1)
	assert.Equal(t, "Pilates", byResponsible[0].Title)
}

func TestEventsSortedByDateThenTime(t *testing.T) {
	store := newStubStore(
		Event{ID: 1, Title: "Late", EventDate: day("2026-03-11"), EventTime: "08:00", Responsible: "A", Status: StatusActive},
		Event{ID: 2, Title: "Early", EventDate: day("2026-03-10"), EventTime: "18:00", Responsible: "B", Status: StatusActive},
		Event{ID: 3, Title: "Earlier same day", EventDate: day("2026-03-10"), EventTime: "07:00", Responsible: "C", Status: StatusActive},
	)
	svc := NewService(store, nil)

	events, err := svc.Events(context.Background(), "all", "")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Earlier same day", events[0].Title)
	assert.Equal(t, "Early", events[1].Title)
	assert.Equal(t, "Late", events[2].Title)
}
