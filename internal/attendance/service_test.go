package attendance

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusmf/gym-management-backend/internal/confirm"
)

func newTestService(store *stubStore) *Service {
	log := logrus.New()
	return NewService(store, NewReconciler(store, log), nil, log)
}

func TestLoadDayOpensSession(t *testing.T) {
	svc := newTestService(newStubStore("m1", "m2"))

	state, err := svc.LoadDay(context.Background(), 1, "2026-03-10", confirm.Never)

	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", state.Date)
	assert.Equal(t, 2, state.PresentCount)
	assert.False(t, state.Dirty)
}

func TestLoadDayRejectsBadDate(t *testing.T) {
	svc := newTestService(newStubStore())

	_, err := svc.LoadDay(context.Background(), 1, "10/03/2026", confirm.Never)

	assert.Error(t, err)
}

func TestSwitchDateGatedByUnsavedChanges(t *testing.T) {
	svc := newTestService(newStubStore())
	ctx := context.Background()

	_, err := svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)
	_, err = svc.Toggle(1, "m1")
	require.NoError(t, err)

	// Without confirmation the switch is refused and the session survives.
	state, err := svc.LoadDay(ctx, 1, "2026-03-11", confirm.Never)
	assert.ErrorIs(t, err, ErrUnsavedChanges)
	assert.Equal(t, "2026-03-10", state.Date)
	assert.True(t, state.Dirty)

	// Confirming discards the pending edits and opens the new day.
	state, err = svc.LoadDay(ctx, 1, "2026-03-11", confirm.Always)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-11", state.Date)
	assert.False(t, state.Dirty)
}

func TestReloadingSameDayKeepsSession(t *testing.T) {
	svc := newTestService(newStubStore())
	ctx := context.Background()

	_, err := svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)
	_, err = svc.Toggle(1, "m1")
	require.NoError(t, err)

	state, err := svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)
	assert.True(t, state.Dirty, "reloading the open day never discards edits")
	assert.Equal(t, 1, state.PresentCount)
}

func TestToggleWithoutSessionFails(t *testing.T) {
	svc := newTestService(newStubStore())

	_, err := svc.Toggle(1, "m1")

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSavePersistsDiffAndCleansSession(t *testing.T) {
	store := newStubStore("a")
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)
	_, err = svc.Toggle(1, "b") // mark b present
	require.NoError(t, err)
	_, err = svc.Toggle(1, "a") // unmark a
	require.NoError(t, err)

	state, plan, err := svc.Save(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, plan.ToCreate)
	assert.Equal(t, []string{"a"}, plan.ToDelete)
	assert.False(t, state.Dirty)
	assert.True(t, store.marks["b"])
	assert.False(t, store.marks["a"])
}

func TestSaveWithoutChangesFails(t *testing.T) {
	svc := newTestService(newStubStore("a"))
	ctx := context.Background()

	_, err := svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)

	_, _, err = svc.Save(ctx, 1, "")
	assert.ErrorIs(t, err, ErrNothingToSave)
}

func TestSessionsAreIsolatedPerOperator(t *testing.T) {
	svc := newTestService(newStubStore())
	ctx := context.Background()

	_, err := svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)
	_, err = svc.LoadDay(ctx, 2, "2026-03-11", confirm.Never)
	require.NoError(t, err)

	_, err = svc.Toggle(1, "m1")
	require.NoError(t, err)

	// Operator 2's session is clean and on its own day.
	state, err := svc.LoadDay(ctx, 2, "2026-03-11", confirm.Never)
	require.NoError(t, err)
	assert.False(t, state.Dirty)
	assert.Equal(t, 0, state.PresentCount)
}

func TestSlowSaveDoesNotBlockOtherWork(t *testing.T) {
	store := newStubStore()
	store.insertEntered = make(chan struct{}, 1)
	store.insertGate = make(chan struct{})
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)
	_, err = svc.Toggle(1, "a")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Save(ctx, 1, "")
	}()
	<-store.insertEntered // the save is now parked inside the store

	// The operator keeps editing and a colleague keeps working. If the save
	// held the service lock across the store round-trip, both calls below
	// would hang.
	state, err := svc.Toggle(1, "b")
	require.NoError(t, err)
	assert.True(t, state.Dirty)
	_, err = svc.LoadDay(ctx, 2, "2026-03-11", confirm.Never)
	require.NoError(t, err)

	close(store.insertGate)
	<-done

	// The save persisted its snapshot, but the toggle that raced in during
	// the store round-trip is still unsaved.
	state, err = svc.LoadDay(ctx, 1, "2026-03-10", confirm.Never)
	require.NoError(t, err)
	assert.True(t, state.Dirty)
	assert.True(t, state.Present["b"])
	assert.True(t, store.marks["a"])
	assert.False(t, store.marks["b"])
}

func TestWeeklySummaryCoversFullWeek(t *testing.T) {
	svc := newTestService(newStubStore())

	summary, err := svc.WeeklySummary(context.Background(), date("2026-03-11"))

	require.NoError(t, err)
	require.Len(t, summary, 7)
	assert.Equal(t, "2026-03-08", summary[0].Date)
	assert.Equal(t, "Sunday", summary[0].Weekday)
	assert.Equal(t, "2026-03-14", summary[6].Date)
	assert.Equal(t, "Saturday", summary[6].Weekday)
	for _, d := range summary {
		assert.Zero(t, d.Total)
	}
}
