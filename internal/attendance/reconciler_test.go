package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubStore is an in-memory attendance Store with injectable per-member
// failures.
type stubStore struct {
	mu    sync.Mutex
	marks map[string]bool // memberID -> registered

	fetchErr   error
	insertErrs map[string]error
	deleteErrs map[string]error

	// Rendezvous for slow-store tests: Insert announces itself on
	// insertEntered, then parks until insertGate closes.
	insertEntered chan struct{}
	insertGate    chan struct{}

	inserts []string
	deletes []string
}

func newStubStore(registered ...string) *stubStore {
	s := &stubStore{
		marks:      make(map[string]bool),
		insertErrs: make(map[string]error),
		deleteErrs: make(map[string]error),
	}
	for _, id := range registered {
		s.marks[id] = true
	}
	return s
}

func (s *stubStore) FetchByDate(ctx context.Context, day time.Time) ([]Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var out []Attendance
	for id := range s.marks {
		out = append(out, Attendance{MemberID: id, CheckInDate: CanonicalCheckIn(day)})
	}
	return out, nil
}

func (s *stubStore) Insert(ctx context.Context, memberID string, day time.Time) error {
	if s.insertEntered != nil {
		s.insertEntered <- struct{}{}
	}
	if s.insertGate != nil {
		<-s.insertGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertErrs[memberID]; err != nil {
		return err
	}
	if s.marks[memberID] {
		return gorm.ErrDuplicatedKey
	}
	s.marks[memberID] = true
	s.inserts = append(s.inserts, memberID)
	return nil
}

func (s *stubStore) DeleteByMemberAndDay(ctx context.Context, memberID string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteErrs[memberID]; err != nil {
		return err
	}
	delete(s.marks, memberID)
	s.deletes = append(s.deletes, memberID)
	return nil
}

func (s *stubStore) CountByDay(ctx context.Context, from, to time.Time) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{}, nil
}

func TestBuildPlanSymmetricDiff(t *testing.T) {
	desired := map[string]bool{"a": false, "b": true, "c": true}
	current := []string{"a", "b"}

	plan := BuildPlan(desired, current)

	assert.Equal(t, []string{"c"}, plan.ToCreate)
	assert.Equal(t, []string{"a"}, plan.ToDelete)
}

func TestBuildPlanDeterministicOrder(t *testing.T) {
	desired := map[string]bool{"z": true, "a": true, "m": true}

	plan := BuildPlan(desired, nil)

	assert.Equal(t, []string{"a", "m", "z"}, plan.ToCreate, "plan order is sorted, not map order")
}

func TestBuildPlanUnchangedInputIsEmpty(t *testing.T) {
	desired := map[string]bool{"a": true, "b": true}
	current := []string{"a", "b"}

	plan := BuildPlan(desired, current)

	assert.True(t, plan.Empty())
}

func TestReconcileConvergesStore(t *testing.T) {
	store := newStubStore("a", "b")
	r := NewReconciler(store, logrus.New())

	// {a, b} -> {b, c}
	plan, err := r.Reconcile(context.Background(), date("2026-03-10"), map[string]bool{
		"a": false, "b": true, "c": true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, plan.ToCreate)
	assert.Equal(t, []string{"a"}, plan.ToDelete)
	assert.True(t, store.marks["b"])
	assert.True(t, store.marks["c"])
	assert.False(t, store.marks["a"])
}

func TestReconcileIsIdempotent(t *testing.T) {
	store := newStubStore("a", "b")
	r := NewReconciler(store, logrus.New())
	desired := map[string]bool{"a": true, "b": true}

	plan, err := r.Reconcile(context.Background(), date("2026-03-10"), desired)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
	assert.Empty(t, store.inserts, "a second save with no edits issues zero writes")
	assert.Empty(t, store.deletes)
}

func TestReconcilePartialFailureDoesNotBlockOthers(t *testing.T) {
	store := newStubStore("x")
	store.insertErrs["bad"] = errors.New("constraint violated")
	r := NewReconciler(store, logrus.New())

	plan, err := r.Reconcile(context.Background(), date("2026-03-10"), map[string]bool{
		"bad": true, "good": true, "x": false,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.ElementsMatch(t, []string{"bad", "good"}, plan.ToCreate)
	assert.True(t, store.marks["good"], "the healthy create still landed")
	assert.False(t, store.marks["x"], "the delete still landed")
}

func TestReconcileTreatsDuplicateInsertAsConverged(t *testing.T) {
	store := newStubStore()
	r := NewReconciler(store, logrus.New())

	// Another writer registers "a" between fetch and dispatch.
	_, err := r.Reconcile(context.Background(), date("2026-03-10"), map[string]bool{"a": true})
	require.NoError(t, err)

	// Re-running against the now-registered member: the plan is empty, but
	// even a racing duplicate insert would not surface as an error.
	store.marks["a"] = true
	err = store.Insert(context.Background(), "a", date("2026-03-10"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = r.Reconcile(context.Background(), date("2026-03-10"), map[string]bool{"a": true})
	assert.NoError(t, err)
}

func TestReconcileFetchFailureAbortsBeforeWrites(t *testing.T) {
	store := newStubStore()
	store.fetchErr = errors.New("connection reset")
	r := NewReconciler(store, logrus.New())

	_, err := r.Reconcile(context.Background(), date("2026-03-10"), map[string]bool{"a": true})

	require.Error(t, err)
	assert.Empty(t, store.inserts)
}
