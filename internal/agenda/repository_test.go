package agenda

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Event{}))
	// Same partial index the Postgres migration creates.
	require.NoError(t, db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_agenda_active_slot
		ON agenda_events (event_date, event_time)
		WHERE status = 'active'
	`).Error)
	return NewRepository(db)
}

func TestRepositoryInsertAndFetch(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	ev := &Event{Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive}
	require.NoError(t, repo.Insert(ctx, ev))
	assert.NotZero(t, ev.ID)

	events, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Spinning", events[0].Title)
}

func TestRepositoryActiveSlotIndexRejectsDuplicate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := &Event{Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive}
	require.NoError(t, repo.Insert(ctx, first))

	second := &Event{Title: "Pilates", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Ana", Status: StatusActive}
	err := repo.Insert(ctx, second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey, "two actives cannot share a slot")
}

func TestRepositoryDeniedEventsEscapeSlotIndex(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	denied := &Event{Title: "Old", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusDenied}
	require.NoError(t, repo.Insert(ctx, denied))

	active := &Event{Title: "New", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Ana", Status: StatusActive}
	assert.NoError(t, repo.Insert(ctx, active), "a denied event does not hold its slot")
}

func TestRepositoryUpdateSlotAndStatus(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	ev := &Event{Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive}
	require.NoError(t, repo.Insert(ctx, ev))

	require.NoError(t, repo.UpdateSlot(ctx, ev.ID, day("2026-03-11"), "14:00"))
	require.NoError(t, repo.UpdateStatus(ctx, ev.ID, StatusDenied))

	events, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "14:00", events[0].EventTime)
	assert.Equal(t, StatusDenied, events[0].Status)
}

func TestRepositoryDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	ev := &Event{Title: "Spinning", EventDate: day("2026-03-10"), EventTime: "09:00", Responsible: "Carla", Status: StatusActive}
	require.NoError(t, repo.Insert(ctx, ev))
	require.NoError(t, repo.Delete(ctx, ev.ID))

	events, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}
