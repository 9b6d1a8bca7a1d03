package agenda

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Store is the event-store collaborator the mutation controller commits
// against. Postgres (via Repository) in production, a stub in engine tests.
type Store interface {
	FetchAll(ctx context.Context) ([]Event, error)
	Insert(ctx context.Context, ev *Event) error
	Update(ctx context.Context, ev *Event) error
	UpdateSlot(ctx context.Context, id uint, date time.Time, timeOfDay string) error
	UpdateStatus(ctx context.Context, id uint, status Status) error
	Delete(ctx context.Context, id uint) error
}

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 📄 Fetch All Events
func (r *Repository) FetchAll(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Order("event_date ASC, event_time ASC").
		Find(&events).Error
	return events, err
}

// ===========================
// 🎯 Insert Event
//
// The partial unique index on (event_date, event_time) WHERE status='active'
// makes the store the final authority on collisions: a racing insert loses
// with gorm.ErrDuplicatedKey.
func (r *Repository) Insert(ctx context.Context, ev *Event) error {
	return r.DB.WithContext(ctx).Create(ev).Error
}

// ===========================
// 🛠 Update Event
func (r *Repository) Update(ctx context.Context, ev *Event) error {
	return r.DB.WithContext(ctx).
		Model(&Event{ID: ev.ID}).
		Updates(map[string]interface{}{
			"title":       ev.Title,
			"event_date":  ev.EventDate,
			"event_time":  ev.EventTime,
			"responsible": ev.Responsible,
			"status":      ev.Status,
		}).Error
}

// ===========================
// 🟠 Update Slot (move: date/time only)
func (r *Repository) UpdateSlot(ctx context.Context, id uint, date time.Time, timeOfDay string) error {
	return r.DB.WithContext(ctx).
		Model(&Event{ID: id}).
		Updates(map[string]interface{}{
			"event_date": date,
			"event_time": timeOfDay,
		}).Error
}

// ===========================
// 🚫 Update Status (deny)
func (r *Repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	return r.DB.WithContext(ctx).
		Model(&Event{ID: id}).
		Update("status", status).Error
}

// ===========================
// ❌ Delete Event
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&Event{}, id).Error
}
