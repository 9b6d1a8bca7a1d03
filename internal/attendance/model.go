package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================
// 🔷 GORM Attendance Model
//
// One row is one mark that one member was present on one day. Rows are never
// updated in place; toggling presence is always a create or a delete. The
// composite unique index keeps at most one mark per (member, day).
type Attendance struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_member_day" json:"member_id"`
	CheckInDate time.Time `gorm:"not null;uniqueIndex:idx_attendance_member_day;index" json:"check_in_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SessionState is what the handler returns after loading, toggling or saving:
// the operator-local view of one day's desired present set.
type SessionState struct {
	Date         string          `json:"date"`
	Present      map[string]bool `json:"present"`
	PresentCount int             `json:"present_count"`
	Dirty        bool            `json:"dirty"`
}

// DaySummary is one day of the weekly attendance summary.
type DaySummary struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Total   int    `json:"total"`
}
