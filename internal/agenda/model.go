package agenda

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status of a scheduled event. Denied events are kept for record-keeping and
// are exempt from the slot-collision rule.
type Status string

const (
	StatusActive Status = "active"
	StatusDenied Status = "denied"
)

// ============================
// 🔷 GORM Agenda Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	EventDate   time.Time `gorm:"type:date;not null;index" json:"event_date"`
	EventTime   string    `gorm:"type:varchar(5);not null" json:"event_time"` // "15:04"
	Responsible string    `gorm:"type:varchar(255);not null" json:"responsible"`
	Status      Status    `gorm:"type:varchar(10);not null;default:active;index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string {
	return "agenda_events"
}

// ============================
// 🟡 Create / Edit Event Request
type EventInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"` // 🛠 string format: "2006-01-02"
	Time        string `json:"time"` // 🛠 string format: "15:04"
	Responsible string `json:"responsible"`
	Status      string `json:"status,omitempty"`
}

// ============================
// 🟠 Move Event Request (drag to a new slot, date/time only)
type MoveInput struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ParseDate parses a calendar date in "YYYY-MM-DD" form.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("invalid date format. Use YYYY-MM-DD")
	}
	return d, nil
}

// NormalizeTime canonicalizes a time-of-day to zero-padded "HH:MM" so that
// "8:5" and "08:05" land on the same slot.
func NormalizeTime(raw string) (string, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return "", errors.New("invalid time format. Use HH:MM in 24-hour format")
	}
	padded := fmt.Sprintf("%02s:%02s", parts[0], parts[1])
	if _, err := time.Parse("15:04", padded); err != nil {
		return "", errors.New("invalid time format. Use HH:MM in 24-hour format")
	}
	return padded, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
