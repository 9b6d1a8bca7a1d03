package training

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/internal/member"
)

// ============================
// 🔷 GORM Training Sheet Model
//
// Exercises are grouped by muscle group and stored as one JSON document,
// so new splits need no schema change.
type Sheet struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  string         `gorm:"type:uuid;not null;index" json:"member_id"`
	Member    *member.Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Exercises datatypes.JSON `gorm:"type:jsonb;not null" json:"exercises"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sheet) TableName() string {
	return "trainings"
}

func (s *Sheet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ExerciseEntry is one row of a group's table on the sheet.
type ExerciseEntry struct {
	Day      string `json:"day"`
	Number   string `json:"number"`
	Exercise string `json:"exercise"`
	Series   string `json:"series"`
	Load     string `json:"load"` // free weights or guided machine
}

// ============================
// 🔶 Input Structs
type SheetInput struct {
	MemberID  string                     `json:"member_id"`
	Exercises map[string][]ExerciseEntry `json:"exercises"`
}
