package member

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================
// 🔷 GORM Member Model
type Member struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	CPF       string    `gorm:"type:varchar(14);uniqueIndex" json:"cpf"`
	Phone     string    `json:"phone"`
	EntryDate time.Time `gorm:"type:date;not null" json:"entry_date"`
	PlanID    *uint     `json:"plan_id"`
	Plan      *Plan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Status    bool      `gorm:"default:true" json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ============================
// 🔷 GORM Plan Model
type Plan struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null;uniqueIndex" json:"name"`
	Description    string    `json:"description"`
	Price          float64   `gorm:"not null" json:"price"`
	DurationMonths int       `gorm:"not null;default:1" json:"duration_months"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// ============================
// 🔶 Input Structs
type MemberInput struct {
	FullName  string `json:"full_name"`
	CPF       string `json:"cpf"`
	Phone     string `json:"phone"`
	EntryDate string `json:"entry_date"`
	PlanID    *uint  `json:"plan_id"`
	Status    *bool  `json:"status"`
	Notes     string `json:"notes"`
}

type PlanInput struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"duration_months"`
}
