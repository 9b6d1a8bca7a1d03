package payment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// ============================
// 🔷 GORM Payment Model
type Payment struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID        string     `gorm:"type:uuid;not null;index" json:"member_id"`
	Amount          float64    `gorm:"not null" json:"amount"`
	PaymentDate     *time.Time `gorm:"type:date" json:"payment_date"`
	NextPaymentDate time.Time  `gorm:"type:date;not null" json:"next_payment_date"`
	Status          Status     `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	OrderID         string     `json:"order_id,omitempty"`
	RazorpayPayID   *string    `json:"razorpay_payment_id,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ============================
// 🔶 Input / Request Structs
type PaymentInput struct {
	MemberID        string  `json:"member_id"`
	Amount          float64 `json:"amount"`
	PaymentDate     string  `json:"payment_date"`
	NextPaymentDate string  `json:"next_payment_date"`
	Status          string  `json:"status"`
}

type StartPaymentRequest struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}

type StartPaymentResponse struct {
	PaymentID string  `json:"payment_id"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
