package payment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 📄 List payments (optionally by member and status)
func (r *Repository) List(ctx context.Context, memberID string, status Status) ([]Payment, error) {
	var payments []Payment
	q := r.DB.WithContext(ctx).Order("next_payment_date DESC")
	if memberID != "" {
		q = q.Where("member_id = ?", memberID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&payments).Error
	return payments, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	var p Payment
	if err := r.DB.WithContext(ctx).First(&p, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p *Payment) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repository) Update(ctx context.Context, p *Payment) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&Payment{}, "id = ?", id).Error
}

// ===========================
// 🟠 Flip pending payments past their due date to overdue
func (r *Repository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&Payment{}).
		Where("status = ? AND next_payment_date < ?", StatusPending, asOf).
		Update("status", StatusOverdue)
	return res.RowsAffected, res.Error
}
