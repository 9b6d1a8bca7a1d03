package training

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListByMember(ctx context.Context, memberID string) ([]Sheet, error) {
	var sheets []Sheet
	err := r.DB.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&sheets).Error
	return sheets, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Sheet, error) {
	var s Sheet
	if err := r.DB.WithContext(ctx).Preload("Member").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Create(ctx context.Context, s *Sheet) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&Sheet{}, "id = ?", id).Error
}
