package auth

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CreateOperator(op *Operator) error {
	return r.DB.Create(op).Error
}

func (r *Repository) CountOperators() (int64, error) {
	var n int64
	err := r.DB.Model(&Operator{}).Count(&n).Error
	return n, err
}

func (r *Repository) GetOperatorByEmail(email string) (*Operator, error) {
	var op Operator
	if err := r.DB.Where("email = ?", email).First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *Repository) GetOperatorByID(id uint) (*Operator, error) {
	var op Operator
	if err := r.DB.First(&op, id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}
