package member

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

// ===========================
// 📄 Members
func (r *Repository) ListMembers(ctx context.Context, search string, activeOnly bool) ([]Member, error) {
	var members []Member
	q := r.DB.WithContext(ctx).Preload("Plan").Order("full_name ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR cpf LIKE ?", like, like)
	}
	if activeOnly {
		q = q.Where("status = ?", true)
	}
	err := q.Find(&members).Error
	return members, err
}

func (r *Repository) GetMemberByID(ctx context.Context, id string) (*Member, error) {
	var m Member
	if err := r.DB.WithContext(ctx).Preload("Plan").First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) CreateMember(ctx context.Context, m *Member) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *Repository) UpdateMember(ctx context.Context, m *Member) error {
	return r.DB.WithContext(ctx).Model(&Member{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"full_name":  m.FullName,
			"cpf":        m.CPF,
			"phone":      m.Phone,
			"entry_date": m.EntryDate,
			"plan_id":    m.PlanID,
			"status":     m.Status,
			"notes":      m.Notes,
		}).Error
}

func (r *Repository) UpdateMemberStatus(ctx context.Context, id string, status bool) error {
	return r.DB.WithContext(ctx).Model(&Member{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *Repository) DeleteMember(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&Member{}, "id = ?", id).Error
}

// ===========================
// 📄 Plans
func (r *Repository) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	err := r.DB.WithContext(ctx).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *Repository) GetPlanByID(ctx context.Context, id uint) (*Plan, error) {
	var p Plan
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreatePlan(ctx context.Context, p *Plan) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repository) UpdatePlan(ctx context.Context, p *Plan) error {
	return r.DB.WithContext(ctx).Model(&Plan{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":            p.Name,
			"description":     p.Description,
			"price":           p.Price,
			"duration_months": p.DurationMonths,
		}).Error
}

func (r *Repository) DeletePlan(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&Plan{}, id).Error
}
