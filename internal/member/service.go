package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
)

type Service struct {
	repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(repo *Repository, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, AuditSvc: auditSvc}
}

// ===========================
// 📄 List Members (search + active filter, ordered by name)
func (s *Service) ListMembers(ctx context.Context, search string, activeOnly bool) ([]Member, error) {
	return s.repo.ListMembers(ctx, search, activeOnly)
}

func (s *Service) GetMember(ctx context.Context, id string) (*Member, error) {
	m, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("member not found")
		}
		return nil, err
	}
	return m, nil
}

// ===========================
// 🎯 Create Member
func (s *Service) CreateMember(ctx context.Context, in MemberInput, operatorID *uint, ip string) (*Member, error) {
	m, err := s.buildMember(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateMember(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a member with this CPF already exists")
		}
		return nil, fmt.Errorf("could not create member: %w", err)
	}

	s.logAction(ctx, operatorID, "MEMBER_CREATED", ip, map[string]interface{}{
		"member_id": m.ID,
		"full_name": m.FullName,
	})
	return m, nil
}

// ===========================
// 🛠 Update Member
func (s *Service) UpdateMember(ctx context.Context, id string, in MemberInput, operatorID *uint, ip string) (*Member, error) {
	if _, err := s.GetMember(ctx, id); err != nil {
		return nil, err
	}

	m, err := s.buildMember(ctx, in)
	if err != nil {
		return nil, err
	}
	m.ID = id

	if err := s.repo.UpdateMember(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a member with this CPF already exists")
		}
		return nil, fmt.Errorf("could not update member: %w", err)
	}

	s.logAction(ctx, operatorID, "MEMBER_UPDATED", ip, map[string]interface{}{
		"member_id": id,
	})
	return s.repo.GetMemberByID(ctx, id)
}

// ===========================
// 🟠 Toggle Member Status
func (s *Service) ToggleMemberStatus(ctx context.Context, id string, operatorID *uint, ip string) (*Member, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := !m.Status
	if err := s.repo.UpdateMemberStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("could not update member status: %w", err)
	}
	m.Status = newStatus

	s.logAction(ctx, operatorID, "MEMBER_STATUS_TOGGLED", ip, map[string]interface{}{
		"member_id": id,
		"status":    newStatus,
	})
	return m, nil
}

// ===========================
// ❌ Delete Member
func (s *Service) DeleteMember(ctx context.Context, id string, operatorID *uint, ip string) error {
	if _, err := s.GetMember(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("could not delete member: %w", err)
	}
	s.logAction(ctx, operatorID, "MEMBER_DELETED", ip, map[string]interface{}{
		"member_id": id,
	})
	return nil
}

// ===========================
// 📄 Plans
func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	return s.repo.ListPlans(ctx)
}

func (s *Service) CreatePlan(ctx context.Context, in PlanInput, operatorID *uint, ip string) (*Plan, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}

	p := &Plan{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		DurationMonths: in.DurationMonths,
	}
	if err := s.repo.CreatePlan(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a plan with this name already exists")
		}
		return nil, fmt.Errorf("could not create plan: %w", err)
	}

	s.logAction(ctx, operatorID, "PLAN_CREATED", ip, map[string]interface{}{
		"plan_id": p.ID,
		"name":    p.Name,
	})
	return p, nil
}

func (s *Service) UpdatePlan(ctx context.Context, id uint, in PlanInput, operatorID *uint, ip string) (*Plan, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetPlanByID(ctx, id); err != nil {
		return nil, errors.New("plan not found")
	}

	p := &Plan{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		DurationMonths: in.DurationMonths,
	}
	if err := s.repo.UpdatePlan(ctx, p); err != nil {
		return nil, fmt.Errorf("could not update plan: %w", err)
	}

	s.logAction(ctx, operatorID, "PLAN_UPDATED", ip, map[string]interface{}{
		"plan_id": id,
	})
	return s.repo.GetPlanByID(ctx, id)
}

func (s *Service) DeletePlan(ctx context.Context, id uint, operatorID *uint, ip string) error {
	if _, err := s.repo.GetPlanByID(ctx, id); err != nil {
		return errors.New("plan not found")
	}
	if err := s.repo.DeletePlan(ctx, id); err != nil {
		return fmt.Errorf("could not delete plan: %w", err)
	}
	s.logAction(ctx, operatorID, "PLAN_DELETED", ip, map[string]interface{}{
		"plan_id": id,
	})
	return nil
}

// ===========================
// internal helpers

func (s *Service) buildMember(ctx context.Context, in MemberInput) (*Member, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, errors.New("full name is required")
	}
	cpf := normalizeCPF(in.CPF)
	if cpf == "" {
		return nil, errors.New("CPF is required")
	}
	if len(cpf) != 11 {
		return nil, errors.New("CPF must have 11 digits")
	}

	entryDate := time.Now().UTC()
	if in.EntryDate != "" {
		parsed, err := time.Parse("2006-01-02", in.EntryDate)
		if err != nil {
			return nil, errors.New("invalid entry date format. Use YYYY-MM-DD")
		}
		entryDate = parsed
	}

	if in.PlanID != nil {
		if _, err := s.repo.GetPlanByID(ctx, *in.PlanID); err != nil {
			return nil, errors.New("plan not found")
		}
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}

	return &Member{
		FullName:  strings.TrimSpace(in.FullName),
		CPF:       cpf,
		Phone:     strings.TrimSpace(in.Phone),
		EntryDate: entryDate,
		PlanID:    in.PlanID,
		Status:    status,
		Notes:     in.Notes,
	}, nil
}

// normalizeCPF keeps only digits so "123.456.789-01" and "12345678901" index
// to the same row.
func normalizeCPF(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validatePlan(in PlanInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errors.New("plan name is required")
	case in.Price <= 0:
		return errors.New("plan price must be positive")
	case in.DurationMonths < 1:
		return errors.New("plan duration must be at least 1 month")
	}
	return nil
}

func (s *Service) logAction(ctx context.Context, operatorID *uint, action, ip string, details map[string]interface{}) {
	if s.AuditSvc == nil {
		return
	}
	s.AuditSvc.LogAction(ctx, operatorID, action, details, ip, "success")
}
