package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
	"github.com/viniciusmf/gym-management-backend/internal/member"
)

type Service struct {
	repo       *Repository
	memberRepo *member.Repository
	AuditSvc   auditlog.Service
}

func NewService(repo *Repository, memberRepo *member.Repository, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, memberRepo: memberRepo, AuditSvc: auditSvc}
}

// ===========================
// 📄 List Sheets for a member (newest first)
func (s *Service) ListByMember(ctx context.Context, memberID string) ([]Sheet, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *Service) GetSheet(ctx context.Context, id string) (*Sheet, error) {
	sheet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("training sheet not found")
		}
		return nil, err
	}
	return sheet, nil
}

// ===========================
// 🎯 Create Sheet
func (s *Service) CreateSheet(ctx context.Context, in SheetInput, operatorID *uint, ip string) (*Sheet, error) {
	if in.MemberID == "" {
		return nil, errors.New("select a member for the training sheet")
	}
	payload, err := buildExercises(in.Exercises)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.GetMemberByID(ctx, in.MemberID); err != nil {
		return nil, errors.New("member not found")
	}

	sheet := &Sheet{MemberID: in.MemberID, Exercises: payload}
	if err := s.repo.Create(ctx, sheet); err != nil {
		return nil, fmt.Errorf("could not save training sheet: %w", err)
	}

	s.logAction(ctx, operatorID, "TRAINING_SHEET_CREATED", ip, map[string]interface{}{
		"sheet_id":  sheet.ID,
		"member_id": sheet.MemberID,
	})
	return sheet, nil
}

// ===========================
// ❌ Delete Sheet
func (s *Service) DeleteSheet(ctx context.Context, id string, operatorID *uint, ip string) error {
	sheet, err := s.GetSheet(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete training sheet: %w", err)
	}
	s.logAction(ctx, operatorID, "TRAINING_SHEET_DELETED", ip, map[string]interface{}{
		"sheet_id":  id,
		"member_id": sheet.MemberID,
	})
	return nil
}

// ===========================
// internal helpers

// buildExercises validates the grouped rows and flattens them into the
// stored JSON document. Series and load stay free-text; only the exercise
// name is mandatory per row.
func buildExercises(groups map[string][]ExerciseEntry) (datatypes.JSON, error) {
	if len(groups) == 0 {
		return nil, errors.New("the sheet needs at least one exercise group")
	}
	total := 0
	for group, entries := range groups {
		if strings.TrimSpace(group) == "" {
			return nil, errors.New("exercise group names cannot be empty")
		}
		for _, e := range entries {
			if strings.TrimSpace(e.Exercise) == "" {
				return nil, fmt.Errorf("group %q has an exercise without a name", group)
			}
			total++
		}
	}
	if total == 0 {
		return nil, errors.New("the sheet needs at least one exercise")
	}

	raw, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("could not encode exercises: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func (s *Service) logAction(ctx context.Context, operatorID *uint, action, ip string, details map[string]interface{}) {
	if s.AuditSvc == nil {
		return
	}
	s.AuditSvc.LogAction(ctx, operatorID, action, details, ip, "success")
}
