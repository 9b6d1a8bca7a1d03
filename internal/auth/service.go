package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/config"
	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
)

// Service wraps operator accounts and token issuing
type Service struct {
	Repo     *Repository
	Cfg      *config.Config
	AuditSvc auditlog.Service
}

func NewService(repo *Repository, cfg *config.Config, auditSvc auditlog.Service) *Service {
	return &Service{Repo: repo, Cfg: cfg, AuditSvc: auditSvc}
}

// ===========================
// 🎯 Register Operator
func (s *Service) Register(req *RegisterRequest, ip string) (*Operator, error) {
	role := req.Role
	if role == "" {
		role = "staff"
	}
	if role != "admin" && role != "staff" {
		return nil, errors.New("invalid role. Use admin or staff")
	}

	// The first account bootstraps the admin. After that, public
	// registration only mints staff; admin cannot be self-assigned.
	count, err := s.Repo.CountOperators()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = "admin"
	} else if role == "admin" {
		return nil, errors.New("admin accounts cannot be self-registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	op := &Operator{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.Repo.CreateOperator(op); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("email already registered")
		}
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &op.ID, "OPERATOR_REGISTERED", map[string]interface{}{
		"email": op.Email,
		"role":  op.Role,
	}, ip, "success")

	return op, nil
}

// ===========================
// 🔑 Login
func (s *Service) Login(req *LoginRequest, ip string) (*LoginResponse, error) {
	op, err := s.Repo.GetOperatorByEmail(req.Email)
	if err != nil {
		s.AuditSvc.LogAction(context.Background(), nil, "OPERATOR_LOGIN", map[string]interface{}{
			"email": req.Email,
			"error": "unknown email",
		}, ip, "failure")
		return nil, errors.New("invalid credentials")
	}

	if !op.IsActive {
		return nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		s.AuditSvc.LogAction(context.Background(), &op.ID, "OPERATOR_LOGIN", map[string]interface{}{
			"email": req.Email,
			"error": "wrong password",
		}, ip, "failure")
		return nil, errors.New("invalid credentials")
	}

	token, err := s.issueAccessToken(op)
	if err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &op.ID, "OPERATOR_LOGIN", map[string]interface{}{
		"email": op.Email,
	}, ip, "success")

	return &LoginResponse{AccessToken: token, Operator: *op}, nil
}

// GetOperatorByID resolves a token subject to its operator row
func (s *Service) GetOperatorByID(id uint) (*Operator, error) {
	return s.Repo.GetOperatorByID(id)
}

func (s *Service) issueAccessToken(op *Operator) (string, error) {
	claims := jwt.MapClaims{
		"operator_id": op.ID,
		"role":        op.Role,
		"exp":         time.Now().Add(time.Duration(s.Cfg.JWTAccessTTLHours) * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Cfg.JWTAccessSecret))
}
