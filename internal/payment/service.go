package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/config"
	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
	"github.com/viniciusmf/gym-management-backend/internal/member"
)

type Service struct {
	repo       *Repository
	memberRepo *member.Repository
	client     *razorpay.Client
	cfg        *config.Config
	AuditSvc   auditlog.Service
	log        *logrus.Logger
}

func NewService(repo *Repository, memberRepo *member.Repository, cfg *config.Config, auditSvc auditlog.Service, log *logrus.Logger) *Service {
	client := razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	return &Service{
		repo:       repo,
		memberRepo: memberRepo,
		client:     client,
		cfg:        cfg,
		AuditSvc:   auditSvc,
		log:        log,
	}
}

// ===========================
// 📄 List / Get
func (s *Service) List(ctx context.Context, memberID, status string) ([]Payment, error) {
	if status != "" {
		if _, err := parseStatus(status); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, memberID, Status(status))
}

func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, err
	}
	return p, nil
}

// ===========================
// 🎯 Record a manual payment (cash / pix at the front desk)
func (s *Service) Record(ctx context.Context, in PaymentInput, operatorID *uint, ip string) (*Payment, error) {
	p, err := s.buildPayment(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("could not record payment: %w", err)
	}

	s.logAction(ctx, operatorID, "PAYMENT_RECORDED", ip, "success", map[string]interface{}{
		"payment_id": p.ID,
		"member_id":  p.MemberID,
		"amount":     p.Amount,
		"status":     p.Status,
	})
	return p, nil
}

// ===========================
// 🛠 Update a payment
func (s *Service) Update(ctx context.Context, id string, in PaymentInput, operatorID *uint, ip string) (*Payment, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.buildPayment(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.OrderID = existing.OrderID
	p.RazorpayPayID = existing.RazorpayPayID
	p.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("could not update payment: %w", err)
	}

	s.logAction(ctx, operatorID, "PAYMENT_UPDATED", ip, "success", map[string]interface{}{
		"payment_id": id,
	})
	return p, nil
}

// ===========================
// ❌ Delete a payment
func (s *Service) Delete(ctx context.Context, id string, operatorID *uint, ip string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete payment: %w", err)
	}
	s.logAction(ctx, operatorID, "PAYMENT_DELETED", ip, "success", map[string]interface{}{
		"payment_id": id,
	})
	return nil
}

// ===========================
// 💳 Start an online payment: creates a Razorpay order and a pending row
func (s *Service) Start(ctx context.Context, req StartPaymentRequest, operatorID *uint, ip string) (*StartPaymentResponse, error) {
	if req.MemberID == "" {
		return nil, errors.New("member_id is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	m, err := s.memberRepo.GetMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, errors.New("member not found")
	}

	amountInPaise := int(req.Amount * 100)
	data := map[string]interface{}{
		"amount":          amountInPaise,
		"currency":        "INR",
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"member_id":   m.ID,
			"member_name": m.FullName,
		},
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		s.logAction(ctx, operatorID, "PAYMENT_INITIATED", ip, "failure", map[string]interface{}{
			"member_id": req.MemberID,
			"amount":    req.Amount,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, errors.New("unable to extract order_id from Razorpay response")
	}

	p := &Payment{
		MemberID:        req.MemberID,
		Amount:          req.Amount,
		NextPaymentDate: time.Now().UTC().AddDate(0, 1, 0),
		Status:          StatusPending,
		OrderID:         orderID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("could not create pending payment: %w", err)
	}

	s.logAction(ctx, operatorID, "PAYMENT_INITIATED", ip, "success", map[string]interface{}{
		"payment_id": p.ID,
		"order_id":   orderID,
		"amount":     req.Amount,
	})

	return &StartPaymentResponse{
		PaymentID: p.ID,
		OrderID:   orderID,
		Amount:    req.Amount,
		Currency:  "INR",
	}, nil
}

// ===========================
// ✅ Verify the Razorpay signature and mark the payment paid
func (s *Service) Verify(ctx context.Context, req VerifyPaymentRequest, operatorID *uint, ip string) (*Payment, error) {
	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.logAction(ctx, operatorID, "PAYMENT_VERIFIED", ip, "failure", map[string]interface{}{
			"order_id": req.RazorpayOrderID,
			"error":    "invalid signature",
		})
		return nil, errors.New("invalid payment signature")
	}

	p, err := s.repo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, errors.New("payment not found for order")
	}

	now := time.Now().UTC()
	p.Status = StatusPaid
	p.PaymentDate = &now
	p.RazorpayPayID = &req.RazorpayPaymentID
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("could not mark payment paid: %w", err)
	}

	s.logAction(ctx, operatorID, "PAYMENT_VERIFIED", ip, "success", map[string]interface{}{
		"payment_id": p.ID,
		"order_id":   req.RazorpayOrderID,
	})
	return p, nil
}

func (s *Service) verifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.cfg.RazorpaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ===========================
// 🧾 Receipt PDF
func (s *Service) Receipt(ctx context.Context, id string) ([]byte, string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p.Status != StatusPaid {
		return nil, "", errors.New("receipts are only available for paid payments")
	}

	m, err := s.memberRepo.GetMemberByID(ctx, p.MemberID)
	if err != nil {
		return nil, "", errors.New("member not found")
	}

	data, err := buildReceiptPDF(p, m)
	if err != nil {
		return nil, "", fmt.Errorf("could not render receipt: %w", err)
	}
	filename := fmt.Sprintf("receipt_%s.pdf", p.ID)
	return data, filename, nil
}

// ===========================
// 🕛 Overdue sweep (runs daily via cron)
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	flipped, err := s.repo.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.log.WithError(err).Error("overdue sweep failed")
		return 0, err
	}
	if flipped > 0 {
		s.log.WithField("count", flipped).Info("payments marked overdue")
		s.logAction(ctx, nil, "PAYMENTS_MARKED_OVERDUE", "", "success", map[string]interface{}{
			"count": flipped,
		})
	}
	return flipped, nil
}

// ===========================
// internal helpers

func (s *Service) buildPayment(ctx context.Context, in PaymentInput) (*Payment, error) {
	if in.MemberID == "" {
		return nil, errors.New("member_id is required")
	}
	if in.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if _, err := s.memberRepo.GetMemberByID(ctx, in.MemberID); err != nil {
		return nil, errors.New("member not found")
	}

	status := StatusPending
	if in.Status != "" {
		parsed, err := parseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	var paymentDate *time.Time
	if in.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", in.PaymentDate)
		if err != nil {
			return nil, errors.New("invalid payment date format. Use YYYY-MM-DD")
		}
		paymentDate = &parsed
	}

	if in.NextPaymentDate == "" {
		return nil, errors.New("next payment date is required")
	}
	nextDate, err := time.Parse("2006-01-02", in.NextPaymentDate)
	if err != nil {
		return nil, errors.New("invalid next payment date format. Use YYYY-MM-DD")
	}

	return &Payment{
		MemberID:        in.MemberID,
		Amount:          in.Amount,
		PaymentDate:     paymentDate,
		NextPaymentDate: nextDate,
		Status:          status,
	}, nil
}

func parseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPaid, StatusPending, StatusOverdue:
		return Status(raw), nil
	default:
		return "", errors.New("invalid status. Use paid, pending or overdue")
	}
}

func (s *Service) logAction(ctx context.Context, operatorID *uint, action, ip, status string, details map[string]interface{}) {
	if s.AuditSvc == nil {
		return
	}
	s.AuditSvc.LogAction(ctx, operatorID, action, details, ip, status)
}
