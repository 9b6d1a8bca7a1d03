package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmf/gym-management-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📄 List Payments - GET /payments?member_id=&status=
func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.Service.List(c.Request.Context(), c.Query("member_id"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ===========================
// 🔍 Get Payment - GET /payments/:id
func (h *Handler) GetPayment(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ===========================
// 🎯 Record Payment - POST /payments
func (h *Handler) RecordPayment(c *gin.Context) {
	var in PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	p, err := h.Service.Record(c.Request.Context(), in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ===========================
// 🛠 Update Payment - PUT /payments/:id
func (h *Handler) UpdatePayment(c *gin.Context) {
	var in PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	p, err := h.Service.Update(c.Request.Context(), c.Param("id"), in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ===========================
// ❌ Delete Payment - DELETE /payments/:id
func (h *Handler) DeletePayment(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("id"),
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment deleted successfully"})
}

// ===========================
// 💳 Start Online Payment - POST /payments/start
func (h *Handler) StartPayment(c *gin.Context) {
	var req StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	res, err := h.Service.Start(c.Request.Context(), req,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res, "success": true})
}

// ===========================
// ✅ Verify Payment Signature - POST /payments/verify
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	p, err := h.Service.Verify(c.Request.Context(), req,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": p, "success": true})
}

// ===========================
// 🧾 Receipt PDF - GET /payments/:id/receipt
func (h *Handler) DownloadReceipt(c *gin.Context) {
	data, filename, err := h.Service.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
