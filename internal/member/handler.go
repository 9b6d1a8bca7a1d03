package member

import (
	"net/http"
	"strconv"

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
// 📄 List Members - GET /members?search=&active=true
func (h *Handler) ListMembers(c *gin.Context) {
	search := c.Query("search")
	activeOnly := c.Query("active") == "true"

	members, err := h.Service.ListMembers(c.Request.Context(), search, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// ===========================
// 🔍 Get Member - GET /members/:id
func (h *Handler) GetMember(c *gin.Context) {
	m, err := h.Service.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// 🎯 Create Member - POST /members
func (h *Handler) CreateMember(c *gin.Context) {
	var in MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	m, err := h.Service.CreateMember(c.Request.Context(), in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ===========================
// 🛠 Update Member - PUT /members/:id
func (h *Handler) UpdateMember(c *gin.Context) {
	var in MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	m, err := h.Service.UpdateMember(c.Request.Context(), c.Param("id"), in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// 🟠 Toggle Member Status - PATCH /members/:id/status
func (h *Handler) ToggleMemberStatus(c *gin.Context) {
	m, err := h.Service.ToggleMemberStatus(c.Request.Context(), c.Param("id"),
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ===========================
// ❌ Delete Member - DELETE /members/:id
func (h *Handler) DeleteMember(c *gin.Context) {
	err := h.Service.DeleteMember(c.Request.Context(), c.Param("id"),
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member deleted successfully"})
}

// ===========================
// 📄 List Plans - GET /plans
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.Service.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// ===========================
// 🎯 Create Plan - POST /plans
func (h *Handler) CreatePlan(c *gin.Context) {
	var in PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	p, err := h.Service.CreatePlan(c.Request.Context(), in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ===========================
// 🛠 Update Plan - PUT /plans/:id
func (h *Handler) UpdatePlan(c *gin.Context) {
	id, ok := planIDParam(c)
	if !ok {
		return
	}

	var in PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	p, err := h.Service.UpdatePlan(c.Request.Context(), id, in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ===========================
// ❌ Delete Plan - DELETE /plans/:id
func (h *Handler) DeletePlan(c *gin.Context) {
	id, ok := planIDParam(c)
	if !ok {
		return
	}

	err := h.Service.DeletePlan(c.Request.Context(), id,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "plan deleted successfully"})
}

func planIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return 0, false
	}
	return uint(id), true
}
