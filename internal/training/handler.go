package training

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
// 📄 List Sheets - GET /trainings?member_id=
func (h *Handler) ListSheets(c *gin.Context) {
	memberID := c.Query("member_id")
	if memberID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member_id query parameter is required"})
		return
	}

	sheets, err := h.Service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load training sheets"})
		return
	}

	c.JSON(http.StatusOK, sheets)
}

// ===========================
// 🔍 Get Sheet - GET /trainings/:id
func (h *Handler) GetSheet(c *gin.Context) {
	sheet, err := h.Service.GetSheet(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sheet)
}

// ===========================
// 🎯 Create Sheet - POST /trainings
func (h *Handler) CreateSheet(c *gin.Context) {
	var in SheetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	sheet, err := h.Service.CreateSheet(c.Request.Context(), in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sheet)
}

// ===========================
// ❌ Delete Sheet - DELETE /trainings/:id
func (h *Handler) DeleteSheet(c *gin.Context) {
	err := h.Service.DeleteSheet(c.Request.Context(), c.Param("id"),
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "training sheet deleted successfully"})
}
