package attendance

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmf/gym-management-backend/internal/confirm"
	"github.com/viniciusmf/gym-management-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📄 Load a day - GET /attendance?date=YYYY-MM-DD&confirm=true
//
// Switching away from a day with unsaved edits needs confirm=true; without it
// the current session is returned untouched with a 409.
func (h *Handler) LoadDay(c *gin.Context) {
	operatorID, ok := operatorFromContext(c)
	if !ok {
		return
	}

	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	conf := confirm.FromFlag(c.Query("confirm") == "true")

	state, err := h.Service.LoadDay(c.Request.Context(), operatorID, date, conf)
	if err != nil {
		if errors.Is(err, ErrUnsavedChanges) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": state})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// ===========================
// 🎯 Toggle presence - POST /attendance/toggle
func (h *Handler) Toggle(c *gin.Context) {
	operatorID, ok := operatorFromContext(c)
	if !ok {
		return
	}

	var in struct {
		MemberID string `json:"member_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member_id is required"})
		return
	}

	state, err := h.Service.Toggle(operatorID, in.MemberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// ===========================
// 🛠 Save the session - POST /attendance/save
func (h *Handler) Save(c *gin.Context) {
	operatorID, ok := operatorFromContext(c)
	if !ok {
		return
	}

	state, plan, err := h.Service.Save(c.Request.Context(), operatorID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSession), errors.Is(err, ErrNothingToSave):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "attendance partially saved: " + err.Error(),
				"session": state,
				"plan":    plan,
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "attendance saved successfully",
		"session": state,
		"plan":    plan,
	})
}

// ===========================
// 📊 Weekly summary - GET /attendance/summary/weekly
func (h *Handler) WeeklySummary(c *gin.Context) {
	summary, err := h.Service.WeeklySummary(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load weekly summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func operatorFromContext(c *gin.Context) (uint, bool) {
	operatorID := middleware.OperatorIDFromContext(c)
	if operatorID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "operator not authenticated"})
		return 0, false
	}
	return *operatorID, true
}
