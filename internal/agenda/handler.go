package agenda

import (
	"net/http"
	"strconv"

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
// 📄 List Events - GET /agenda?status=all|active|denied&search=
func (h *Handler) ListEvents(c *gin.Context) {
	statusFilter := c.DefaultQuery("status", "all")
	search := c.Query("search")

	events, err := h.Service.Events(c.Request.Context(), statusFilter, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// ===========================
// 🎯 Create Event - POST /agenda
func (h *Handler) CreateEvent(c *gin.Context) {
	var in EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	res := h.Service.Create(c.Request.Context(), in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	respond(c, res, http.StatusCreated)
}

// ===========================
// 🛠 Edit Event - PUT /agenda/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	var in EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	res := h.Service.Edit(c.Request.Context(), id, in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	respond(c, res, http.StatusOK)
}

// ===========================
// 🟠 Move Event - PATCH /agenda/:id/slot
func (h *Handler) MoveEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	var in MoveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	res := h.Service.Move(c.Request.Context(), id, in,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	respond(c, res, http.StatusOK)
}

// ===========================
// 🚫 Deny Event - PATCH /agenda/:id/deny
func (h *Handler) DenyEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	res := h.Service.Deny(c.Request.Context(), id,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	respond(c, res, http.StatusOK)
}

// ===========================
// ❌ Delete Event - DELETE /agenda/:id?confirm=true
//
// The client shows its own dialog and sends the answer as the confirm flag;
// the engine still refuses to act without it.
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	conf := confirm.FromFlag(c.Query("confirm") == "true")
	res := h.Service.Delete(c.Request.Context(), id, conf,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	respond(c, res, http.StatusOK)
}

func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

func respond(c *gin.Context, res Result, okStatus int) {
	switch res.Code {
	case ResultCommitted:
		c.JSON(okStatus, res)
	case ResultDeclined:
		c.JSON(http.StatusOK, res)
	case ResultRejectedValidation:
		c.JSON(http.StatusBadRequest, res)
	case ResultRejectedConflict, ResultRolledBackConflict:
		c.JSON(http.StatusConflict, res)
	default:
		c.JSON(http.StatusInternalServerError, res)
	}
}
