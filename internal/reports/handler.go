package reports

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
// 📄 Export Report - GET /reports/:type?format=csv|excel|pdf&start=&end=&status=
func (h *Handler) ExportReport(c *gin.Context) {
	reportType := c.Param("type")
	format := c.DefaultQuery("format", FormatCSV)

	filters, err := ParseFilters(c.Query("start"), c.Query("end"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, filename, contentType, err := h.Service.Export(c.Request.Context(), reportType, format, filters,
		middleware.OperatorIDFromContext(c), middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
