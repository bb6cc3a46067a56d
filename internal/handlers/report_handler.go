package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pace/internal/pdf"
	"pace/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
	PDF     *pdf.ReportGenerator
}

func NewReportHandler(service *services.ReportService, gen *pdf.ReportGenerator) *ReportHandler {
	return &ReportHandler{Service: service, PDF: gen}
}

// @Summary      Сводная статистика
// @Description  Стрик, выполненные задачи и метрики здоровья за период; для free-тарифа период ограничен
// @Tags         Reports
// @Produce      json
// @Param        range  query     int  false  "Период в днях"  default(7)
// @Success      200    {object}  models.StatsReport
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/reports/stats [get]
func (h *ReportHandler) GetStats(c *gin.Context) {
	userID := getUserID(c)
	rangeDays, err := strconv.Atoi(c.DefaultQuery("range", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
		return
	}

	report, err := h.Service.GetSummary(c.Request.Context(), userID, rangeDays)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
			return
		}
		log.Printf("[report][stats][err] user=%s range=%d: %v", userID, rangeDays, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Календарь активности
// @Description  Heat-map по дням: тип дня, боль, процент выполненных задач
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  models.CalendarView
// @Failure      500  {object}  map[string]string
// @Router       /api/reports/calendar [get]
func (h *ReportHandler) GetCalendar(c *gin.Context) {
	userID := getUserID(c)

	view, err := h.Service.GetCalendar(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[report][calendar][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, view.Days)
}

// GET /api/reports/export?range=N — PDF со сводкой
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	userID := getUserID(c)
	rangeDays, err := strconv.Atoi(c.DefaultQuery("range", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
		return
	}

	report, err := h.Service.GetSummary(c.Request.Context(), userID, rangeDays)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
			return
		}
		log.Printf("[report][export][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	buf, err := h.PDF.RenderSummary(report)
	if err != nil {
		log.Printf("[report][export][pdf][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render pdf"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pace-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf)
}
