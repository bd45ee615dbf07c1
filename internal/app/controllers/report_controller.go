package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/app/services"
	"github.com/yigit/unisession/internal/middleware"
)

// ReportController serves aggregate reports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// StudentsPerFaculty totals students per faculty
// @Summary Students per faculty
// @Description Sums num_students of every group per faculty. Faculties without groups are omitted.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.FacultyStats}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/students-per-faculty/ [get]
func (c *ReportController) StudentsPerFaculty(ctx *gin.Context) {
	stats, err := c.reportService.StudentsPerFaculty(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
