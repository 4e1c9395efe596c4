package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/institute/internal/app/services"
	"github.com/yigit/institute/internal/middleware"
)

// ReportController serves aggregate reports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// StudentReport lists every student with batch name and enrollment count
// @Summary Student report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentReportDTO} "Report generated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /reports/students [get]
func (c *ReportController) StudentReport(ctx *gin.Context) {
	rows, err := c.reportService.StudentReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, rows, "")
}
