package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timecard-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Caller's own month
	GetMyMonthlySummary(w http.ResponseWriter, r *http.Request)

	// Every user's month, admin only
	GetAllAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func monthlyReportRequest(r *http.Request) (report.MonthlyReportRequest, error) {
	year, month, err := monthQuery(r, time.Now())
	if err != nil {
		return report.MonthlyReportRequest{}, err
	}
	return report.MonthlyReportRequest{Year: year, Month: month}, nil
}

// GetMyMonthlySummary handles GET /attendance/monthly
func (h *reportHandlerImpl) GetMyMonthlySummary(w http.ResponseWriter, r *http.Request) {
	req, err := monthlyReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GetMyMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetAllAttendance handles GET /admin/attendance
func (h *reportHandlerImpl) GetAllAttendance(w http.ResponseWriter, r *http.Request) {
	req, err := monthlyReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GetAllAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
