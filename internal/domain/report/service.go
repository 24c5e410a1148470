package report

import "context"

// ReportService defines monthly hours reporting.
type ReportService interface {
	// GetMyMonthlySummary aggregates the caller's own month
	GetMyMonthlySummary(ctx context.Context, req MonthlyReportRequest) (UserMonthlyReport, error)

	// GetAllAttendance aggregates the month for every user. Admin only
	GetAllAttendance(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
}
