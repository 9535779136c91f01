package service

import (
	"context"

	"skybook/internal/models"
)

// ReportService serves the read-only ops dashboard.
type ReportService struct {
	reports ReportStore
}

func NewReportService(reports ReportStore) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	return s.reports.Dashboard(ctx)
}

func (s *ReportService) FlightOccupancy(ctx context.Context) ([]models.FlightOccupancy, error) {
	return s.reports.FlightOccupancy(ctx)
}
