package services

import (
	"context"
	"fmt"

	"github.com/yigit/unisession/internal/app/models"
)

// ReportService defines the interface for aggregate reports
type ReportService interface {
	StudentsPerFaculty(ctx context.Context) ([]*models.FacultyStats, error)
}

type reportServiceImpl struct {
	reportRepo ReportStore
}

// NewReportService creates a new report service instance
func NewReportService(reportRepo ReportStore) ReportService {
	return &reportServiceImpl{reportRepo: reportRepo}
}

// StudentsPerFaculty totals students per faculty name
func (s *reportServiceImpl) StudentsPerFaculty(ctx context.Context) ([]*models.FacultyStats, error) {
	stats, err := s.reportRepo.StudentsPerFaculty(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing students per faculty: %w", err)
	}
	return stats, nil
}
