package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/nkamgang/scolaris-api/pkg/logger"
)

const (
	dashboardOverviewKey = "dashboard:overview"
	dashboardTrendKey    = "dashboard:trend"
	dashboardCacheTTL    = 15 * time.Minute
)

// DashboardService aggregates the admin landing-page numbers, cached with a
// short TTL so the dashboard does not re-scan the ledger on every load.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	receiptRepo   repository.ReceiptRepository
	studentRepo   repository.StudentRepository
	teacherRepo   repository.TeacherRepository
	classRepo     repository.ClassRepository
}

func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	receiptRepo repository.ReceiptRepository,
	studentRepo repository.StudentRepository,
	teacherRepo repository.TeacherRepository,
	classRepo repository.ClassRepository,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		receiptRepo:   receiptRepo,
		studentRepo:   studentRepo,
		teacherRepo:   teacherRepo,
		classRepo:     classRepo,
	}
}

// Overview returns the cached dashboard aggregate, recomputing on a miss
func (s *DashboardService) Overview(ctx context.Context, academicYear string) (*models.DashboardOverview, error) {
	cacheKey := dashboardOverviewKey + ":" + academicYear

	if cached, err := s.dashboardRepo.GetCache(ctx, cacheKey); err == nil && cached != nil {
		var overview models.DashboardOverview
		if err := json.Unmarshal(cached.Data, &overview); err == nil {
			return &overview, nil
		}
	}

	overview, err := s.computeOverview(ctx, academicYear)
	if err != nil {
		return nil, err
	}

	if err := s.dashboardRepo.SetCache(ctx, cacheKey, overview, dashboardCacheTTL); err != nil {
		logger.Warn("failed to cache dashboard overview", "error", err)
	}
	return overview, nil
}

// MonthlyTrend returns collection totals bucketed by month, cached
func (s *DashboardService) MonthlyTrend(ctx context.Context, academicYear string) ([]models.RevenuePoint, error) {
	cacheKey := dashboardTrendKey + ":" + academicYear

	if cached, err := s.dashboardRepo.GetCache(ctx, cacheKey); err == nil && cached != nil {
		var points []models.RevenuePoint
		if err := json.Unmarshal(cached.Data, &points); err == nil {
			return points, nil
		}
	}

	points, err := s.receiptRepo.MonthlyCollected(ctx, academicYear)
	if err != nil {
		return nil, err
	}

	if err := s.dashboardRepo.SetCache(ctx, cacheKey, points, dashboardCacheTTL); err != nil {
		logger.Warn("failed to cache monthly trend", "error", err)
	}
	return points, nil
}

// RefreshCache recomputes and stores both aggregates for the current year.
// Runs as a scheduled job.
func (s *DashboardService) RefreshCache(ctx context.Context) error {
	academicYear := models.CurrentAcademicYear()

	overview, err := s.computeOverview(ctx, academicYear)
	if err != nil {
		return err
	}
	if err := s.dashboardRepo.SetCache(ctx, dashboardOverviewKey+":"+academicYear, overview, dashboardCacheTTL); err != nil {
		return err
	}

	points, err := s.receiptRepo.MonthlyCollected(ctx, academicYear)
	if err != nil {
		return err
	}
	if err := s.dashboardRepo.SetCache(ctx, dashboardTrendKey+":"+academicYear, points, dashboardCacheTTL); err != nil {
		return err
	}

	return s.dashboardRepo.CleanExpiredCache(ctx)
}

func (s *DashboardService) computeOverview(ctx context.Context, academicYear string) (*models.DashboardOverview, error) {
	studentCount, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	teacherCount, err := s.teacherRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	classCount, err := s.classRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCollected, err := s.receiptRepo.SumPaidByYear(ctx, academicYear)
	if err != nil {
		return nil, err
	}
	totalOutstanding, err := s.receiptRepo.SumLatestRemaining(ctx, academicYear)
	if err != nil {
		return nil, err
	}
	lateCount, err := s.receiptRepo.CountByStatus(ctx, models.ReceiptStatusLate)
	if err != nil {
		return nil, err
	}
	pendingCount, err := s.receiptRepo.CountByStatus(ctx, models.ReceiptStatusPending)
	if err != nil {
		return nil, err
	}

	return &models.DashboardOverview{
		AcademicYear:     academicYear,
		StudentCount:     studentCount,
		TeacherCount:     teacherCount,
		ClassCount:       classCount,
		TotalCollected:   totalCollected,
		TotalOutstanding: totalOutstanding,
		LateReceipts:     lateCount,
		PendingReceipts:  pendingCount,
	}, nil
}
