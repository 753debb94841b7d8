package service

import (
	"context"
	"time"

	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// ReportService provides back-office sales reporting. Reports combine online
// orders (excluding cancelled) and POS transactions.
type ReportService interface {
	// DailySales returns per-day totals over [from, to].
	DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error)

	// TopProducts returns the best sellers by quantity over [from, to].
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProduct, error)
}

type reportService struct {
	repo repository.Querier
}

// NewReportService creates a new ReportService instance.
func NewReportService(repo repository.Querier) ReportService {
	return &reportService{repo: repo}
}

const maxReportRange = 366 * 24 * time.Hour

func validateRange(op string, from, to time.Time) error {
	if to.Before(from) {
		return domain.Invalid(op, "end of range is before its start")
	}
	if to.Sub(from) > maxReportRange {
		return domain.Invalid(op, "range cannot exceed one year")
	}
	return nil
}

func (s *reportService) DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error) {
	const op = "report.daily_sales"

	if _, err := domain.RequireStaff(ctx, op); err != nil {
		return nil, err
	}
	if err := validateRange(op, from, to); err != nil {
		return nil, err
	}

	rows, err := s.repo.DailySales(ctx, repository.ReportRangeParams{From: from, To: to})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to compute daily sales")
	}
	return rows, nil
}

func (s *reportService) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProduct, error) {
	const op = "report.top_products"

	if _, err := domain.RequireStaff(ctx, op); err != nil {
		return nil, err
	}
	if err := validateRange(op, from, to); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := s.repo.TopProducts(ctx, repository.TopProductsParams{
		From:  from,
		To:    to,
		Limit: int32(limit),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to compute top products")
	}
	return rows, nil
}
