package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// ShiftService manages staff work periods and drawer counts.
type ShiftService interface {
	// Open starts a shift with an opening cash count. A staff member may have
	// at most one open shift.
	Open(ctx context.Context, openingCashCentavos int64) (*domain.Shift, error)

	// Close ends the actor's open shift, recording the counted closing cash
	// and the cash the drawer should hold.
	Close(ctx context.Context, closingCashCentavos, expectedCashCentavos int64) (*domain.Shift, error)

	// Current returns the actor's open shift.
	Current(ctx context.Context) (*domain.Shift, error)
}

type shiftService struct {
	repo   repository.Querier
	logger *slog.Logger
}

// NewShiftService creates a new ShiftService instance.
func NewShiftService(repo repository.Querier, logger *slog.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) Open(ctx context.Context, openingCashCentavos int64) (*domain.Shift, error) {
	const op = "shift.open"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return nil, err
	}

	if openingCashCentavos < 0 {
		return nil, domain.Invalid(op, "opening cash cannot be negative")
	}

	if _, err := s.repo.GetOpenShift(ctx, pgUUID(actor.ID)); err == nil {
		return nil, domain.ErrShiftAlreadyOpen
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, op, "failed to check for open shift")
	}

	shift, err := s.repo.CreateShift(ctx, repository.CreateShiftParams{
		StaffID:             pgUUID(actor.ID),
		OpeningCashCentavos: openingCashCentavos,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to open shift")
	}

	s.logger.Info("shift opened",
		slog.String("staff_id", actor.ID.String()),
		slog.Int64("opening_cash_centavos", openingCashCentavos))

	return &shift, nil
}

func (s *shiftService) Close(ctx context.Context, closingCashCentavos, expectedCashCentavos int64) (*domain.Shift, error) {
	const op = "shift.close"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return nil, err
	}

	if closingCashCentavos < 0 || expectedCashCentavos < 0 {
		return nil, domain.Invalid(op, "cash counts cannot be negative")
	}

	open, err := s.repo.GetOpenShift(ctx, pgUUID(actor.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoOpenShift
		}
		return nil, domain.Internal(err, op, "failed to look up shift")
	}

	shift, err := s.repo.CloseShift(ctx, repository.CloseShiftParams{
		ID:                   open.ID,
		ClosingCashCentavos:  closingCashCentavos,
		ExpectedCashCentavos: expectedCashCentavos,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoOpenShift
		}
		return nil, domain.Internal(err, op, "failed to close shift")
	}

	variance := closingCashCentavos - expectedCashCentavos
	s.logger.Info("shift closed",
		slog.String("staff_id", actor.ID.String()),
		slog.Int64("closing_cash_centavos", closingCashCentavos),
		slog.Int64("variance_centavos", variance))

	return &shift, nil
}

func (s *shiftService) Current(ctx context.Context) (*domain.Shift, error) {
	const op = "shift.current"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return nil, err
	}

	shift, err := s.repo.GetOpenShift(ctx, pgUUID(actor.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoOpenShift
		}
		return nil, domain.Internal(err, op, "failed to look up shift")
	}
	return &shift, nil
}
