package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

func TestShiftOpen_RejectsSecondOpenShift(t *testing.T) {
	store := &mockStore{
		GetOpenShiftFn: func(context.Context, pgtype.UUID) (domain.Shift, error) {
			return domain.Shift{ID: newUUID(), Open: true}, nil
		},
	}
	svc := NewShiftService(store, discardLogger())

	_, err := svc.Open(staffContext(uuid.New()), 500000)

	if err != domain.ErrShiftAlreadyOpen {
		t.Fatalf("Open() error = %v, want ErrShiftAlreadyOpen", err)
	}
}

func TestShiftOpen_RecordsOpeningCash(t *testing.T) {
	var created *repository.CreateShiftParams
	store := &mockStore{
		GetOpenShiftFn: func(context.Context, pgtype.UUID) (domain.Shift, error) {
			return domain.Shift{}, pgx.ErrNoRows
		},
		CreateShiftFn: func(_ context.Context, arg repository.CreateShiftParams) (domain.Shift, error) {
			created = &arg
			return domain.Shift{ID: newUUID(), StaffID: arg.StaffID, OpeningCashCentavos: arg.OpeningCashCentavos, Open: true}, nil
		},
	}
	svc := NewShiftService(store, discardLogger())

	shift, err := svc.Open(staffContext(uuid.New()), 500000)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if created == nil || created.OpeningCashCentavos != 500000 {
		t.Errorf("created = %v, want opening cash 500000", created)
	}
	if !shift.Open {
		t.Error("shift should be open")
	}
}

func TestShiftOpen_RejectsNegativeCash(t *testing.T) {
	svc := NewShiftService(&mockStore{}, discardLogger())

	_, err := svc.Open(staffContext(uuid.New()), -1)

	if domain.ErrorCode(err) != domain.EINVALID {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
}

func TestShiftClose_NoOpenShift(t *testing.T) {
	store := &mockStore{
		GetOpenShiftFn: func(context.Context, pgtype.UUID) (domain.Shift, error) {
			return domain.Shift{}, pgx.ErrNoRows
		},
	}
	svc := NewShiftService(store, discardLogger())

	_, err := svc.Close(staffContext(uuid.New()), 450000, 470000)

	if err != domain.ErrNoOpenShift {
		t.Fatalf("Close() error = %v, want ErrNoOpenShift", err)
	}
}

func TestShiftClose_RecordsCounts(t *testing.T) {
	open := domain.Shift{ID: newUUID(), Open: true}
	var closed *repository.CloseShiftParams
	store := &mockStore{
		GetOpenShiftFn: func(context.Context, pgtype.UUID) (domain.Shift, error) {
			return open, nil
		},
		CloseShiftFn: func(_ context.Context, arg repository.CloseShiftParams) (domain.Shift, error) {
			closed = &arg
			return domain.Shift{
				ID:                   arg.ID,
				ClosingCashCentavos:  arg.ClosingCashCentavos,
				ExpectedCashCentavos: arg.ExpectedCashCentavos,
			}, nil
		},
	}
	svc := NewShiftService(store, discardLogger())

	shift, err := svc.Close(staffContext(uuid.New()), 450000, 470000)
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if closed == nil || closed.ID != open.ID {
		t.Errorf("closed = %v, want shift %v", closed, open.ID)
	}
	if shift.ClosingCashCentavos != 450000 || shift.ExpectedCashCentavos != 470000 {
		t.Errorf("counts = %d/%d, want 450000/470000", shift.ClosingCashCentavos, shift.ExpectedCashCentavos)
	}
}

func TestShift_StaffOnly(t *testing.T) {
	svc := NewShiftService(&mockStore{}, discardLogger())

	_, err := svc.Open(customerContext(uuid.New()), 0)

	if domain.ErrorCode(err) != domain.EFORBIDDEN {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EFORBIDDEN)
	}
}
