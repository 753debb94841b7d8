package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// ProofInput is a customer-submitted payment reference.
type ProofInput struct {
	OrderID         string `json:"order_id" validate:"required,uuid"`
	Method          string `json:"method" validate:"required"`
	ReferenceNumber string `json:"reference_number" validate:"required,max=64"`
}

// ReviewInput is a staff decision on a pending proof.
type ReviewInput struct {
	ProofID string `json:"proof_id" validate:"required,uuid"`
	Approve bool   `json:"approve"`
	Notes   string `json:"notes" validate:"max=500"`
}

// PaymentProofService handles payment references for gcash/maya/bank
// transfer orders and their staff review.
type PaymentProofService interface {
	// Submit records a payment reference for the actor's own unpaid order.
	// Only one pending proof may exist per order.
	Submit(ctx context.Context, input ProofInput) (*domain.PaymentProof, error)

	// Review verifies or rejects a pending proof. Verification marks the
	// order paid; rejection marks the payment failed. Staff only.
	Review(ctx context.Context, input ReviewInput) (*domain.PaymentProof, error)
}

type paymentProofService struct {
	store  repository.TxStore
	logger *slog.Logger
}

// NewPaymentProofService creates a new PaymentProofService instance.
func NewPaymentProofService(store repository.TxStore, logger *slog.Logger) PaymentProofService {
	return &paymentProofService{store: store, logger: logger}
}

func (s *paymentProofService) Submit(ctx context.Context, input ProofInput) (*domain.PaymentProof, error) {
	const op = "payment.submit_proof"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	if !domain.ValidPaymentMethod(input.Method) || input.Method == domain.PaymentMethodCashOnDelivery {
		return nil, domain.Invalid(op, fmt.Sprintf("payment method %q does not take a proof", input.Method))
	}

	orderID, err := parseUUID(input.OrderID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid order ID")
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, op, "failed to load order")
	}
	if order.CustomerID != pgUUID(actor.ID) {
		return nil, domain.ErrOrderNotFound
	}
	if order.PaymentStatus == domain.PaymentStatusPaid {
		return nil, domain.Conflict(op, "order is already paid")
	}

	pending, err := s.store.HasPendingProof(ctx, order.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to check for pending proof")
	}
	if pending {
		return nil, domain.ErrProofAlreadySubmitted
	}

	var proof domain.PaymentProof
	err = s.store.WithTx(ctx, func(q repository.Querier) error {
		proof, err = q.CreatePaymentProof(ctx, repository.CreatePaymentProofParams{
			OrderID:         order.ID,
			Method:          input.Method,
			ReferenceNumber: input.ReferenceNumber,
			SubmittedBy:     pgUUID(actor.ID),
		})
		if err != nil {
			return fmt.Errorf("create proof: %w", err)
		}
		return q.UpdateOrderPaymentStatus(ctx, repository.UpdateOrderPaymentStatusParams{
			ID:            order.ID,
			PaymentStatus: domain.PaymentStatusPending,
		})
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to submit proof")
	}

	s.logger.Info("payment proof submitted",
		slog.String("order_number", order.OrderNumber),
		slog.String("method", input.Method))

	return &proof, nil
}

func (s *paymentProofService) Review(ctx context.Context, input ReviewInput) (*domain.PaymentProof, error) {
	const op = "payment.review_proof"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return nil, err
	}

	proofID, err := parseUUID(input.ProofID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid proof ID")
	}

	proof, err := s.store.GetPaymentProof(ctx, proofID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProofNotFound
		}
		return nil, domain.Internal(err, op, "failed to load proof")
	}
	if proof.Status != domain.ProofStatusPending {
		return nil, domain.ErrProofAlreadyResolved
	}

	status := domain.ProofStatusRejected
	paymentStatus := domain.PaymentStatusFailed
	if input.Approve {
		status = domain.ProofStatusVerified
		paymentStatus = domain.PaymentStatusPaid
	}

	err = s.store.WithTx(ctx, func(q repository.Querier) error {
		// The conditional update rejects a second concurrent review.
		affected, err := q.ResolvePaymentProof(ctx, repository.ResolvePaymentProofParams{
			ID:          proof.ID,
			Status:      status,
			ReviewedBy:  pgUUID(actor.ID),
			ReviewNotes: input.Notes,
		})
		if err != nil {
			return fmt.Errorf("resolve proof: %w", err)
		}
		if affected == 0 {
			return domain.ErrProofAlreadyResolved
		}
		return q.UpdateOrderPaymentStatus(ctx, repository.UpdateOrderPaymentStatusParams{
			ID:            proof.OrderID,
			PaymentStatus: paymentStatus,
		})
	})
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return nil, derr
		}
		return nil, domain.Internal(err, op, "failed to review proof")
	}

	detail, _ := json.Marshal(map[string]string{"status": status, "notes": input.Notes})
	if err := s.store.CreateAuditEntry(ctx, repository.CreateAuditEntryParams{
		ActorID:    pgUUID(actor.ID),
		Action:     "payment_proof.reviewed",
		EntityType: "payment_proof",
		EntityID:   proof.ID,
		Detail:     detail,
	}); err != nil {
		s.logger.Warn("failed to write audit entry", slog.String("error", err.Error()))
	}

	proof.Status = status
	proof.ReviewedBy = pgUUID(actor.ID)
	proof.ReviewNotes = input.Notes
	return &proof, nil
}
