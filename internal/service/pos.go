package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/mvillanueva/tindahan/internal/pricing"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// POSSaleLine is one product rung up at the terminal.
type POSSaleLine struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// POSPaymentInput is one tender of a (possibly split) payment.
type POSPaymentInput struct {
	Tender          string `json:"tender" validate:"required"`
	AmountCentavos  int64  `json:"amount_centavos" validate:"required,gt=0"`
	ReferenceNumber string `json:"reference_number"`
}

// POSSaleInput is a complete terminal sale.
type POSSaleInput struct {
	Lines    []POSSaleLine     `json:"lines" validate:"required,min=1,dive"`
	Payments []POSPaymentInput `json:"payments" validate:"required,min=1,dive"`
}

// POSSaleResult is the completed sale with computed change.
type POSSaleResult struct {
	Transaction domain.POSTransaction
	Items       []domain.POSTransactionItem
}

// POSRefundInput identifies a transaction and the lines being returned.
type POSRefundInput struct {
	Reference string              `json:"reference" validate:"required"`
	Lines     []domain.RefundLine `json:"lines" validate:"required,min=1"`
}

// POSService handles in-store sales at the terminal.
type POSService interface {
	// CreateSale rings up a sale with one or more tenders. The sum of tenders
	// must cover the total; overpayment in cash produces change. Stock
	// decrements, ledger entries and payment rows commit in one transaction.
	CreateSale(ctx context.Context, input POSSaleInput) (*POSSaleResult, error)

	// Refund refunds lines of a completed transaction. Resellable items go
	// back into stock; damaged items do not. A transaction can be refunded
	// once.
	Refund(ctx context.Context, input POSRefundInput) (*domain.RefundResult, error)

	// GetTransaction looks up a transaction with its items by reference
	// number.
	GetTransaction(ctx context.Context, reference string) (*POSSaleResult, error)
}

type posService struct {
	store     repository.TxStore
	calc      pricing.Calculator
	publisher events.Publisher
	logger    *slog.Logger
}

// NewPOSService creates a new POSService instance.
func NewPOSService(store repository.TxStore, calc pricing.Calculator, publisher events.Publisher, logger *slog.Logger) POSService {
	return &posService{store: store, calc: calc, publisher: publisher, logger: logger}
}

func validTender(t string) bool {
	switch t {
	case domain.TenderCash, domain.TenderGCash, domain.TenderMaya, domain.TenderCard:
		return true
	}
	return false
}

func (s *posService) CreateSale(ctx context.Context, input POSSaleInput) (*POSSaleResult, error) {
	const op = "pos.sale"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return nil, err
	}

	if len(input.Lines) == 0 {
		return nil, domain.Invalid(op, "sale must have at least one line")
	}

	var cashTendered int64
	var totalTendered int64
	for _, p := range input.Payments {
		if !validTender(p.Tender) {
			return nil, domain.Invalid(op, fmt.Sprintf("unknown tender %q", p.Tender))
		}
		if p.AmountCentavos <= 0 {
			return nil, domain.Invalid(op, "payment amounts must be positive")
		}
		if p.Tender != domain.TenderCash && p.ReferenceNumber == "" {
			return nil, domain.Invalid(op, fmt.Sprintf("%s payments require a reference number", p.Tender))
		}
		if p.Tender == domain.TenderCash {
			cashTendered += p.AmountCentavos
		}
		totalTendered += p.AmountCentavos
	}

	// Price every line from the catalog. Client input carries only IDs and
	// quantities.
	type pricedLine struct {
		product  domain.Product
		quantity int32
	}
	priced := make([]pricedLine, 0, len(input.Lines))
	lines := make([]pricing.Line, 0, len(input.Lines))
	for _, l := range input.Lines {
		id, err := parseUUID(l.ProductID)
		if err != nil {
			return nil, domain.Invalid(op, "invalid product ID")
		}
		product, err := s.store.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrProductNotFound
			}
			return nil, domain.Internal(err, op, "failed to load product")
		}
		priced = append(priced, pricedLine{product: product, quantity: int32(l.Quantity)})
		lines = append(lines, pricing.Line{
			ProductID:         product.ID,
			Description:       product.Name,
			Quantity:          int32(l.Quantity),
			UnitPriceCentavos: product.BasePriceCentavos,
		})
	}

	quote := s.calc.Quote(lines)

	if totalTendered < quote.TotalCentavos {
		return nil, domain.ErrPaymentShortfall
	}
	change := totalTendered - quote.TotalCentavos
	if change > cashTendered {
		// Change can only be given from cash. Overpaying by gcash/card has no
		// way back out of the drawer.
		return nil, domain.Invalid(op, "non-cash tenders must not exceed the amount due")
	}

	// A sale may be rung up without an open shift; it just is not attributed
	// to a drawer.
	shiftID, err := s.currentShiftID(ctx, actor)
	if err != nil {
		return nil, err
	}

	var result *POSSaleResult
	err = s.store.WithTx(ctx, func(q repository.Querier) error {
		tx, err := q.CreatePOSTransaction(ctx, repository.CreatePOSTransactionParams{
			ReferenceNumber:  fmt.Sprintf("POS-%d", time.Now().UnixNano()),
			SubtotalCentavos: quote.SubtotalCentavos,
			TaxCentavos:      quote.TaxCentavos,
			TotalCentavos:    quote.TotalCentavos,
			ChangeCentavos:   change,
			CashierID:        pgUUID(actor.ID),
			ShiftID:          shiftID,
		})
		if err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		items := make([]domain.POSTransactionItem, 0, len(priced))
		for _, pl := range priced {
			lineSubtotal := int64(pl.quantity) * pl.product.BasePriceCentavos
			if err := q.CreatePOSTransactionItem(ctx, repository.CreatePOSTransactionItemParams{
				TransactionID:     tx.ID,
				ProductID:         pl.product.ID,
				ProductName:       pl.product.Name,
				Quantity:          pl.quantity,
				UnitPriceCentavos: pl.product.BasePriceCentavos,
				SubtotalCentavos:  lineSubtotal,
			}); err != nil {
				return fmt.Errorf("create transaction item: %w", err)
			}
			items = append(items, domain.POSTransactionItem{
				TransactionID:     tx.ID,
				ProductID:         pl.product.ID,
				ProductName:       pl.product.Name,
				Quantity:          pl.quantity,
				UnitPriceCentavos: pl.product.BasePriceCentavos,
				SubtotalCentavos:  lineSubtotal,
			})

			affected, err := q.DecrementProductStock(ctx, repository.StockDeltaParams{
				ID:       pl.product.ID,
				Quantity: pl.quantity,
			})
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if affected == 0 {
				return domain.Errorf(domain.EINVALID, op,
					"insufficient stock for %s", pl.product.Name)
			}

			if err := q.CreateStockMovement(ctx, repository.CreateStockMovementParams{
				ProductID:      pl.product.ID,
				MovementType:   domain.MovementPOSSale,
				QuantityChange: -pl.quantity,
				ReferenceID:    tx.ID,
				PerformedBy:    pgUUID(actor.ID),
			}); err != nil {
				return fmt.Errorf("record stock movement: %w", err)
			}
		}

		for _, p := range input.Payments {
			if err := q.CreatePOSPayment(ctx, repository.CreatePOSPaymentParams{
				TransactionID:   tx.ID,
				Tender:          p.Tender,
				AmountCentavos:  p.AmountCentavos,
				ReferenceNumber: p.ReferenceNumber,
			}); err != nil {
				return fmt.Errorf("create payment: %w", err)
			}
		}

		result = &POSSaleResult{Transaction: tx, Items: items}
		return nil
	})
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return nil, derr
		}
		return nil, domain.Internal(err, op, "sale failed")
	}

	s.logger.Info("pos sale completed",
		slog.String("reference", result.Transaction.ReferenceNumber),
		slog.String("cashier_id", actor.ID.String()),
		slog.Int64("total_centavos", result.Transaction.TotalCentavos),
		slog.Int64("change_centavos", result.Transaction.ChangeCentavos))

	return result, nil
}

// refundAuditLine is the per-line detail recorded in the audit log.
type refundAuditLine struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Condition string `json:"condition"`
}

// Refund refunds lines of a completed POS transaction. Only resellable items
// are restocked; damaged items are written off with a ledger entry of zero
// stock change recorded as a reason instead.
func (s *posService) Refund(ctx context.Context, input POSRefundInput) (*domain.RefundResult, error) {
	const op = "pos.refund"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return nil, err
	}

	tx, err := s.store.GetPOSTransactionByReference(ctx, input.Reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, domain.Internal(err, op, "failed to load transaction")
	}
	if tx.Status == domain.POSStatusRefunded {
		return nil, domain.ErrAlreadyRefunded
	}

	items, err := s.store.ListPOSTransactionItems(ctx, tx.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load transaction items")
	}

	soldQty := make(map[[16]byte]int32, len(items))
	unitPrice := make(map[[16]byte]int64, len(items))
	for _, item := range items {
		soldQty[item.ProductID.Bytes] += item.Quantity
		unitPrice[item.ProductID.Bytes] = item.UnitPriceCentavos
	}

	var refundAmount int64
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, domain.Invalid(op, "refund quantities must be positive")
		}
		if line.Condition != domain.ConditionResellable && line.Condition != domain.ConditionDamaged {
			return nil, domain.Invalid(op, fmt.Sprintf("unknown item condition %q", line.Condition))
		}
		sold, ok := soldQty[line.ProductID.Bytes]
		if !ok || line.Quantity > sold {
			return nil, domain.ErrRefundExceedsSold
		}
		soldQty[line.ProductID.Bytes] = sold - line.Quantity
		refundAmount += int64(line.Quantity) * unitPrice[line.ProductID.Bytes]
	}

	restocked := 0
	err = s.store.WithTx(ctx, func(q repository.Querier) error {
		// The conditional update is the concurrency guard: a second refund of
		// the same transaction matches zero rows.
		affected, err := q.MarkPOSTransactionRefunded(ctx, tx.ID)
		if err != nil {
			return fmt.Errorf("mark refunded: %w", err)
		}
		if affected == 0 {
			return domain.ErrAlreadyRefunded
		}

		for _, line := range input.Lines {
			if line.Condition != domain.ConditionResellable {
				continue
			}
			if err := q.RestoreProductStock(ctx, repository.StockDeltaParams{
				ID:       line.ProductID,
				Quantity: line.Quantity,
			}); err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
			if err := q.CreateStockMovement(ctx, repository.CreateStockMovementParams{
				ProductID:      line.ProductID,
				MovementType:   domain.MovementRefundRestock,
				QuantityChange: line.Quantity,
				ReferenceID:    tx.ID,
				PerformedBy:    pgUUID(actor.ID),
			}); err != nil {
				return fmt.Errorf("record stock movement: %w", err)
			}
			restocked += int(line.Quantity)
		}

		// The audit row is the system of record for refunds, so it commits
		// or fails with the rest of the refund.
		auditLines := make([]refundAuditLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			auditLines = append(auditLines, refundAuditLine{
				ProductID: uuidString(line.ProductID),
				Quantity:  line.Quantity,
				Condition: line.Condition,
			})
		}
		detail, err := json.Marshal(struct {
			Reference      string            `json:"reference"`
			AmountCentavos int64             `json:"amount_centavos"`
			RestockedItems int               `json:"restocked_items"`
			Lines          []refundAuditLine `json:"lines"`
		}{tx.ReferenceNumber, refundAmount, restocked, auditLines})
		if err != nil {
			return fmt.Errorf("marshal audit detail: %w", err)
		}
		if err := q.CreateAuditEntry(ctx, repository.CreateAuditEntryParams{
			ActorID:    pgUUID(actor.ID),
			Action:     "pos.refunded",
			EntityType: "pos_transaction",
			EntityID:   tx.ID,
			Detail:     detail,
		}); err != nil {
			return fmt.Errorf("record audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return nil, derr
		}
		return nil, domain.Internal(err, op, "refund failed")
	}

	if err := s.publisher.Publish(events.SubjectPOSRefunded, events.POSRefunded{
		TransactionID:  uuidString(tx.ID),
		Reference:      tx.ReferenceNumber,
		AmountCentavos: refundAmount,
		RefundedBy:     actor.ID.String(),
	}); err != nil {
		s.logger.Warn("failed to publish refund event",
			slog.String("reference", tx.ReferenceNumber),
			slog.String("error", err.Error()))
	}

	s.logger.Info("pos refund completed",
		slog.String("reference", tx.ReferenceNumber),
		slog.Int64("amount_centavos", refundAmount),
		slog.Int("restocked_items", restocked))

	return &domain.RefundResult{
		TransactionID:  tx.ID,
		AmountCentavos: refundAmount,
		RestockedItems: restocked,
	}, nil
}

func (s *posService) GetTransaction(ctx context.Context, reference string) (*POSSaleResult, error) {
	const op = "pos.get"

	if _, err := domain.RequireStaff(ctx, op); err != nil {
		return nil, err
	}

	tx, err := s.store.GetPOSTransactionByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, domain.Internal(err, op, "failed to load transaction")
	}

	items, err := s.store.ListPOSTransactionItems(ctx, tx.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load transaction items")
	}

	return &POSSaleResult{Transaction: tx, Items: items}, nil
}

// currentShiftID returns the actor's open shift ID, or the zero UUID when no
// shift is open.
func (s *posService) currentShiftID(ctx context.Context, actor *domain.Actor) (pgtype.UUID, error) {
	shift, err := s.store.GetOpenShift(ctx, pgUUID(actor.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgtype.UUID{}, nil
		}
		return pgtype.UUID{}, domain.Internal(err, "pos.sale", "failed to look up shift")
	}
	return shift.ID, nil
}
