// Package worker runs the background event consumers. The alert worker is a
// separate binary so a slow or disconnected NATS never affects request
// latency on the main server.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/nats-io/nats.go"
)

// AlertWorker consumes domain events and raises operational alerts. For now
// alerts are structured log lines; the log shipper turns warn-level entries
// into pages.
type AlertWorker struct {
	conn              *nats.Conn
	logger            *slog.Logger
	lowStockThreshold int32
}

// NewAlertWorker connects to NATS at the given URL.
func NewAlertWorker(url string, lowStockThreshold int32, logger *slog.Logger) (*AlertWorker, error) {
	conn, err := nats.Connect(url,
		nats.Name("tindahan-alert-worker"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &AlertWorker{
		conn:              conn,
		logger:            logger,
		lowStockThreshold: lowStockThreshold,
	}, nil
}

// Run subscribes to the event subjects and blocks until ctx is cancelled.
// The subscriptions share the "alerts" queue group so running multiple
// workers does not duplicate alerts.
func (w *AlertWorker) Run(ctx context.Context) error {
	subs := []struct {
		subject string
		handler nats.MsgHandler
	}{
		{events.SubjectStockMovement, w.handleStockMovement},
		{events.SubjectOrderCreated, w.handleOrderCreated},
		{events.SubjectOrderCancelled, w.handleOrderCancelled},
		{events.SubjectPOSRefunded, w.handlePOSRefunded},
	}

	for _, s := range subs {
		if _, err := w.conn.QueueSubscribe(s.subject, "alerts", s.handler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", s.subject, err)
		}
		w.logger.Info("subscribed", slog.String("subject", s.subject))
	}

	<-ctx.Done()

	if err := w.conn.Drain(); err != nil {
		w.logger.Warn("failed to drain NATS connection", slog.String("error", err.Error()))
	}
	return nil
}

func (w *AlertWorker) handleStockMovement(msg *nats.Msg) {
	var event events.StockMovement
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		w.logger.Error("malformed stock movement event", slog.String("error", err.Error()))
		return
	}

	if event.StockAfter <= w.lowStockThreshold {
		w.logger.Warn("low stock alert",
			slog.String("product_id", event.ProductID),
			slog.String("product_name", event.ProductName),
			slog.Int("stock", int(event.StockAfter)),
			slog.Int("threshold", int(w.lowStockThreshold)))
		return
	}

	w.logger.Debug("stock movement",
		slog.String("product_id", event.ProductID),
		slog.String("movement_type", event.MovementType),
		slog.Int("quantity_change", int(event.QuantityChange)))
}

func (w *AlertWorker) handleOrderCreated(msg *nats.Msg) {
	var event events.OrderCreated
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		w.logger.Error("malformed order created event", slog.String("error", err.Error()))
		return
	}

	w.logger.Info("order placed",
		slog.String("order_number", event.OrderNumber),
		slog.Int64("total_centavos", event.TotalCentavos),
		slog.Int("item_count", event.ItemCount))
}

func (w *AlertWorker) handleOrderCancelled(msg *nats.Msg) {
	var event events.OrderCancelled
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		w.logger.Error("malformed order cancelled event", slog.String("error", err.Error()))
		return
	}

	w.logger.Info("order cancelled",
		slog.String("order_number", event.OrderNumber),
		slog.String("cancelled_by", event.CancelledBy))
}

func (w *AlertWorker) handlePOSRefunded(msg *nats.Msg) {
	var event events.POSRefunded
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		w.logger.Error("malformed refund event", slog.String("error", err.Error()))
		return
	}

	// Refunds are rare enough that each one is worth a human glance.
	w.logger.Warn("sale refunded",
		slog.String("reference", event.Reference),
		slog.Int64("amount_centavos", event.AmountCentavos),
		slog.String("refunded_by", event.RefundedBy))
}
