package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

// View types shape API responses. Database rows carry pgtype fields and no
// JSON tags, so each handler maps rows through these before encoding.

func uuidStr(id pgtype.UUID) string {
	if !id.Valid || id.Bytes == [16]byte{} {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// UUIDString renders a pgtype.UUID in canonical form, empty when unset.
func UUIDString(id pgtype.UUID) string {
	return uuidStr(id)
}

// ParseUUID parses a path or payload ID.
func ParseUUID(s string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(s); err != nil {
		return pgtype.UUID{}, err
	}
	return id, nil
}

func timeVal(ts pgtype.Timestamptz) time.Time {
	return ts.Time
}

type ProductView struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Description       string `json:"description,omitempty"`
	BasePriceCentavos int64  `json:"base_price_centavos"`
	Stock             int32  `json:"stock"`
}

func NewProductView(p domain.Product) ProductView {
	return ProductView{
		ID:                uuidStr(p.ID),
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		BasePriceCentavos: p.BasePriceCentavos,
		Stock:             p.Stock,
	}
}

func NewProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}

type VariantView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceCentavos int64  `json:"price_centavos"`
	Stock         int32  `json:"stock"`
}

func NewVariantViews(variants []domain.ProductVariant) []VariantView {
	views := make([]VariantView, 0, len(variants))
	for _, v := range variants {
		views = append(views, VariantView{
			ID:            uuidStr(v.ID),
			Name:          v.Name,
			PriceCentavos: v.PriceCentavos,
			Stock:         v.Stock,
		})
	}
	return views
}

type CartItemView struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	VariantID         string `json:"variant_id,omitempty"`
	ProductName       string `json:"product_name"`
	VariantName       string `json:"variant_name,omitempty"`
	Quantity          int32  `json:"quantity"`
	UnitPriceCentavos int64  `json:"unit_price_centavos"`
	LineSubtotal      int64  `json:"line_subtotal_centavos"`
	AvailableStock    int32  `json:"available_stock"`
}

type CartView struct {
	Items            []CartItemView `json:"items"`
	SubtotalCentavos int64          `json:"subtotal_centavos"`
	ItemCount        int            `json:"item_count"`
}

func NewCartView(summary *domain.CartSummary) CartView {
	items := make([]CartItemView, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, CartItemView{
			ID:                uuidStr(item.ID),
			ProductID:         uuidStr(item.ProductID),
			VariantID:         uuidStr(item.VariantID),
			ProductName:       item.ProductName,
			VariantName:       item.VariantName,
			Quantity:          item.Quantity,
			UnitPriceCentavos: item.UnitPriceCentavos,
			LineSubtotal:      item.LineSubtotal,
			AvailableStock:    item.AvailableStock,
		})
	}
	return CartView{
		Items:            items,
		SubtotalCentavos: summary.SubtotalCentavos,
		ItemCount:        summary.ItemCount,
	}
}

type OrderItemView struct {
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name"`
	Quantity          int32  `json:"quantity"`
	UnitPriceCentavos int64  `json:"unit_price_centavos"`
	SubtotalCentavos  int64  `json:"subtotal_centavos"`
}

type OrderView struct {
	ID               string                 `json:"id"`
	OrderNumber      string                 `json:"order_number"`
	Status           string                 `json:"status"`
	PaymentStatus    string                 `json:"payment_status"`
	PaymentMethod    string                 `json:"payment_method"`
	SubtotalCentavos int64                  `json:"subtotal_centavos"`
	TaxCentavos      int64                  `json:"tax_centavos"`
	TotalCentavos    int64                  `json:"total_centavos"`
	ShippingAddress  domain.AddressSnapshot `json:"shipping_address"`
	CreatedAt        time.Time              `json:"created_at"`
	Items            []OrderItemView        `json:"items,omitempty"`
}

func NewOrderView(o domain.Order) OrderView {
	return OrderView{
		ID:               uuidStr(o.ID),
		OrderNumber:      o.OrderNumber,
		Status:           o.Status,
		PaymentStatus:    o.PaymentStatus,
		PaymentMethod:    o.PaymentMethod,
		SubtotalCentavos: o.SubtotalCentavos,
		TaxCentavos:      o.TaxCentavos,
		TotalCentavos:    o.TotalCentavos,
		ShippingAddress:  o.ShippingAddress,
		CreatedAt:        timeVal(o.CreatedAt),
	}
}

func NewOrderDetailView(detail *domain.OrderDetail) OrderView {
	view := NewOrderView(detail.Order)
	view.Items = make([]OrderItemView, 0, len(detail.Items))
	for _, item := range detail.Items {
		view.Items = append(view.Items, OrderItemView{
			ProductID:         uuidStr(item.ProductID),
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			UnitPriceCentavos: item.UnitPriceCentavos,
			SubtotalCentavos:  item.SubtotalCentavos,
		})
	}
	return view
}

func NewOrderViews(orders []domain.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

type POSItemView struct {
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name"`
	Quantity          int32  `json:"quantity"`
	UnitPriceCentavos int64  `json:"unit_price_centavos"`
	SubtotalCentavos  int64  `json:"subtotal_centavos"`
}

type POSTransactionView struct {
	ID               string        `json:"id"`
	ReferenceNumber  string        `json:"reference_number"`
	Status           string        `json:"status"`
	SubtotalCentavos int64         `json:"subtotal_centavos"`
	TaxCentavos      int64         `json:"tax_centavos"`
	TotalCentavos    int64         `json:"total_centavos"`
	ChangeCentavos   int64         `json:"change_centavos"`
	CreatedAt        time.Time     `json:"created_at"`
	Items            []POSItemView `json:"items,omitempty"`
}

func NewPOSTransactionView(tx domain.POSTransaction, items []domain.POSTransactionItem) POSTransactionView {
	view := POSTransactionView{
		ID:               uuidStr(tx.ID),
		ReferenceNumber:  tx.ReferenceNumber,
		Status:           tx.Status,
		SubtotalCentavos: tx.SubtotalCentavos,
		TaxCentavos:      tx.TaxCentavos,
		TotalCentavos:    tx.TotalCentavos,
		ChangeCentavos:   tx.ChangeCentavos,
		CreatedAt:        timeVal(tx.CreatedAt),
	}
	for _, item := range items {
		view.Items = append(view.Items, POSItemView{
			ProductID:         uuidStr(item.ProductID),
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			UnitPriceCentavos: item.UnitPriceCentavos,
			SubtotalCentavos:  item.SubtotalCentavos,
		})
	}
	return view
}

type ShiftView struct {
	ID                   string     `json:"id"`
	OpeningCashCentavos  int64      `json:"opening_cash_centavos"`
	ClosingCashCentavos  int64      `json:"closing_cash_centavos"`
	ExpectedCashCentavos int64      `json:"expected_cash_centavos"`
	VarianceCentavos     int64      `json:"variance_centavos"`
	StartedAt            time.Time  `json:"started_at"`
	EndedAt              *time.Time `json:"ended_at,omitempty"`
	Open                 bool       `json:"open"`
}

func NewShiftView(s *domain.Shift) ShiftView {
	view := ShiftView{
		ID:                   uuidStr(s.ID),
		OpeningCashCentavos:  s.OpeningCashCentavos,
		ClosingCashCentavos:  s.ClosingCashCentavos,
		ExpectedCashCentavos: s.ExpectedCashCentavos,
		StartedAt:            timeVal(s.StartedAt),
		Open:                 s.Open,
	}
	if !s.Open {
		view.VarianceCentavos = s.ClosingCashCentavos - s.ExpectedCashCentavos
		if s.EndedAt.Valid {
			ended := s.EndedAt.Time
			view.EndedAt = &ended
		}
	}
	return view
}

type ProofView struct {
	ID              string `json:"id"`
	OrderID         string `json:"order_id"`
	Method          string `json:"method"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	ReviewNotes     string `json:"review_notes,omitempty"`
}

func NewProofView(p *domain.PaymentProof) ProofView {
	return ProofView{
		ID:              uuidStr(p.ID),
		OrderID:         uuidStr(p.OrderID),
		Method:          p.Method,
		ReferenceNumber: p.ReferenceNumber,
		Status:          p.Status,
		ReviewNotes:     p.ReviewNotes,
	}
}

type MovementView struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	VariantID      string    `json:"variant_id,omitempty"`
	MovementType   string    `json:"movement_type"`
	QuantityChange int32     `json:"quantity_change"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewMovementViews(movements []domain.StockMovement) []MovementView {
	views := make([]MovementView, 0, len(movements))
	for _, m := range movements {
		views = append(views, MovementView{
			ID:             uuidStr(m.ID),
			ProductID:      uuidStr(m.ProductID),
			VariantID:      uuidStr(m.VariantID),
			MovementType:   m.MovementType,
			QuantityChange: m.QuantityChange,
			ReferenceID:    uuidStr(m.ReferenceID),
			Reason:         m.Reason,
			CreatedAt:      timeVal(m.CreatedAt),
		})
	}
	return views
}
