package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderSummaryLine struct {
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderSummary is the frozen copy of a cart taken when an order is confirmed.
type OrderSummary struct {
	ID          uuid.UUID          `json:"id"`
	ConfirmedAt time.Time          `json:"confirmed_at"`
	Lines       []OrderSummaryLine `json:"lines"`
	Total       decimal.Decimal    `json:"total"`
	Count       int                `json:"count"`
}

// NewOrderSummary copies the snapshot lines into a summary.
func NewOrderSummary(snapshot CartSnapshot, at time.Time) OrderSummary {
	lines := make([]OrderSummaryLine, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lines = append(lines, OrderSummaryLine{
			Name:      item.Name,
			Image:     item.Image.Mobile,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			LineTotal: item.LineTotal(),
		})
	}

	return OrderSummary{
		ID:          uuid.New(),
		ConfirmedAt: at,
		Lines:       lines,
		Total:       snapshot.Total,
		Count:       snapshot.Count,
	}
}
