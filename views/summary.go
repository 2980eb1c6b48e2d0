package views

import (
	"fmt"

	"dessert-cart/models"
)

type SummaryRow struct {
	Name      string `json:"name"`
	Image     string `json:"image"`
	QtyLabel  string `json:"quantity_label"`
	LineTotal string `json:"line_total"`
}

// Text is the one-line form of the row, e.g. "Waffle 2x $13.00".
func (r SummaryRow) Text() string {
	return fmt.Sprintf("%s %s %s", r.Name, r.QtyLabel, r.LineTotal)
}

type SummaryViewModel struct {
	Visible     bool         `json:"visible"`
	OrderID     string       `json:"order_id,omitempty"`
	ConfirmedAt string       `json:"confirmed_at,omitempty"`
	Rows        []SummaryRow `json:"rows"`
	Total       string       `json:"total,omitempty"`
}

// NewSummaryViewModel renders order, or the hidden modal when visible is false.
func NewSummaryViewModel(order models.OrderSummary, visible bool) SummaryViewModel {
	if !visible {
		return SummaryViewModel{Rows: []SummaryRow{}}
	}

	rows := make([]SummaryRow, 0, len(order.Lines))
	for _, line := range order.Lines {
		rows = append(rows, SummaryRow{
			Name:      line.Name,
			Image:     line.Image,
			QtyLabel:  fmt.Sprintf("%dx", line.Quantity),
			LineTotal: FormatPrice(line.LineTotal),
		})
	}

	return SummaryViewModel{
		Visible:     true,
		OrderID:     order.ID.String(),
		ConfirmedAt: order.ConfirmedAt.Format("2006-01-02 15:04"),
		Rows:        rows,
		Total:       FormatPrice(order.Total),
	}
}
