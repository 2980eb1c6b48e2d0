package views

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"dessert-cart/models"

	"go.uber.org/zap"
)

// CartRow is one line item with its controls. Every control posts ItemName.
type CartRow struct {
	ItemName  string `json:"name"`
	Quantity  int    `json:"quantity"`
	QtyLabel  string `json:"quantity_label"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartViewModel struct {
	Empty      bool      `json:"empty"`
	Rows       []CartRow `json:"rows"`
	Total      string    `json:"total"`
	Count      int       `json:"count"`
	CountLabel string    `json:"count_label"`
	CanConfirm bool      `json:"can_confirm"`
}

func NewCartViewModel(snap models.CartSnapshot) CartViewModel {
	rows := make([]CartRow, 0, len(snap.Items))
	for _, item := range snap.Items {
		rows = append(rows, CartRow{
			ItemName:  item.Name,
			Quantity:  item.Quantity,
			QtyLabel:  fmt.Sprintf("%dx", item.Quantity),
			UnitPrice: "@" + FormatPrice(item.Price),
			LineTotal: FormatPrice(item.LineTotal()),
		})
	}

	return CartViewModel{
		Empty:      snap.IsEmpty(),
		Rows:       rows,
		Total:      FormatPrice(snap.Total),
		Count:      snap.Count,
		CountLabel: fmt.Sprintf("(%d)", snap.Count),
		CanConfirm: !snap.IsEmpty(),
	}
}

// CartView keeps the rendered cart of one session. Render replaces the whole
// model and markup; it is meant to be subscribed to the session's store.
type CartView struct {
	mu      sync.RWMutex
	tmpl    *template.Template
	model   CartViewModel
	html    template.HTML
	renders int
	logger  *zap.Logger
}

func NewCartView(tmpl *template.Template, logger *zap.Logger) *CartView {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &CartView{tmpl: tmpl, logger: logger}
	v.Render(models.CartSnapshot{})
	return v
}

// Render rebuilds the view from snap.
func (v *CartView) Render(snap models.CartSnapshot) {
	model := NewCartViewModel(snap)

	var buf bytes.Buffer
	if v.tmpl != nil {
		if err := v.tmpl.ExecuteTemplate(&buf, "cart", model); err != nil {
			v.logger.Error("failed to render cart", zap.Error(err))
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.model = model
	v.html = template.HTML(buf.String())
	v.renders++
}

func (v *CartView) Model() CartViewModel {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

// HTML returns the last rendered cart markup.
func (v *CartView) HTML() template.HTML {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.html
}

// Renders counts full renders, including the initial empty one.
func (v *CartView) Renders() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.renders
}
