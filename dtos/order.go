package dtos

import "dessert-cart/views"

// OrderResponse is the JSON form of the order summary modal.
type OrderResponse struct {
	State   string                 `json:"state"`
	Summary views.SummaryViewModel `json:"summary"`
	Cart    views.CartViewModel    `json:"cart"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
	Sessions int    `json:"sessions"`
}
