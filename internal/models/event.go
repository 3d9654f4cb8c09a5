package models

import "time"

// ProductCreatedEvent is published once a product and its variants are persisted.
type ProductCreatedEvent struct {
	Event          string    `json:"event"`
	ProductID      string    `json:"productId"`
	Name           string    `json:"name"`
	Category       Category  `json:"category"`
	PrintfulSyncID int64     `json:"printfulSyncId"`
	VariantIDs     []int64   `json:"printfulVariantIds"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewProductCreatedEvent builds the event payload for p.
func NewProductCreatedEvent(p *Product) ProductCreatedEvent {
	ids := make([]int64, 0, len(p.Variants))
	for _, v := range p.Variants {
		ids = append(ids, v.PrintfulVariantID)
	}
	return ProductCreatedEvent{
		Event:          "product.created",
		ProductID:      p.ID,
		Name:           p.Name,
		Category:       p.Category,
		PrintfulSyncID: p.PrintfulSyncID,
		VariantIDs:     ids,
		OccurredAt:     time.Now().UTC(),
	}
}
