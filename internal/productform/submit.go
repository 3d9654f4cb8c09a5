package productform

import (
	"context"
	"errors"
	"log"
	"strings"

	"podcatalog/internal/client"
	"podcatalog/internal/models"
)

// Creator sends a create request. *client.Client implements it.
type Creator interface {
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
}

// Submit checks the draft, sends it and, on success, returns an empty draft
// and calls onSuccess with the stored product. On any failure the draft is
// returned unchanged with an *Error carrying the message to display.
func Submit(ctx context.Context, d Draft, creator Creator, onSuccess func(*models.Product)) (Draft, error) {
	if strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.Description) == "" ||
		d.Category == "" ||
		strings.TrimSpace(d.Price) == "" ||
		strings.TrimSpace(d.SyncID) == "" {
		return d, formError(MsgRequiredFields)
	}
	if len(d.Variants) == 0 {
		return d, formError(MsgVariantRequired)
	}
	if len(d.Images) == 0 {
		return d, formError(MsgImageRequired)
	}

	in, err := d.Input()
	if err != nil {
		return d, err
	}

	product, err := creator.CreateProduct(ctx, in)
	if err != nil {
		log.Printf("Error creating product %q: %v", d.Name, err)
		return d, formError(failureMessage(err))
	}

	if onSuccess != nil {
		onSuccess(product)
	}
	return Draft{}, nil
}

func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.StatusCode < 500 {
		return apiErr.Message
	}
	return MsgCreateFailed
}
