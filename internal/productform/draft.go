// Package productform stages a new product across basic info, images and
// variants before a single submission to the catalog API.
package productform

import (
	"strconv"
	"strings"

	"podcatalog/internal/models"
)

// VariantMode says how variants are collected for the draft's category.
type VariantMode int

const (
	// NoVariants means no category has been chosen yet.
	NoVariants VariantMode = iota
	// SingleForced holds exactly one variant without size or color.
	SingleForced
	// MultiFreeform appends any number of size/color variants.
	MultiFreeform
)

func (m VariantMode) String() string {
	switch m {
	case SingleForced:
		return "single"
	case MultiFreeform:
		return "multi"
	default:
		return "none"
	}
}

// ModeFor returns the variant mode for a category value as entered in the form.
func ModeFor(category string) VariantMode {
	if !models.IsValidCategory(category) {
		return NoVariants
	}
	if models.Category(category).IsSingleVariant() {
		return SingleForced
	}
	return MultiFreeform
}

// Error is a message shown to the user next to the form.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func formError(msg string) *Error { return &Error{Message: msg} }

// Messages shown by the form.
const (
	MsgRequiredFields   = "Please fill in all required fields"
	MsgImageRequired    = "Please add at least one image"
	MsgVariantRequired  = "Please add at least one variant"
	MsgVariantIDMissing = "Printful Variant ID is required"
	MsgVariantIDInvalid = "Printful Variant ID must be a whole number"
	MsgVariantPrice     = "Variant price must be a number"
	MsgPriceInvalid     = "Price must be a number"
	MsgSyncIDInvalid    = "Printful Sync ID must be a whole number"
	MsgNoCategory       = "Select a category before adding variants"
	MsgUnknownCategory  = "Unknown category"
	MsgCreateFailed     = "Failed to create product"
)

// VariantFields is the variant being typed in, before it is added.
type VariantFields struct {
	Size              string
	Color             string
	PrintfulVariantID string
	Price             string
}

// Draft is the staged product. Scalar fields hold the raw form text.
type Draft struct {
	Name           string
	Description    string
	Category       string
	Price          string
	SyncID         string
	Images         []string
	Variants       []models.VariantInput
	CurrentVariant VariantFields
}

// Mode returns the variant mode implied by the draft's category.
func (d Draft) Mode() VariantMode { return ModeFor(d.Category) }

// Input converts a draft into the create payload. It does not check
// presence; Submit does that first.
func (d Draft) Input() (models.ProductInput, error) {
	in := models.ProductInput{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Images:      append([]string{}, d.Images...),
		Variants:    append([]models.VariantInput{}, d.Variants...),
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		return models.ProductInput{}, formError(MsgPriceInvalid)
	}
	in.Price = &price

	syncID, err := strconv.ParseInt(strings.TrimSpace(d.SyncID), 10, 64)
	if err != nil {
		return models.ProductInput{}, formError(MsgSyncIDInvalid)
	}
	in.PrintfulSyncID = models.NewSyncID(syncID)

	return in, nil
}

// stageVariant turns the typed-in fields into a variant. A blank price falls
// back to the draft's base price.
func (d Draft) stageVariant() (models.VariantInput, error) {
	cv := d.CurrentVariant
	rawID := strings.TrimSpace(cv.PrintfulVariantID)
	if rawID == "" {
		return models.VariantInput{}, formError(MsgVariantIDMissing)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return models.VariantInput{}, formError(MsgVariantIDInvalid)
	}

	v := models.VariantInput{PrintfulVariantID: &id}

	rawPrice := strings.TrimSpace(cv.Price)
	if rawPrice == "" {
		rawPrice = strings.TrimSpace(d.Price)
		if rawPrice != "" {
			if p, err := strconv.ParseFloat(rawPrice, 64); err == nil {
				v.Price = &p
			}
		}
	} else {
		p, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			return models.VariantInput{}, formError(MsgVariantPrice)
		}
		v.Price = &p
	}

	if d.Mode() == MultiFreeform {
		v.Size = optional(cv.Size)
		v.Color = optional(cv.Color)
	}
	return v, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
