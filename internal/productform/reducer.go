package productform

import (
	"strings"

	"podcatalog/internal/models"
)

// Action is a single user edit applied by Reduce.
type Action interface {
	apply(d Draft) (Draft, error)
}

type (
	SetName        struct{ Value string }
	SetDescription struct{ Value string }
	SetPrice       struct{ Value string }
	SetSyncID      struct{ Value string }
	SetCategory    struct{ Value string }
	AddImage       struct{ URL string }
	RemoveImage    struct{ Index int }
	// EditVariant replaces the variant being typed in.
	EditVariant struct{ Fields VariantFields }
	// AddVariant commits the variant being typed in.
	AddVariant    struct{}
	RemoveVariant struct{ Index int }
	Reset         struct{}
)

// Reduce applies a to d and returns the next draft. d is never modified. On
// error the returned draft equals d.
func Reduce(d Draft, a Action) (Draft, error) {
	next, err := a.apply(d)
	if err != nil {
		return d, err
	}
	return next, nil
}

func (a SetName) apply(d Draft) (Draft, error)        { d.Name = a.Value; return d, nil }
func (a SetDescription) apply(d Draft) (Draft, error) { d.Description = a.Value; return d, nil }
func (a SetPrice) apply(d Draft) (Draft, error)       { d.Price = a.Value; return d, nil }
func (a SetSyncID) apply(d Draft) (Draft, error)      { d.SyncID = a.Value; return d, nil }

// Changing into a single-variant category, or between modes, drops every
// staged variant.
func (a SetCategory) apply(d Draft) (Draft, error) {
	if a.Value != "" && !models.IsValidCategory(a.Value) {
		return d, formError(MsgUnknownCategory)
	}
	if a.Value == d.Category {
		return d, nil
	}
	from, to := d.Mode(), ModeFor(a.Value)
	d.Category = a.Value
	if from != to || to == SingleForced {
		d.Variants = nil
		d.CurrentVariant = VariantFields{}
	}
	return d, nil
}

func (a AddImage) apply(d Draft) (Draft, error) {
	url := strings.TrimSpace(a.URL)
	if url == "" {
		return d, nil
	}
	images := make([]string, len(d.Images), len(d.Images)+1)
	copy(images, d.Images)
	d.Images = append(images, url)
	return d, nil
}

func (a RemoveImage) apply(d Draft) (Draft, error) {
	if a.Index < 0 || a.Index >= len(d.Images) {
		return d, nil
	}
	images := make([]string, 0, len(d.Images)-1)
	images = append(images, d.Images[:a.Index]...)
	d.Images = append(images, d.Images[a.Index+1:]...)
	return d, nil
}

func (a EditVariant) apply(d Draft) (Draft, error) {
	d.CurrentVariant = a.Fields
	return d, nil
}

func (AddVariant) apply(d Draft) (Draft, error) {
	mode := d.Mode()
	if mode == NoVariants {
		return d, formError(MsgNoCategory)
	}
	v, err := d.stageVariant()
	if err != nil {
		return d, err
	}

	if mode == SingleForced {
		d.Variants = []models.VariantInput{v}
	} else {
		variants := make([]models.VariantInput, len(d.Variants), len(d.Variants)+1)
		copy(variants, d.Variants)
		d.Variants = append(variants, v)
	}
	d.CurrentVariant = VariantFields{}
	return d, nil
}

func (a RemoveVariant) apply(d Draft) (Draft, error) {
	if a.Index < 0 || a.Index >= len(d.Variants) {
		return d, nil
	}
	variants := make([]models.VariantInput, 0, len(d.Variants)-1)
	variants = append(variants, d.Variants[:a.Index]...)
	d.Variants = append(variants, d.Variants[a.Index+1:]...)
	return d, nil
}

func (Reset) apply(Draft) (Draft, error) { return Draft{}, nil }
