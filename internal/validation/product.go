// Package validation holds the rules a create-product payload must pass
// before anything is persisted.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"podcatalog/internal/models"

	"github.com/go-playground/validator/v10"
)

// Error is a rejected payload. Message is safe to return to the caller.
type Error struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

const missingFieldsMessage = "Missing required fields: name, description, category, price, images, variants, printfulSyncId"

var validate = validator.New()

// ValidateProduct applies the create rules in order and returns the first
// violation, or nil when the payload is acceptable.
func ValidateProduct(in models.ProductInput) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &Error{Field: jsonName(verrs[0].Field()), Message: missingFieldsMessage}
		}
		return &Error{Message: missingFieldsMessage}
	}

	if len(in.Images) == 0 {
		return &Error{Field: "images", Message: "At least one image is required"}
	}
	for _, img := range in.Images {
		if err := validate.Var(img, "required,url"); err != nil {
			return &Error{Field: "images", Message: "Each image must be a valid URL"}
		}
	}

	if len(in.Variants) == 0 {
		return &Error{Field: "variants", Message: "At least one variant is required"}
	}

	if !models.IsValidCategory(in.Category) {
		return &Error{
			Field:   "category",
			Message: "Invalid category. Must be one of: " + categoryList(),
		}
	}

	if *in.Price < 0 {
		return &Error{Field: "price", Message: "Price must be a non-negative number"}
	}

	for _, v := range in.Variants {
		if v.PrintfulVariantID == nil || *v.PrintfulVariantID <= 0 {
			return &Error{Field: "variants", Message: "Each variant must have a valid printfulVariantId"}
		}
		if v.Price == nil || *v.Price < 0 {
			return &Error{Field: "variants", Message: "Each variant must have a valid price"}
		}
	}

	if in.PrintfulSyncID.Int64() <= 0 {
		return &Error{Field: "printfulSyncId", Message: "printfulSyncId must be a positive integer"}
	}

	return nil
}

// FromDecodeError turns a JSON decoding failure into a validation Error so a
// mistyped field (e.g. a string price) is reported like any other rule.
func FromDecodeError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return &Error{Message: "Invalid request body"}
		}
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("Field '%s' must be of type %s", field, typeErr.Type.String()),
		}
	}
	var syncErr *models.SyncIDError
	if errors.As(err, &syncErr) {
		return &Error{Field: "printfulSyncId", Message: "printfulSyncId must be an integer"}
	}
	return &Error{Message: "Invalid request body"}
}

func categoryList() string {
	names := make([]string, 0, len(models.ValidCategories()))
	for _, c := range models.ValidCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

var jsonNames = map[string]string{
	"Name":           "name",
	"Description":    "description",
	"Category":       "category",
	"Price":          "price",
	"Images":         "images",
	"Variants":       "variants",
	"PrintfulSyncID": "printfulSyncId",
}

func jsonName(field string) string {
	if n, ok := jsonNames[field]; ok {
		return n
	}
	return field
}
