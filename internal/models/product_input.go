package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProductInput is the untrusted create-product payload. Pointer and slice
// fields stay nil when the caller omitted them.
type ProductInput struct {
	Name           string         `json:"name" validate:"required"`
	Description    string         `json:"description" validate:"required"`
	Category       string         `json:"category" validate:"required"`
	Price          *float64       `json:"price" validate:"required"`
	Images         []string       `json:"images" validate:"required"`
	Variants       []VariantInput `json:"variants" validate:"required"`
	PrintfulSyncID *SyncID        `json:"printfulSyncId" validate:"required"`
}

// VariantInput is a single variant of a ProductInput.
type VariantInput struct {
	Size              *string  `json:"size"`
	Color             *string  `json:"color"`
	PrintfulVariantID *int64   `json:"printfulVariantId"`
	Price             *float64 `json:"price"`
}

// SyncID is the fulfillment provider's product id. It decodes from either a
// JSON number or a numeric string.
type SyncID int64

// SyncIDError reports a printfulSyncId value that is not an integer.
type SyncIDError struct {
	Value string
}

func (e *SyncIDError) Error() string {
	return fmt.Sprintf("printfulSyncId must be an integer, got %s", e.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SyncID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return &SyncIDError{Value: text}
		}
		text = strings.TrimSpace(str)
		if text == "" {
			*s = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return &SyncIDError{Value: string(raw)}
	}
	*s = SyncID(n)
	return nil
}

// MarshalJSON always writes a JSON number.
func (s SyncID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(s), 10)), nil
}

// Int64 returns the id as a plain integer.
func (s SyncID) Int64() int64 { return int64(s) }

// NewSyncID returns a pointer suitable for ProductInput.PrintfulSyncID.
func NewSyncID(n int64) *SyncID {
	s := SyncID(n)
	return &s
}
