// Package command validates operator-entered ledger commands before they
// reach the expense or inventory ledgers. Collecting the raw values (forms,
// prompts) happens outside the service; fields arrive as strings.
package command

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindRestock    Kind = "restock"
	KindMisc       Kind = "misc"
	KindCorrection Kind = "correction"
)

const (
	FieldProductID = "product_id"
	FieldLabel     = "label"
	FieldQuantity  = "quantity"
	FieldTotalCost = "total_cost"
	FieldCurrent   = "current_quantity"
	FieldInitial   = "initial_total_quantity"
)

// DefaultMiscLabel names non-product purchases when the operator gives none.
const DefaultMiscLabel = "Gelo/Diversos"

type Command struct {
	Kind   Kind
	Fields map[string]string
}

// Validated is a command whose fields parsed and passed the range checks.
// Only the fields relevant to Kind are set.
type Validated struct {
	Kind       Kind
	ProductID  *int64
	Label      string
	Quantity   int
	TotalCost  decimal.Decimal
	NewCurrent int
	NewInitial int
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// Validate checks cmd without side effects.
func Validate(cmd Command) (*Validated, error) {
	switch cmd.Kind {
	case KindRestock:
		return validateRestock(cmd.Fields)
	case KindMisc:
		return validateMisc(cmd.Fields)
	case KindCorrection:
		return validateCorrection(cmd.Fields)
	default:
		return nil, invalid("kind", fmt.Sprintf("unknown command %q", cmd.Kind))
	}
}

func validateRestock(f map[string]string) (*Validated, error) {
	productID, err := parseID(f, FieldProductID)
	if err != nil {
		return nil, err
	}
	qty, err := parseInt(f, FieldQuantity)
	if err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, invalid(FieldQuantity, "must be greater than zero")
	}
	cost, err := parsePositiveMoney(f, FieldTotalCost)
	if err != nil {
		return nil, err
	}
	return &Validated{
		Kind:      KindRestock,
		ProductID: &productID,
		Label:     strings.TrimSpace(f[FieldLabel]),
		Quantity:  qty,
		TotalCost: cost,
	}, nil
}

func validateMisc(f map[string]string) (*Validated, error) {
	cost, err := parsePositiveMoney(f, FieldTotalCost)
	if err != nil {
		return nil, err
	}
	label := strings.TrimSpace(f[FieldLabel])
	if label == "" {
		label = DefaultMiscLabel
	}
	return &Validated{
		Kind:      KindMisc,
		Label:     label,
		Quantity:  1,
		TotalCost: cost,
	}, nil
}

func validateCorrection(f map[string]string) (*Validated, error) {
	productID, err := parseID(f, FieldProductID)
	if err != nil {
		return nil, err
	}
	current, err := parseInt(f, FieldCurrent)
	if err != nil {
		return nil, err
	}
	initial, err := parseInt(f, FieldInitial)
	if err != nil {
		return nil, err
	}
	if current < 0 {
		return nil, invalid(FieldCurrent, "must not be negative")
	}
	if initial < 0 {
		return nil, invalid(FieldInitial, "must not be negative")
	}
	return &Validated{
		Kind:       KindCorrection,
		ProductID:  &productID,
		NewCurrent: current,
		NewInitial: initial,
	}, nil
}

func parseID(f map[string]string, field string) (int64, error) {
	raw := strings.TrimSpace(f[field])
	if raw == "" {
		return 0, invalid(field, "is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(field, "must be a positive integer")
	}
	return id, nil
}

func parseInt(f map[string]string, field string) (int, error) {
	raw := strings.TrimSpace(f[field])
	if raw == "" {
		return 0, invalid(field, "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(field, "must be a whole number")
	}
	return n, nil
}

// ParseMoney accepts either decimal separator, "12,50" or "12.50".
func ParseMoney(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "R$"))
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return decimal.NewFromString(raw)
}

func parsePositiveMoney(f map[string]string, field string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(f[field])
	if raw == "" {
		return decimal.Zero, invalid(field, "is required")
	}
	v, err := ParseMoney(raw)
	if err != nil {
		return decimal.Zero, invalid(field, "must be a number")
	}
	if !v.IsPositive() {
		return decimal.Zero, invalid(field, "must be greater than zero")
	}
	// Ledger columns hold whole cents.
	if !v.Equal(v.Round(2)) {
		return decimal.Zero, invalid(field, "must have at most 2 decimal places")
	}
	return v.Round(2), nil
}

// Field is a raw operator value decoded from JSON. Both strings and numbers
// are accepted so "12,50" and 12.5 reach the validator unchanged.
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(b)
	return nil
}
