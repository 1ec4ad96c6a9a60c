package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError reports a draft field the user must fix before anything is
// sent to the server.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Accepted layouts for draft dates, tried in order. Times are interpreted in
// the configured display timezone and sent to the API as UTC instants.
var draftDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDraftDate parses a user-entered date in loc.
func ParseDraftDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range draftDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{Field: "transaction_date", Msg: "unparseable date"}
}

// Draft is a transaction being created or edited in the UI.
type Draft struct {
	Amount          string
	Type            string
	Date            string // local wall-clock input, see draftDateLayouts
	PaymentMethod   int64
	Subcategory     *int64
	SubcategoryName string // new-name wins over a selected id
	Description     string
}

// Validate enforces the client-side rules: positive amount, parseable date,
// payment method chosen, and a subcategory chosen or a new name given.
func (d Draft) Validate(loc *time.Location) error {
	amt, err := decimal.NewFromString(d.Amount)
	if err != nil || !amt.IsPositive() {
		return &ValidationError{Field: "amount", Msg: "must be a positive number"}
	}
	if d.Type != TypeIncome && d.Type != TypeExpense {
		return &ValidationError{Field: "type", Msg: "must be INCOME or EXPENSE"}
	}
	if _, err := ParseDraftDate(d.Date, loc); err != nil {
		return err
	}
	if d.PaymentMethod <= 0 {
		return &ValidationError{Field: "payment_method", Msg: "choose a payment method"}
	}
	if d.SubcategoryName == "" && d.Subcategory == nil {
		return &ValidationError{Field: "subcategory", Msg: "choose a subcategory or enter a new name"}
	}
	return nil
}

// Payload builds the JSON body for POST/PATCH. Validate must have passed.
func (d Draft) Payload(loc *time.Location) map[string]any {
	amt, _ := decimal.NewFromString(d.Amount)
	when, _ := ParseDraftDate(d.Date, loc)

	body := map[string]any{
		"amount":           amt.StringFixed(2),
		"type":             d.Type,
		"transaction_date": when.UTC().Format(time.RFC3339),
		"payment_method":   d.PaymentMethod,
		"description":      d.Description,
	}
	if d.SubcategoryName != "" {
		body["subcategory_name"] = d.SubcategoryName
	} else if d.Subcategory != nil {
		body["subcategory"] = *d.Subcategory
	}
	return body
}
