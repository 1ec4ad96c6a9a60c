package filter

import (
	"net/url"
	"time"

	"github.com/okaya/ledgerdesk/internal/model"
)

// The UI performs no server-side pagination: it asks for the entire filtered
// set in one page and paginates locally.
const fullPageSize = "100000"

// Fields is the fixed set of filter fields, in display order. The predicate
// never contains a key outside this set (plus page_size/only_deleted).
var Fields = []string{
	"date_from", "date_to", "type", "payment_method",
	"subcategory", "min_amount", "max_amount", "search",
}

// Profile is the active filter predicate as the user entered it. Values are
// kept raw; Query canonicalizes them. Zero value means "no filters".
type Profile struct {
	DateFrom      string `mapstructure:"date_from"`
	DateTo        string `mapstructure:"date_to"`
	Type          string `mapstructure:"type"`
	PaymentMethod string `mapstructure:"payment_method"`
	Subcategory   string `mapstructure:"subcategory"`
	MinAmount     string `mapstructure:"min_amount"`
	MaxAmount     string `mapstructure:"max_amount"`
	Search        string `mapstructure:"search"`
	ShowDeleted   bool   `mapstructure:"show_deleted"`
}

// Default returns the profile used when nothing is persisted.
func Default() Profile { return Profile{} }

// Get returns the raw value for a field name.
func (p Profile) Get(field string) string {
	switch field {
	case "date_from":
		return p.DateFrom
	case "date_to":
		return p.DateTo
	case "type":
		return p.Type
	case "payment_method":
		return p.PaymentMethod
	case "subcategory":
		return p.Subcategory
	case "min_amount":
		return p.MinAmount
	case "max_amount":
		return p.MaxAmount
	case "search":
		return p.Search
	}
	return ""
}

// Set stores the raw value for a field name.
func (p *Profile) Set(field, value string) {
	switch field {
	case "date_from":
		p.DateFrom = value
	case "date_to":
		p.DateTo = value
	case "type":
		p.Type = value
	case "payment_method":
		p.PaymentMethod = value
	case "subcategory":
		p.Subcategory = value
	case "min_amount":
		p.MinAmount = value
	case "max_amount":
		p.MaxAmount = value
	case "search":
		p.Search = value
	}
}

// Validate reports the first bad field, so the form can refuse to apply a
// predicate the server would reject.
func (p Profile) Validate(loc *time.Location) error {
	if p.DateFrom != "" {
		if _, err := model.ParseDraftDate(p.DateFrom, loc); err != nil {
			return &model.ValidationError{Field: "date_from", Msg: "unparseable date"}
		}
	}
	if p.DateTo != "" {
		if _, err := model.ParseDraftDate(p.DateTo, loc); err != nil {
			return &model.ValidationError{Field: "date_to", Msg: "unparseable date"}
		}
	}
	return nil
}

// Query builds the canonical request predicate. Each non-empty field maps to
// exactly one key; empty fields are omitted entirely, never sent as "".
// Dates are converted from wall-clock input in loc to RFC3339 UTC instants.
// ShowDeleted adds only_deleted=1 and changes nothing else.
func (p Profile) Query(loc *time.Location) url.Values {
	v := url.Values{}
	setDate := func(key, raw string) {
		if raw == "" {
			return
		}
		t, err := model.ParseDraftDate(raw, loc)
		if err != nil {
			// Validate catches this before apply; never emit garbage.
			return
		}
		v.Set(key, t.UTC().Format(time.RFC3339))
	}
	setDate("date_from", p.DateFrom)
	setDate("date_to", p.DateTo)
	for _, field := range []string{"type", "payment_method", "subcategory", "min_amount", "max_amount", "search"} {
		if raw := p.Get(field); raw != "" {
			v.Set(field, raw)
		}
	}
	v.Set("page_size", fullPageSize)
	if p.ShowDeleted {
		v.Set("only_deleted", "1")
	}
	return v
}
