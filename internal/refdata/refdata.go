// Package refdata caches the payment-method and subcategory reference lists
// for the session and resolves user-typed names against them.
package refdata

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/okaya/ledgerdesk/internal/model"
)

// Source is the slice of the API the cache loads from.
type Source interface {
	ListPaymentMethods(ctx context.Context) ([]model.Reference, error)
	ListSubcategories(ctx context.Context) ([]model.Reference, error)
}

// Cache holds both reference lists, loaded once per session.
type Cache struct {
	PaymentMethods []model.Reference
	Subcategories  []model.Reference
}

// Load fetches both lists. Either failing fails the load; the edit form is
// unusable without them.
func Load(ctx context.Context, src Source) (*Cache, error) {
	pm, err := src.ListPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := src.ListSubcategories(ctx)
	if err != nil {
		return nil, err
	}
	return &Cache{PaymentMethods: pm, Subcategories: sc}, nil
}

// PaymentMethodName resolves an id to its display name, or "" if unknown.
func (c *Cache) PaymentMethodName(id int64) string {
	return nameOf(c.PaymentMethods, id)
}

// SubcategoryName resolves an id to its display name, or "" if unknown.
func (c *Cache) SubcategoryName(id int64) string {
	return nameOf(c.Subcategories, id)
}

func nameOf(refs []model.Reference, id int64) string {
	for _, r := range refs {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}

// maxDistance caps how far a fuzzy subcategory match may stray. Beyond this
// the typed name is treated as a new subcategory.
const maxDistance = 2

// MatchSubcategory resolves a typed name to an existing subcategory. Exact
// case-insensitive matches win; otherwise the closest name within the edit
// distance cap is taken. ok is false when nothing is close enough.
func (c *Cache) MatchSubcategory(name string) (model.Reference, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return model.Reference{}, false
	}
	for _, r := range c.Subcategories {
		if strings.ToLower(r.Name) == needle {
			return r, true
		}
	}
	best := model.Reference{}
	bestDist := maxDistance + 1
	for _, r := range c.Subcategories {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(r.Name))
		if d < bestDist {
			best, bestDist = r, d
		}
	}
	if bestDist > maxDistance {
		return model.Reference{}, false
	}
	return best, true
}
