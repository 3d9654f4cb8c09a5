// Package productlist holds the inventory table state: the fetched catalog,
// search and category filters, and the product staged for deletion.
package productlist

import (
	"context"
	"fmt"
	"strings"

	"podcatalog/internal/models"
)

// AllCategories disables the category filter.
const AllCategories = ""

// Lister fetches the catalog. *client.Client implements it.
type Lister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// View is the state behind the product table. The zero value is an empty,
// unloaded view.
type View struct {
	products      []models.Product
	loaded        bool
	search        string
	category      models.Category
	pendingDelete string
}

// Load fetches every product once. Filtering afterwards never refetches.
func (v *View) Load(ctx context.Context, lister Lister) error {
	products, err := lister.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	v.products = products
	v.loaded = true
	return nil
}

// Loaded reports whether Load has succeeded.
func (v *View) Loaded() bool { return v.loaded }

// SetSearch sets the name filter.
func (v *View) SetSearch(search string) { v.search = search }

// SetCategory sets the category filter. "all" and AllCategories clear it.
func (v *View) SetCategory(category string) {
	if strings.EqualFold(category, "all") {
		category = AllCategories
	}
	v.category = models.Category(category)
}

// Products returns the loaded products that pass both filters.
func (v *View) Products() []models.Product {
	return Filter(v.products, v.search, v.category)
}

// StageDelete marks a product for deletion. Nothing is sent to the server.
func (v *View) StageDelete(id string) { v.pendingDelete = id }

// PendingDelete returns the staged id, if any.
func (v *View) PendingDelete() (string, bool) {
	return v.pendingDelete, v.pendingDelete != ""
}

// CancelDelete clears the staged id.
func (v *View) CancelDelete() { v.pendingDelete = "" }

// Filter keeps products whose name contains search, ignoring case, and whose
// category equals category when one is given. Input order is preserved.
func Filter(products []models.Product, search string, category models.Category) []models.Product {
	needle := strings.ToLower(search)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if category != AllCategories && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}
