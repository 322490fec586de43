package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProductStatus represents the visibility state of a catalog entry
type ProductStatus int

const (
	StatusActive ProductStatus = iota
	StatusHidden
	StatusDeleted
)

var statusNames = map[ProductStatus]string{
	StatusActive:  "Active",
	StatusHidden:  "Hidden",
	StatusDeleted: "Deleted",
}

func (s ProductStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ProductStatus(%d)", int(s))
}

// ParseProductStatus looks up a status by name, ignoring case
func ParseProductStatus(name string) (ProductStatus, error) {
	for status, statusName := range statusNames {
		if strings.EqualFold(name, statusName) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// Product field names understood by Field, filters and sort specs
const (
	FieldProductID   = "product_id"
	FieldPrice       = "price"
	FieldBrandName   = "brand_name"
	FieldProductName = "product_name"
	FieldStatus      = "status"
)

// Product represents one entry of the upstream catalog.
// Products are compared structurally: two values with identical fields are
// equal and collapse to one map key.
type Product struct {
	ProductID   int64         `json:"product_id"`
	Price       float64       `json:"price"`
	BrandName   string        `json:"brand_name"`
	ProductName string        `json:"product_name"`
	Status      ProductStatus `json:"status"`
}

// Field returns the attribute stored under key
func (p Product) Field(key string) (any, bool) {
	switch key {
	case FieldProductID:
		return p.ProductID, true
	case FieldPrice:
		return p.Price, true
	case FieldBrandName:
		return p.BrandName, true
	case FieldProductName:
		return p.ProductName, true
	case FieldStatus:
		return p.Status, true
	default:
		return nil, false
	}
}

func (p Product) String() string {
	return fmt.Sprintf("Id: %d, BrandName: %s, ProductName: %s, Price: %s, Status: %s",
		p.ProductID, p.BrandName, p.ProductName, formatPrice(p.Price), p.Status)
}

// formatPrice prints the shortest decimal form, keeping ".0" on whole prices
func formatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// FilterSpec maps a field name to the value a product must hold.
// Values must carry the field's Go type (int64, float64, string, ProductStatus).
type FilterSpec map[string]any

// Matches reports whether every entry of the spec equals the product's field
func (f FilterSpec) Matches(p Product) bool {
	for key, want := range f {
		got, ok := p.Field(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}
