package datasource

import (
	"slices"

	"catalog-viewer/internal/domain"
)

// Dedup removes structurally identical products. The first occurrence of each
// product is kept; callers must not rely on the resulting order.
func Dedup(products []domain.Product) []domain.Product {
	seen := make(map[domain.Product]struct{}, len(products))
	unique := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// Filter returns the products matching every entry of filter, in input order
func Filter(products []domain.Product, filter domain.FilterSpec) []domain.Product {
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Sort returns a stably sorted copy of products. The first key of spec is the
// primary key; ties fall through to the following keys and finally keep input order.
func Sort(products []domain.Product, spec domain.SortSpec) ([]domain.Product, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	sorted := slices.Clone(products)
	if len(spec) > 0 {
		slices.SortStableFunc(sorted, spec.Compare)
	}
	return sorted, nil
}
