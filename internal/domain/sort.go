package domain

import (
	"cmp"
	"fmt"
	"strings"
)

// SortKey is one level of a composite sort
type SortKey struct {
	Field     string `json:"field"`
	Ascending bool   `json:"ascending"`
}

// SortSpec lists sort keys from primary to least significant
type SortSpec []SortKey

// Set assigns a direction to field. An existing key keeps its position.
func (s SortSpec) Set(field string, ascending bool) SortSpec {
	for i := range s {
		if s[i].Field == field {
			s[i].Ascending = ascending
			return s
		}
	}
	return append(s, SortKey{Field: field, Ascending: ascending})
}

// ParseSortSpec parses a sort_by argument such as "+price,-brand_name".
// Each non-empty token must start with '+' (ascending) or '-' (descending).
func ParseSortSpec(raw string) (SortSpec, error) {
	spec := SortSpec{}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		var ascending bool
		switch token[0] {
		case '+':
			ascending = true
		case '-':
			ascending = false
		default:
			return nil, fmt.Errorf("%w: %q must start with '+' or '-'", ErrMalformedSort, token)
		}

		field := token[1:]
		if field == "" {
			return nil, fmt.Errorf("%w: %q has no field name", ErrMalformedSort, token)
		}
		spec = spec.Set(field, ascending)
	}
	return spec, nil
}

// String renders the spec back into sort_by syntax
func (s SortSpec) String() string {
	tokens := make([]string, 0, len(s))
	for _, key := range s {
		prefix := "-"
		if key.Ascending {
			prefix = "+"
		}
		tokens = append(tokens, prefix+key.Field)
	}
	return strings.Join(tokens, ",")
}

// Validate checks that every key names an orderable product field
func (s SortSpec) Validate() error {
	for _, key := range s {
		switch key.Field {
		case FieldProductID, FieldPrice, FieldBrandName, FieldProductName:
		case FieldStatus:
			return fmt.Errorf("%w: %q", ErrUnsortableField, key.Field)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, key.Field)
		}
	}
	return nil
}

// Compare orders a and b by the spec. Call Validate first; keys that are not
// orderable compare as equal.
func (s SortSpec) Compare(a, b Product) int {
	for _, key := range s {
		c := compareField(a, b, key.Field)
		if c == 0 {
			continue
		}
		if !key.Ascending {
			c = -c
		}
		return c
	}
	return 0
}

func compareField(a, b Product, field string) int {
	switch field {
	case FieldProductID:
		return cmp.Compare(a.ProductID, b.ProductID)
	case FieldPrice:
		return cmp.Compare(a.Price, b.Price)
	case FieldBrandName:
		return strings.Compare(a.BrandName, b.BrandName)
	case FieldProductName:
		return strings.Compare(a.ProductName, b.ProductName)
	default:
		return 0
	}
}
