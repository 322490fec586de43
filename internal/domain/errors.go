package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable is returned when the upstream catalog cannot be read
	ErrDataUnavailable = errors.New("product data unavailable")

	// ErrMalformedSort is returned for sort_by values that cannot be applied
	ErrMalformedSort = errors.New("malformed sort by argument")

	// ErrUnknownField is returned when a sort key names no product attribute
	ErrUnknownField = fmt.Errorf("%w: unknown field", ErrMalformedSort)

	// ErrUnsortableField is returned when a sort key names an attribute without ordering
	ErrUnsortableField = fmt.Errorf("%w: field has no ordering", ErrMalformedSort)

	// ErrEmptyDataset is returned when statistics are requested over no products
	ErrEmptyDataset = errors.New("no products to compute statistics")

	// ErrUnknownStatus is returned when a status name matches no ProductStatus
	ErrUnknownStatus = errors.New("unknown product status")
)
