package service

import (
	"context"
	"errors"

	"catalog-viewer/internal/datasource"
	"catalog-viewer/internal/domain"
)

// ProductColumns lists the product table columns in display order
var ProductColumns = []string{
	domain.FieldProductID,
	domain.FieldPrice,
	domain.FieldProductName,
	domain.FieldBrandName,
	domain.FieldStatus,
}

// CatalogQuery holds the raw query parameters of a catalog request.
// HasStatus records that the status parameter was sent, even when empty.
type CatalogQuery struct {
	Status    string `validate:"omitempty,alpha,max=32"`
	HasStatus bool
	SortBy    string `validate:"omitempty,printascii,max=512"`
}

// ProductView is the display copy of a product with the status as its name
type ProductView struct {
	ProductID   int64   `json:"product_id"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name"`
	BrandName   string  `json:"brand_name"`
	Status      string  `json:"status"`
}

// Value returns the column named key for table rendering
func (v ProductView) Value(key string) any {
	switch key {
	case domain.FieldProductID:
		return v.ProductID
	case domain.FieldPrice:
		return v.Price
	case domain.FieldProductName:
		return v.ProductName
	case domain.FieldBrandName:
		return v.BrandName
	case domain.FieldStatus:
		return v.Status
	default:
		return ""
	}
}

// ProductListing is the result of a product query
type ProductListing struct {
	Products   []ProductView
	Columns    []string
	filtered   []domain.Product
	unfiltered []domain.Product
}

// Overview combines a product listing with its statistics. StatsErr is set
// when the statistics could not be computed, e.g. an empty filtered list.
type Overview struct {
	Listing    *ProductListing
	Statistics *domain.Statistics
	StatsErr   error
}

// CatalogService turns query parameters into data source calls
type CatalogService interface {
	ListProducts(ctx context.Context, q CatalogQuery) (*ProductListing, error)
	Statistics(ctx context.Context, q CatalogQuery) (*domain.Statistics, error)
	Overview(ctx context.Context, q CatalogQuery) (*Overview, error)
}

type catalogService struct {
	source datasource.ProductSource
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(source datasource.ProductSource) CatalogService {
	return &catalogService{source: source}
}

// ParseFilter builds the filter spec for q. Only the status may be filtered on.
// A status parameter that was sent empty names no status and is rejected.
func ParseFilter(q CatalogQuery) (domain.FilterSpec, error) {
	filter := domain.FilterSpec{}
	if q.Status == "" && !q.HasStatus {
		return filter, nil
	}

	status, err := domain.ParseProductStatus(q.Status)
	if err != nil {
		return nil, err
	}
	filter[domain.FieldStatus] = status
	return filter, nil
}

// ListProducts returns the filtered and sorted products of the catalog
func (s *catalogService) ListProducts(ctx context.Context, q CatalogQuery) (*ProductListing, error) {
	filter, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}

	sortSpec, err := domain.ParseSortSpec(q.SortBy)
	if err != nil {
		return nil, err
	}

	filtered, unfiltered, err := s.source.GetProducts(ctx, filter, sortSpec)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(filtered))
	for _, p := range filtered {
		views = append(views, toView(p))
	}

	return &ProductListing{
		Products:   views,
		Columns:    ProductColumns,
		filtered:   filtered,
		unfiltered: unfiltered,
	}, nil
}

// Statistics computes statistics from a fresh fetch of the catalog
func (s *catalogService) Statistics(ctx context.Context, q CatalogQuery) (*domain.Statistics, error) {
	filter, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	return s.source.GetStatistics(ctx, filter, nil, nil)
}

// Overview lists products and computes statistics from the same fetch
func (s *catalogService) Overview(ctx context.Context, q CatalogQuery) (*Overview, error) {
	listing, err := s.ListProducts(ctx, q)
	if err != nil {
		return nil, err
	}

	filter, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}

	overview := &Overview{Listing: listing}
	if len(listing.unfiltered) == 0 || len(listing.filtered) == 0 {
		overview.StatsErr = domain.ErrEmptyDataset
		return overview, nil
	}

	stats, err := s.source.GetStatistics(ctx, filter, listing.unfiltered, listing.filtered)
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyDataset) {
			return nil, err
		}
		overview.StatsErr = err
		return overview, nil
	}
	overview.Statistics = stats
	return overview, nil
}

func toView(p domain.Product) ProductView {
	return ProductView{
		ProductID:   p.ProductID,
		Price:       p.Price,
		ProductName: p.ProductName,
		BrandName:   p.BrandName,
		Status:      p.Status.String(),
	}
}
